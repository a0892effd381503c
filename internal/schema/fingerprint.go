package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainConfig is the domain-separation prefix for configuration document
// fingerprints. The version suffix leaves room for algorithm migration.
const DomainConfig = "schemacheck/config/v1"

// Fingerprint computes a content-addressed identity for a document:
// SHA-256 over the domain prefix, a null separator, and the canonical JSON
// rendering. Stable across runs and across clients for equivalent documents
// once they have been normalized.
func Fingerprint(v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(DomainConfig))
	h.Write([]byte{0x00}) // Null separator avoids domain/data boundary ambiguity
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
