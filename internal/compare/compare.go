package compare

import (
	"io"
	"log/slog"

	"github.com/conformix/schemacheck/internal/schema"
)

// ComparisonResult is the verdict for one baseline/exported pair.
// Match is true iff Differences is empty.
type ComparisonResult struct {
	Match       bool                  `json:"match"`
	Differences map[string]Difference `json:"differences"`
}

// Comparator orchestrates normalization and diffing.
type Comparator struct {
	normalizer *Normalizer
	logger     *slog.Logger
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithIgnoredFields overrides the normalizer's ignored-field set.
func WithIgnoredFields(fields ...string) Option {
	return func(c *Comparator) {
		c.normalizer = NewNormalizer(fields...)
	}
}

// WithLogger sets the logger used for per-comparison context.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparator) {
		c.logger = logger
	}
}

// New creates a Comparator with the default ignore set and a discard logger.
func New(opts ...Option) *Comparator {
	c := &Comparator{
		normalizer: NewNormalizer(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalizer exposes the comparator's normalizer for independent use.
func (c *Comparator) Normalizer() *Normalizer {
	return c.normalizer
}

// Compare normalizes both documents independently and diffs them.
//
// The label is reporting context only; it never influences the verdict.
// Compare is total over well-formed documents: mismatched shapes become
// difference records, never errors.
func (c *Comparator) Compare(baseline, exported schema.Value, label string) ComparisonResult {
	normBaseline := c.normalizer.Normalize(baseline)
	normExported := c.normalizer.Normalize(exported)

	// Fast path: structurally equal documents need no diff walk.
	if schema.Equal(normBaseline, normExported) {
		c.logger.Info("schemas match", "label", label)
		return ComparisonResult{Match: true, Differences: map[string]Difference{}}
	}

	diffs := Diff(normBaseline, normExported, RootPath)
	c.logger.Warn("schemas differ", "label", label, "differences", len(diffs))

	return ComparisonResult{Match: false, Differences: diffs}
}
