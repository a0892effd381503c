package compare

import (
	"sort"

	"github.com/conformix/schemacheck/internal/schema"
)

// DefaultIgnoredFields are the volatile server-assigned fields stripped
// before comparison. They vary run to run and carry no semantic content
// about the schema definition itself.
var DefaultIgnoredFields = []string{
	"creationTimeUnix",
	"lastUpdateTimeUnix",
}

// Normalizer canonicalizes configuration documents prior to diffing.
// The zero value is not usable; construct with NewNormalizer.
type Normalizer struct {
	ignored map[string]struct{}
}

// NewNormalizer builds a Normalizer that strips the given top-level fields.
// Passing no fields yields the default ignore set.
func NewNormalizer(ignoredFields ...string) *Normalizer {
	if len(ignoredFields) == 0 {
		ignoredFields = DefaultIgnoredFields
	}
	ignored := make(map[string]struct{}, len(ignoredFields))
	for _, f := range ignoredFields {
		ignored[f] = struct{}{}
	}
	return &Normalizer{ignored: ignored}
}

// Normalize returns a canonical deep copy of doc. The input is never
// mutated. Applying Normalize twice yields the same result as applying it
// once.
//
// Rules, applied at the top level of an object document:
//
//   - fields in the ignore set are removed
//   - "class" is renamed to "name" when "name" is absent, and dropped when
//     both are present (v3 clients export the collection name as "class",
//     v4 clients as "name")
//   - a "properties" array is re-ordered by each element's "name" field,
//     missing or non-string names sorting as the empty string
//   - a "vectorConfig" object is left as a map; its key order is already
//     insignificant in the Value model, so only its presence matters here
//
// Non-object documents and malformed shapes (a "properties" value that is
// not an array, array elements that are not objects) pass through unchanged;
// the Differ surfaces any resulting mismatch.
func (n *Normalizer) Normalize(doc schema.Value) schema.Value {
	copied := schema.Copy(doc)

	obj, ok := copied.(schema.Object)
	if !ok {
		return copied
	}

	for field := range n.ignored {
		delete(obj, field)
	}

	if class, hasClass := obj["class"]; hasClass {
		if _, hasName := obj["name"]; !hasName {
			obj["name"] = class
		}
		delete(obj, "class")
	}

	if props, ok := obj["properties"].(schema.Array); ok {
		obj["properties"] = sortProperties(props)
	}

	return obj
}

// sortProperties orders property declarations by ascending name. The sort is
// stable so elements with equal (or absent) names keep their relative order,
// which keeps normalization idempotent for partially-shaped input.
func sortProperties(props schema.Array) schema.Array {
	sorted := make(schema.Array, len(props))
	copy(sorted, props)
	sort.SliceStable(sorted, func(i, j int) bool {
		return propertyName(sorted[i]) < propertyName(sorted[j])
	})
	return sorted
}

// propertyName extracts the sort key for a properties element. Elements that
// are not objects, or objects whose name is not a string, sort as "".
func propertyName(v schema.Value) string {
	obj, ok := v.(schema.Object)
	if !ok {
		return ""
	}
	name, ok := obj["name"].(schema.String)
	if !ok {
		return ""
	}
	return string(name)
}
