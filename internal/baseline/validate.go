package baseline

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/conformix/schemacheck/internal/schema"
)

// ValidationError reports a document that failed CUE shape validation.
type ValidationError struct {
	Path    string // document path or label
	Details string // formatted CUE error chain
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document %s failed validation: %s", e.Path, e.Details)
}

// Validator checks configuration documents against a CUE schema definition.
// A Validator is immutable after construction and safe for concurrent use.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles a CUE schema from source. The schema value is the
// whole file; a typical definition file constrains the document with a
// single #Collection definition marked as the file's embedded value, e.g.
//
//	#Collection
//	#Collection: {
//		name: string
//		properties?: [...{name: string, ...}]
//		...
//	}
func NewValidator(cueSource []byte) (*Validator, error) {
	ctx := cuecontext.New()
	val := ctx.CompileBytes(cueSource)
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE schema: %s", cueerrors.Details(err, nil))
	}
	return &Validator{ctx: ctx, schema: val}, nil
}

// NewValidatorFromFile reads and compiles a CUE schema file.
func NewValidatorFromFile(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CUE schema: %w", err)
	}
	return NewValidator(data)
}

// Validate unifies the document with the schema and checks that the result
// is valid. Returns a *ValidationError when the document does not conform.
func (v *Validator) Validate(doc schema.Value, label string) error {
	data, err := schema.MarshalCanonical(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document %s: %w", label, err)
	}

	// JSON is a subset of CUE, so the document compiles directly.
	docVal := v.ctx.CompileBytes(data)
	if err := docVal.Err(); err != nil {
		return fmt.Errorf("failed to compile document %s: %s", label, cueerrors.Details(err, nil))
	}

	unified := v.schema.Unify(docVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{
			Path:    label,
			Details: cueerrors.Details(err, nil),
		}
	}
	return nil
}
