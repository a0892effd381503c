// Package compare is the schema comparison engine: it canonicalizes two
// collection configuration documents and computes a structural diff that is
// stable, deterministic, and total over well-formed JSON trees.
//
// The engine has two stages composed by the Comparator facade:
//
//   - Normalizer strips volatile server-assigned fields and sorts
//     order-insensitive collections (the properties array, named-vector
//     config keys) so semantically equivalent documents become structurally
//     equal.
//   - Differ walks two normalized documents in lock-step and produces a flat
//     map from path to a typed difference record.
//
// Nothing in this package errors on malformed shapes: a wrong type where an
// object or array was expected simply becomes a type_mismatch difference.
package compare
