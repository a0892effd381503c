// Package schema defines the document model shared by the comparison engine
// and the harness: a sealed sum type over JSON value kinds, deterministic
// canonical serialization, deep structural equality, and content
// fingerprinting.
//
// Collection configurations arrive from client exports as arbitrary JSON.
// No fixed shape is assumed anywhere in this package; absent or extra fields
// are the comparison engine's concern, not a decode error.
package schema
