// Package datatype implements the datatype registry for pantry field values.
// Each datatype pairs a validator, which coerces a raw input into its
// canonical in-memory representation, with a serializer, which renders a
// coerced value as text for storage output. The set of datatypes is closed;
// looking up any other name fails with ErrUnknownType.
package datatype
