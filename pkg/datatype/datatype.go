package datatype

import (
	"errors"
	"sort"
)

// Datatype names recognized by the registry.
const (
	TypeString   = "string"
	TypeNumber   = "number"
	TypeInt      = "int"
	TypeBoolean  = "boolean"
	TypeObject   = "object"
	TypeArray    = "array"
	TypeDate     = "date"
	TypeDatetime = "datetime"
	TypeTime     = "time"
)

// ErrUnknownType is returned when a type name does not resolve to a
// registered datatype.
var ErrUnknownType = errors.New("unknown datatype")

// Translator renders a localized message template with arguments.
// The i18n catalog satisfies this interface; tests substitute fakes.
type Translator interface {
	GetText(locale, key string, args ...any) string
}

// Options controls serialization output.
type Options struct {
	// Escape doubles embedded single quotes so the output can be embedded
	// in a quoted literal.
	Escape bool
	// UseQuotes wraps the output in single quotes. Ignored for number,
	// int, and boolean values, which are never quoted literals.
	UseQuotes bool
}

// Result reports the outcome of validating one raw value. Exactly one of
// Value and Error is meaningful: on success Error is empty and Value holds
// the coerced value; on failure Error holds the localized message and
// Value is nil.
type Result struct {
	Value any
	Error string
}

// OK reports whether validation succeeded.
func (r Result) OK() bool { return r.Error == "" }

// descriptor pairs the validate and serialize behavior bound to one
// datatype name.
type descriptor struct {
	// messageKey selects the catalog template for the failure message.
	// Empty for datatypes that never fail.
	messageKey string
	validate   func(raw any) (any, bool)
	serialize  func(v any, opts Options) string
}

// descriptors is the closed dispatch table. Initialized once at load and
// never mutated.
var descriptors = map[string]descriptor{
	TypeString:   {messageKey: "", validate: validateString, serialize: serializeString},
	TypeNumber:   {messageKey: "validatesNumber", validate: validateNumber, serialize: serializeNumber},
	TypeInt:      {messageKey: "validatesInteger", validate: validateInt, serialize: serializeInt},
	TypeBoolean:  {messageKey: "validatesBoolean", validate: validateBoolean, serialize: serializeBoolean},
	TypeObject:   {messageKey: "validatesObject", validate: validateObject, serialize: serializeObject},
	TypeArray:    {messageKey: "validatesArray", validate: validateArray, serialize: serializeArray},
	TypeDate:     {messageKey: "validatesDate", validate: validateDate, serialize: serializeDate},
	TypeDatetime: {messageKey: "validatesDatetime", validate: validateDatetime, serialize: serializeDatetime},
	TypeTime:     {messageKey: "validatesTime", validate: validateTime, serialize: serializeTime},
}

// IsValidType reports whether the given string is a recognized datatype name.
func IsValidType(name string) bool {
	_, ok := descriptors[name]
	return ok
}

// Names returns all datatype names in sorted order.
func Names() []string {
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry validates and serializes field values by datatype name. It holds
// no mutable state and is safe for unrestricted concurrent use.
type Registry struct {
	translator Translator
}

// NewRegistry creates a Registry that renders failure messages through tr.
func NewRegistry(tr Translator) *Registry {
	return &Registry{translator: tr}
}

// Validate coerces raw into the canonical representation for the named
// datatype. fieldName is interpolated into the localized failure message.
// Validation failures are reported in the Result, never as an error; the
// returned error is non-nil only when typeName is not a recognized
// datatype, in which case it is ErrUnknownType.
func (r *Registry) Validate(typeName, fieldName string, raw any, locale string) (Result, error) {
	d, ok := descriptors[typeName]
	if !ok {
		return Result{}, ErrUnknownType
	}
	v, valid := d.validate(raw)
	if !valid {
		return Result{Error: r.translator.GetText(locale, d.messageKey, fieldName)}, nil
	}
	return Result{Value: v}, nil
}

// Serialize renders a coerced value as its textual representation for the
// named datatype. The value must have been produced by Validate for the
// same datatype; other inputs are rendered best-effort via their default
// string conversion. Returns ErrUnknownType if typeName is not a
// recognized datatype.
func (r *Registry) Serialize(typeName string, v any, opts Options) (string, error) {
	d, ok := descriptors[typeName]
	if !ok {
		return "", ErrUnknownType
	}
	return d.serialize(v, opts), nil
}
