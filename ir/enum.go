// Package ir holds the intermediate representation produced by the header
// scanner: one EnumDefinition per annotated enum, carrying ordered entries
// through validation, value assignment and prefix stripping.
package ir

import (
	"strconv"
	"strings"
	"unicode"
)

// Entry is a single enum constant.
type Entry struct {
	// Name is the constant name. Finalize may rewrite it when a common
	// prefix is stripped.
	Name string

	// Raw is the value as written in the header: empty when the entry has
	// no explicit value, another entry's name for an alias, or an integer
	// literal.
	Raw string

	// Value is the finalized value. It is int64 once index assignment has
	// run. When every entry carried an explicit raw value, assignment is
	// skipped entirely and Value stays a string; the renderer emits such
	// values verbatim, which is how alias references survive as Java
	// identifier references.
	Value any
}

// EnumDefinition is the structured result for one enum found in a header.
// It is mutated by the scanner (AppendEntry) and by the directive set until
// Finalize is called, after which it is handed off for rendering.
type EnumDefinition struct {
	// OriginalName is the enum name as declared in the header.
	OriginalName string

	// ClassNameOverride replaces OriginalName as the generated class name
	// when non-empty. Set from the CLASS_NAME_OVERRIDE directive.
	ClassNameOverride string

	// Package is the target Java package. Set from the ENUM_PACKAGE
	// directive; generation fails without it.
	Package string `validate:"required"`

	// FixedType is the declared underlying type, if any. Only a small set
	// of C types map onto Java int.
	FixedType string `validate:"omitempty,oneof=char 'unsigned char' short 'unsigned short' int int8_t int16_t int32_t uint8_t uint16_t"`

	// PrefixToStrip overrides the derived prefix when non-empty. Set from
	// the PREFIX_TO_STRIP directive.
	PrefixToStrip string

	// Entries in declaration order.
	Entries []Entry `validate:"min=1"`

	names map[string]bool
}

// NewEnumDefinition creates a definition seeded with the parsed enum name and
// optional fixed underlying type.
func NewEnumDefinition(name, fixedType string) *EnumDefinition {
	return &EnumDefinition{
		OriginalName: name,
		FixedType:    fixedType,
		names:        make(map[string]bool),
	}
}

// ClassName returns the generated class name: the override if one was given,
// otherwise the original enum name.
func (d *EnumDefinition) ClassName() string {
	if d.ClassNameOverride != "" {
		return d.ClassNameOverride
	}
	return d.OriginalName
}

// AppendEntry adds an entry with its raw (unresolved) value, preserving
// declaration order. Re-declaring a name is a hard error.
func (d *EnumDefinition) AppendEntry(name, raw string) error {
	if d.names == nil {
		d.names = make(map[string]bool)
	}
	if d.names[name] {
		return &DuplicateEntryError{Name: name}
	}
	d.names[name] = true
	d.Entries = append(d.Entries, Entry{Name: name, Raw: raw})
	return nil
}

// Finalize validates the definition and runs the two finalize-time
// transformations, in order: entry index assignment, then prefix stripping.
// After a successful Finalize the definition must not be mutated.
func (d *EnumDefinition) Finalize() error {
	if err := d.validate(); err != nil {
		return err
	}
	if err := d.assignEntryIndices(); err != nil {
		return err
	}
	d.stripPrefix()
	return nil
}

// assignEntryIndices resolves raw values to integers. Entries with no value
// get previous+1 (starting at 0); a value naming an earlier entry copies that
// entry's resolved value; anything else must parse as a base-10 integer.
//
// Resolution only runs when at least one entry has no explicit value. When
// every raw value is present the entries keep their textual values untouched,
// alias references included. Downstream output depends on this exact trigger
// condition, so it is not resolved lazily per entry.
func (d *EnumDefinition) assignEntryIndices() error {
	all := true
	for _, e := range d.Entries {
		if e.Raw == "" {
			all = false
			break
		}
	}
	if all {
		for i := range d.Entries {
			d.Entries[i].Value = d.Entries[i].Raw
		}
		return nil
	}

	prev := int64(-1)
	resolved := make(map[string]int64, len(d.Entries))
	for i := range d.Entries {
		e := &d.Entries[i]
		switch {
		case e.Raw == "":
			e.Value = prev + 1
		default:
			if v, ok := resolved[e.Raw]; ok {
				e.Value = v
				break
			}
			v, err := strconv.ParseInt(e.Raw, 10, 64)
			if err != nil {
				return &InvalidIntegerError{Name: e.Name, Value: e.Raw}
			}
			e.Value = v
		}
		prev = e.Value.(int64)
		resolved[e.Name] = prev
	}
	return nil
}

// stripPrefix removes a common leading prefix from entry names. An explicit
// PREFIX_TO_STRIP directive wins; otherwise the prefix is derived from the
// enum name (UPPER_SNAKE_CASE plus a trailing underscore). The derived prefix
// is abandoned unless every entry name starts with it. Textual values go
// through the same stripping so alias references keep pointing at the renamed
// constants.
func (d *EnumDefinition) stripPrefix() {
	prefix := d.PrefixToStrip
	if prefix == "" {
		prefix = upperSnake(d.OriginalName) + "_"
		for _, e := range d.Entries {
			if !strings.HasPrefix(e.Name, prefix) {
				prefix = ""
				break
			}
		}
	}
	if prefix == "" {
		return
	}
	for i := range d.Entries {
		e := &d.Entries[i]
		e.Name = strings.TrimPrefix(e.Name, prefix)
		if s, ok := e.Value.(string); ok {
			e.Value = strings.TrimPrefix(s, prefix)
		}
	}
}

func (d *EnumDefinition) validate() error {
	if d.ClassName() == "" {
		return &ValidationError{Enum: d.OriginalName, Reason: "missing class name"}
	}
	if err := validate.Struct(d); err != nil {
		return newValidationError(d, err)
	}
	return nil
}

// upperSnake converts a MixedCase name to UPPER_SNAKE_CASE: an underscore is
// inserted before each uppercase run not at the start, then the whole string
// is uppercased.
func upperSnake(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
