package parser

import (
	"fmt"

	"github.com/gorilla/schema"

	"github.com/cppjava/enumgen/ir"
)

// Directive keys recognized in GENERATED_JAVA_<KEY> comments.
const (
	DirectiveClassNameOverride = "CLASS_NAME_OVERRIDE"
	DirectiveEnumPackage       = "ENUM_PACKAGE"
	DirectivePrefixToStrip     = "PREFIX_TO_STRIP"
)

var knownDirectives = map[string]bool{
	DirectiveClassNameOverride: true,
	DirectiveEnumPackage:       true,
	DirectivePrefixToStrip:     true,
}

// UnknownDirectiveError reports a GENERATED_JAVA_<KEY> comment whose key is
// not in the fixed vocabulary.
type UnknownDirectiveError struct {
	Key string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive: GENERATED_JAVA_%s", e.Key)
}

// DirectiveSet accumulates the generator directives seen ahead of an enum
// declaration. The scanner applies a set onto exactly one definition when the
// enum body closes and replaces it with a fresh instance; a set is never
// reused across two enum bodies.
type DirectiveSet struct {
	values map[string][]string
}

// NewDirectiveSet returns an empty set.
func NewDirectiveSet() *DirectiveSet {
	return &DirectiveSet{values: make(map[string][]string)}
}

// Update stores a directive value, overwriting any previous value for the
// same key. Unknown keys fail immediately, independent of whether an enum
// ever follows.
func (s *DirectiveSet) Update(key, value string) error {
	if !knownDirectives[key] {
		return &UnknownDirectiveError{Key: key}
	}
	s.values[key] = []string{value}
	return nil
}

// IsEmpty reports whether no directives have been stored.
func (s *DirectiveSet) IsEmpty() bool {
	return len(s.values) == 0
}

// directiveFields is the decode target for ApplyTo. The schema tags are the
// directive keys themselves.
type directiveFields struct {
	ClassNameOverride string `schema:"CLASS_NAME_OVERRIDE"`
	EnumPackage       string `schema:"ENUM_PACKAGE"`
	PrefixToStrip     string `schema:"PREFIX_TO_STRIP"`
}

var directiveDecoder = schema.NewDecoder()

// ApplyTo copies the accumulated directives onto the definition's
// directive-derived fields. Absent directives leave their field empty: an
// empty package is rejected later by Finalize, an empty prefix means
// "auto-derive". The copy is all-or-nothing; on a decode error the
// definition is left untouched.
func (s *DirectiveSet) ApplyTo(def *ir.EnumDefinition) error {
	var f directiveFields
	if err := directiveDecoder.Decode(&f, s.values); err != nil {
		return fmt.Errorf("apply directives: %w", err)
	}
	def.ClassNameOverride = f.ClassNameOverride
	def.Package = f.EnumPackage
	def.PrefixToStrip = f.PrefixToStrip
	return nil
}
