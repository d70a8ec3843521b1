// Package parser implements the line-oriented state machine that extracts
// directive-annotated enum declarations from preprocessed C/C++ header text.
//
// The scanner is in one of three modes per line: outside any construct
// (looking for directives and enum openings), inside an enum body (collecting
// entries until the closing brace), or inside a multi-line directive
// (accumulating a value split across commented lines). Classification is an
// ordered set of pattern matchers per mode; the first match wins.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cppjava/enumgen/ir"
)

var (
	singleLineCommentRe     = regexp.MustCompile(`^\s*//`)
	multiLineCommentStartRe = regexp.MustCompile(`^\s*/\*`)

	// Entry lines: identifier, optional "= value", optional trailing comma.
	// Prefix match only; anything after the comma is ignored.
	enumEntryRe = regexp.MustCompile(`^\s*(\w+)(\s*=\s*([^,\n]+))?,?`)
	enumEndRe   = regexp.MustCompile(`^\s*}\s*;\.*\s*$`)

	directiveRe               = regexp.MustCompile(`^\s*//\s+GENERATED_JAVA_(\w+)\s*:\s*([.\w]+)$`)
	multiLineDirectiveStartRe = regexp.MustCompile(`^\s*//\s+GENERATED_JAVA_(\w+)\s*:\s*\(([.\w]*)$`)
	multiLineDirectiveContRe  = regexp.MustCompile(`^\s*//\s+([.\w]+)$`)
	multiLineDirectiveEndRe   = regexp.MustCompile(`^\s*//\s+([.\w]*)\)$`)

	// Enum openings: optional [cpp...] attribute, "enum", optional
	// class/struct, name, optional ": fixed type", opening brace.
	enumStartRe = regexp.MustCompile(`^\s*(?:\[cpp.*\])?\s*enum\s+(?:class|struct)?\s*(\w+)\s*(?::\s*(\w+\s*\w+?))?\s*{\s*$`)
)

// UnsupportedCommentError reports a block comment opener inside an enum body.
type UnsupportedCommentError struct{}

func (e *UnsupportedCommentError) Error() string {
	return "multi-line comments in enums are not supported"
}

// MalformedDirectiveError reports a multi-line directive that was neither
// continued nor closed on the following line.
type MalformedDirectiveError struct{}

func (e *MalformedDirectiveError) Error() string {
	return "malformed multi-line directive declaration"
}

// multiLineDirective buffers a directive value split across commented lines.
type multiLineDirective struct {
	key   string
	parts []string
}

// HeaderScanner consumes one file's line sequence and yields the finalized
// enum definitions in declaration order. One scanner processes exactly one
// file; instances share no state and may run in parallel across files.
type HeaderScanner struct {
	path        string
	definitions []*ir.EnumDefinition
	directives  *DirectiveSet
	current     *ir.EnumDefinition
	inEnum      bool
	multiLine   *multiLineDirective
}

// NewHeaderScanner returns a scanner for one file. The path is used only in
// error messages.
func NewHeaderScanner(path string) *HeaderScanner {
	return &HeaderScanner{
		path:       path,
		directives: NewDirectiveSet(),
	}
}

// Parse scans the lines in order and returns the completed definitions. Any
// malformed construct aborts the whole file immediately; there are no
// partial results.
func (s *HeaderScanner) Parse(lines []string) ([]*ir.EnumDefinition, error) {
	for _, line := range lines {
		if err := s.scanLine(line); err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
	}
	return s.definitions, nil
}

func (s *HeaderScanner) scanLine(line string) error {
	switch {
	case s.multiLine != nil:
		return s.scanMultiLineDirectiveLine(line)
	case s.inEnum:
		return s.scanEnumLine(line)
	default:
		return s.scanRegularLine(line)
	}
}

func (s *HeaderScanner) scanRegularLine(line string) error {
	if m := directiveRe.FindStringSubmatch(line); m != nil {
		return s.directives.Update(m[1], m[2])
	}
	if m := multiLineDirectiveStartRe.FindStringSubmatch(line); m != nil {
		s.multiLine = &multiLineDirective{key: m[1], parts: []string{m[2]}}
		return nil
	}
	if m := enumStartRe.FindStringSubmatch(line); m != nil {
		// Enums opt in via directives: with none pending, the declaration
		// is ignored and its body scans as ordinary text.
		if s.directives.IsEmpty() {
			return nil
		}
		s.current = ir.NewEnumDefinition(m[1], strings.TrimSpace(m[2]))
		s.inEnum = true
	}
	return nil
}

func (s *HeaderScanner) scanMultiLineDirectiveLine(line string) error {
	if m := multiLineDirectiveContRe.FindStringSubmatch(line); m != nil {
		s.multiLine.parts = append(s.multiLine.parts, m[1])
		return nil
	}
	if m := multiLineDirectiveEndRe.FindStringSubmatch(line); m != nil {
		key := s.multiLine.key
		value := strings.Join(s.multiLine.parts, "") + m[1]
		s.multiLine = nil
		return s.directives.Update(key, value)
	}
	return &MalformedDirectiveError{}
}

func (s *HeaderScanner) scanEnumLine(line string) error {
	if singleLineCommentRe.MatchString(line) {
		return nil
	}
	if multiLineCommentStartRe.MatchString(line) {
		return &UnsupportedCommentError{}
	}
	if enumEndRe.MatchString(line) {
		return s.closeEnum()
	}
	if m := enumEntryRe.FindStringSubmatch(line); m != nil {
		return s.current.AppendEntry(m[1], strings.TrimSpace(m[3]))
	}
	// Blank lines, stray braces and other noise inside the body.
	return nil
}

// closeEnum applies the pending directives, finalizes the definition and
// records it. The directive set is replaced in the same step so it can never
// leak into the next enum body.
func (s *HeaderScanner) closeEnum() error {
	if err := s.directives.ApplyTo(s.current); err != nil {
		return err
	}
	s.directives = NewDirectiveSet()
	if err := s.current.Finalize(); err != nil {
		return err
	}
	s.definitions = append(s.definitions, s.current)
	s.current = nil
	s.inEnum = false
	return nil
}
