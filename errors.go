package enumgen

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NoEnumsFoundError reports a source file that yielded zero definitions.
// The usual cause is a missing directive, so the message says so.
type NoEnumsFoundError struct {
	Path string
}

func (e *NoEnumsFoundError) Error() string {
	return fmt.Sprintf("no enums found in %s; did you forget prefixing enums with %q?",
		e.Path, "// GENERATED_JAVA_ENUM_PACKAGE: foo")
}

// AssertFilesError reports a mismatch between the computed output path set
// and the caller-supplied expectation.
type AssertFilesError struct {
	// Add lists computed paths missing from the expectation.
	Add []string

	// Remove lists expected paths that were not computed.
	Remove []string
}

func (e *AssertFilesError) Error() string {
	var b strings.Builder
	b.WriteString("output files list does not match expectations")
	if len(e.Add) > 0 {
		fmt.Fprintf(&b, "; add %s", strings.Join(e.Add, ", "))
	}
	if len(e.Remove) > 0 {
		fmt.Fprintf(&b, "; remove %s", strings.Join(e.Remove, ", "))
	}
	return b.String()
}
