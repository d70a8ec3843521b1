package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppjava/enumgen/ir"
)

func parseLines(t *testing.T, lines ...string) ([]*ir.EnumDefinition, error) {
	t.Helper()
	return NewHeaderScanner("test.h").Parse(lines)
}

func TestParse_SingleAnnotatedEnum(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName {",
		"  E0,",
		"  E1,",
		"  E2",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "EnumName", def.ClassName())
	assert.Equal(t, "org.pkg", def.Package)
	require.Len(t, def.Entries, 3)
	for i, e := range def.Entries {
		assert.Equal(t, int64(i), e.Value, "entry %s", e.Name)
	}
}

func TestParse_EnumWithoutDirectivesIsIgnored(t *testing.T) {
	defs, err := parseLines(t,
		"enum Unannotated {",
		"  A,",
		"  B,",
		"};",
	)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestParse_DirectivesDoNotLeakAcrossEnums(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum First {",
		"  A,",
		"};",
		"enum Second {",
		"  B,",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "First", defs[0].ClassName())
}

func TestParse_ClassNameOverrideAndPrefix(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"// GENERATED_JAVA_CLASS_NAME_OVERRIDE: Renamed",
		"// GENERATED_JAVA_PREFIX_TO_STRIP: STRIP_",
		"enum Native {",
		"  STRIP_A,",
		"  STRIP_B,",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "Renamed", def.ClassName())
	assert.Equal(t, "A", def.Entries[0].Name)
	assert.Equal(t, "B", def.Entries[1].Name)
}

func TestParse_UnknownDirective(t *testing.T) {
	_, err := parseLines(t,
		"// GENERATED_JAVA_SOMETHING_ELSE: value",
	)
	var unknownErr *UnknownDirectiveError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "SOMETHING_ELSE", unknownErr.Key)
	assert.Contains(t, err.Error(), "test.h")
}

func TestParse_MultiLineDirective(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: (org.",
		"// example.",
		"// foo)",
		"enum EnumName {",
		"  A,",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "org.example.foo", defs[0].Package)
}

func TestParse_MultiLineDirectiveSingleClose(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: (org.pkg",
		"// )",
		"enum EnumName {",
		"  A,",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "org.pkg", defs[0].Package)
}

func TestParse_MalformedMultiLineDirective(t *testing.T) {
	_, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: (org.",
		"int not_a_directive;",
	)
	var malformedErr *MalformedDirectiveError
	require.ErrorAs(t, err, &malformedErr)
}

func TestParse_BlockCommentInEnumBody(t *testing.T) {
	_, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName {",
		"  /* not supported */",
		"  A,",
		"};",
	)
	var commentErr *UnsupportedCommentError
	require.ErrorAs(t, err, &commentErr)
}

func TestParse_LineCommentsInEnumBodySkipped(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName {",
		"  // a comment",
		"  A,",
		"",
		"  B,",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Len(t, defs[0].Entries, 2)
}

func TestParse_ExplicitValuesAndTrailingComment(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName {",
		"  A = 5,  // chosen arbitrarily",
		"  B,",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, int64(5), defs[0].Entries[0].Value)
	assert.Equal(t, int64(6), defs[0].Entries[1].Value)
}

func TestParse_EnumStartVariants(t *testing.T) {
	tests := []struct {
		name      string
		startLine string
		wantName  string
		wantFixed string
	}{
		{"plain", "enum EnumName {", "EnumName", ""},
		{"class", "enum class EnumName {", "EnumName", ""},
		{"struct", "enum struct EnumName {", "EnumName", ""},
		{"fixed int", "enum EnumName : int {", "EnumName", "int"},
		{"fixed int32_t", "enum class EnumName : int32_t {", "EnumName", "int32_t"},
		{"fixed two words", "enum EnumName : unsigned short {", "EnumName", "unsigned short"},
		{"cpp attribute", "[cpp_enum_something] enum EnumName {", "EnumName", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := parseLines(t,
				"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
				tt.startLine,
				"  A,",
				"};",
			)
			require.NoError(t, err)
			require.Len(t, defs, 1)
			assert.Equal(t, tt.wantName, defs[0].OriginalName)
			assert.Equal(t, tt.wantFixed, defs[0].FixedType)
		})
	}
}

func TestParse_DisallowedFixedTypeFailsAtClose(t *testing.T) {
	_, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName : long {",
		"  A,",
		"};",
	)
	var valErr *ir.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestParse_TerminatorWithTrailingDots(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName {",
		"  A,",
		"};...",
	)
	require.NoError(t, err)
	require.Len(t, defs, 1)
}

func TestParse_DuplicateEntryAbortsFile(t *testing.T) {
	_, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName {",
		"  A = 1,",
		"  A = 2,",
		"};",
	)
	var dupErr *ir.DuplicateEntryError
	require.ErrorAs(t, err, &dupErr)
	assert.Contains(t, err.Error(), "test.h")
}

func TestParse_TwoAnnotatedEnums(t *testing.T) {
	defs, err := parseLines(t,
		"// GENERATED_JAVA_ENUM_PACKAGE: org.one",
		"enum First {",
		"  A,",
		"};",
		"",
		"// GENERATED_JAVA_ENUM_PACKAGE: org.two",
		"enum Second {",
		"  B,",
		"};",
	)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "org.one", defs[0].Package)
	assert.Equal(t, "org.two", defs[1].Package)
}

func TestParse_NoDirectiveWithoutLeadingSpaceInComment(t *testing.T) {
	// The directive marker requires whitespace between // and the key.
	defs, err := parseLines(t,
		"//GENERATED_JAVA_ENUM_PACKAGE: org.pkg",
		"enum EnumName {",
		"  A,",
		"};",
	)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestParse_MissingPackageDirective(t *testing.T) {
	_, err := parseLines(t,
		"// GENERATED_JAVA_CLASS_NAME_OVERRIDE: Renamed",
		"enum EnumName {",
		"  A,",
		"};",
	)
	var valErr *ir.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Reason, "package")
}

func TestParse_EmptyInput(t *testing.T) {
	defs, err := NewHeaderScanner("empty.h").Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

// errors.Is sanity check for wrapped scanner errors.
func TestParse_ErrorsCarryPath(t *testing.T) {
	_, err := NewHeaderScanner("path/to/enums.h").Parse([]string{
		"// GENERATED_JAVA_BOGUS: x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path/to/enums.h")
	assert.True(t, errors.As(err, new(*UnknownDirectiveError)))
}
