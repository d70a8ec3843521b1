// Package java renders finalized enum definitions as Java source.
package java

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/cppjava/enumgen/ir"
)

const classTemplate = `// This file is autogenerated by
//     {{.Tool}}
// From
//     {{.Source}}

package {{.Package}};

public class {{.ClassName}} {
{{- range .Entries}}
  public static final int {{.Name}} = {{.Value}};
{{- end}}
}
`

var tmpl = template.Must(template.New("enumclass").Parse(classTemplate))

// Tool is the name stamped into the generated-by banner.
const Tool = "enumgen"

type templateData struct {
	Tool      string
	Source    string
	Package   string
	ClassName string
	Entries   []ir.Entry
}

// Render emits one Java class of integer constants for a finalized
// definition. sourcePath names the header the definition came from and only
// appears in the banner. Values render with their default formatting, so
// textual values (left unresolved by design) are emitted verbatim.
func Render(def *ir.EnumDefinition, sourcePath string) ([]byte, error) {
	var buf bytes.Buffer
	data := templateData{
		Tool:      Tool,
		Source:    sourcePath,
		Package:   def.Package,
		ClassName: def.ClassName(),
		Entries:   def.Entries,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", def.ClassName(), err)
	}
	return buf.Bytes(), nil
}
