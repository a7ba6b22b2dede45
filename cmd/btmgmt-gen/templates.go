package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to the templates.
var funcMap = template.FuncMap{
	"hex16": func(v uint16) string { return fmt.Sprintf("0x%04X", v) },
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

type sectionData struct {
	TypeName string
	TypeDoc  string
	ConstDoc string
	Prefix   string
	MapName  string
	Recv     string
	Noun     string
	Entries  []RawCode
}

type fileData struct {
	Package  string
	Source   string
	Sections []sectionData
}

const fileTmpl = `// Code generated by btmgmt-gen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import "fmt"
{{range .Sections}}{{template "section" .}}{{end}}`

const sectionTmpl = `{{define "section"}}
// {{.TypeName}} is {{.TypeDoc}}.
type {{.TypeName}} uint16

// {{.ConstDoc}}.
const (
{{- range .Entries}}
	{{$.Prefix}}{{.Name}} {{$.TypeName}} = {{hex16 .Code}}
{{- end}}
)

var {{.MapName}} = map[{{.TypeName}}]string{
{{- range .Entries}}
	{{$.Prefix}}{{.Name}}: {{quote .Title}},
{{- end}}
}

// String returns the {{.Noun}} name.
func ({{.Recv}} {{.TypeName}}) String() string {
	if name, ok := {{.MapName}}[{{.Recv}}]; ok {
		return name
	}
	return fmt.Sprintf("{{.TypeName}}(0x%04x)", uint16({{.Recv}}))
}

// Known reports whether the {{.Noun}} code is defined.
func ({{.Recv}} {{.TypeName}}) Known() bool {
	_, ok := {{.MapName}}[{{.Recv}}]
	return ok
}
{{end}}`

var templates = template.Must(template.New("file").Funcs(funcMap).Parse(fileTmpl + sectionTmpl))

// Generate renders the Go source for table.
func Generate(table *RawTable, pkg, source string) (string, error) {
	data := fileData{
		Package: pkg,
		Source:  source,
		Sections: []sectionData{
			{
				TypeName: "Opcode",
				TypeDoc:  "a management command opcode",
				ConstDoc: "Command opcodes",
				Prefix:   "Op",
				MapName:  "opcodeNames",
				Recv:     "o",
				Noun:     "command",
				Entries:  table.Commands,
			},
			{
				TypeName: "EventCode",
				TypeDoc:  "a management event code",
				ConstDoc: "Event codes",
				Prefix:   "Ev",
				MapName:  "eventNames",
				Recv:     "e",
				Noun:     "event",
				Entries:  table.Events,
			},
		},
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "file", data); err != nil {
		return "", err
	}
	return b.String(), nil
}
