package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"log/slog"
	"text/template"

	"codec-generator/internal/compiler"
)

const (
	// DefaultRuntimeImport is the import path of the wire runtime.
	DefaultRuntimeImport = "codec-generator/wire"
	// DefaultGeneratorName is stamped into the header of generated files.
	DefaultGeneratorName = "codec-generator"
	// DefaultFileSuffix is appended to the package name to name the output.
	DefaultFileSuffix = "_codec.go"

	runtimeAlias = "wire"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName overrides the package of the compiled program.
	PackageName string
	// OutputDir is where unformatted sources are dumped when go/format
	// rejects the generated code.
	OutputDir string
	// FileName of the generated file. Defaults to the package name
	// followed by FileSuffix.
	FileName   string
	FileSuffix string
	// RuntimeImport is the import path of the wire runtime package.
	RuntimeImport string
	// GeneratorName and Source are written into the file header.
	GeneratorName string
	Source        string
	// GenerateComments adds the wire id and type of every field as a
	// trailing struct field comment.
	GenerateComments bool
	Logger           *slog.Logger
}

// Generator generates codec source code from compiled programs.
type Generator struct {
	config GeneratorConfig
	tmpl   *template.Template
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// NewGenerator creates a new code generator, filling in defaults.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.RuntimeImport == "" {
		config.RuntimeImport = DefaultRuntimeImport
	}

	if config.GeneratorName == "" {
		config.GeneratorName = DefaultGeneratorName
	}

	if config.FileSuffix == "" {
		config.FileSuffix = DefaultFileSuffix
	}

	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	tmpl := template.Must(template.New("file").Funcs(template.FuncMap{
		"comment": goComment,
	}).Parse(fileTemplate))

	return &Generator{
		config: config,
		tmpl:   tmpl,
	}
}

func (g *Generator) packageName(prog *compiler.Program) string {
	if g.config.PackageName != "" {
		return g.config.PackageName
	}

	if prog.Package != "" {
		return prog.Package
	}

	return "schema"
}

func (g *Generator) fileName(prog *compiler.Program) string {
	if g.config.FileName != "" {
		return g.config.FileName
	}

	return g.packageName(prog) + g.config.FileSuffix
}

// Generate renders the codec source of prog. When the rendered source does
// not pass go/format, the unformatted text is returned along with the error
// and dumped next to the output for inspection.
func (g *Generator) Generate(prog *compiler.Program) ([]GeneratedFile, error) {
	data := g.buildTemplateData(prog)
	filename := g.fileName(prog)

	for _, e := range prog.Entities {
		for i := range e.Fields {
			g.config.Logger.Debug("field codec", "entity", e.Name, "field", describeField(&e.Fields[i]))
		}
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if werr := writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes()); werr != nil {
			g.config.Logger.Warn("writing unformatted source", "error", werr)
		}

		return []GeneratedFile{{Filename: filename, Content: buf.Bytes()}},
			fmt.Errorf("formatting %s: %w", filename, err)
	}

	g.config.Logger.Info("generated codec",
		"file", filename,
		"package", data.PackageName,
		"entities", len(data.Entities),
		"enums", len(data.Enums),
	)

	return []GeneratedFile{{Filename: filename, Content: formatted}}, nil
}

const fileTemplate = `// Code generated by {{.Generator}}. DO NOT EDIT.
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.PackageName}}
{{if or .StdImports .Imports}}
import (
{{- range .StdImports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
{{- if and .StdImports .Imports}}
{{end}}
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{end}}
{{- range .Enums}}
{{template "enum" .}}
{{- end}}
{{- range .Entities}}
{{template "entity" .}}
{{- end}}

{{- define "enum"}}
{{if .Doc}}{{comment .Doc}}{{else}}// {{.Name}} is carried on the wire as its ordinal.{{end}}
type {{.Name}} uint32
{{if .Variants}}
const (
{{- range .Variants}}
{{- if .Doc}}
	{{comment .Doc}}
{{- end}}
	{{.GoName}} {{$.Name}} = {{.Value}}
{{- end}}
)
{{end}}
// {{.Name}}FromOrdinal returns the variant with wire ordinal o.
func {{.Name}}FromOrdinal(o uint32) ({{.Name}}, error) {
{{- if .Variants}}
	switch v := {{.Name}}(o); v {
	case {{range $i, $v := .Variants}}{{if $i}}, {{end}}{{$v.GoName}}{{end}}:
		return v, nil
	}
{{end}}
	return 0, &wire.InvalidOrdinalError{Enum: {{printf "%q" .Name}}, Ordinal: o}
}

// Ordinal returns the wire ordinal of v.
func (v {{.Name}}) Ordinal() uint32 {
	return uint32(v)
}

// IsValid reports whether v is a declared variant.
func (v {{.Name}}) IsValid() bool {
	_, err := {{.Name}}FromOrdinal(uint32(v))

	return err == nil
}

func (v {{.Name}}) String() string {
	switch v {
{{- range .Variants}}
	case {{.GoName}}:
		return {{printf "%q" .Name}}
{{- end}}
	}

	return {{printf "%q" (print .Name "(")}} + strconv.FormatUint(uint64(v), 10) + ")"
}

// {{.Name}}Values returns every variant in declaration order.
func {{.Name}}Values() []{{.Name}} {
	return []{{.Name}}{ {{- range $i, $v := .Variants}}{{if $i}}, {{end}}{{$v.GoName}}{{end -}} }
}
{{- end}}

{{- define "entity"}}
// {{.FullName}} is the full state of {{.Name}}.
{{- if .Doc}}
//
{{comment .Doc}}
{{- end}}
{{.DataStruct}}

// {{.DeltaName}} is a partial update of {{.Name}}. Nil fields carry no change.
{{.UpdateStruct}}
{{if .IsComponent}}
// {{.IDConst}} is the component id of {{.Name}}.
const {{.IDConst}} wire.ComponentID = {{.ComponentID}}

// {{.Name}} is the codec of component {{.Name}}.
type {{.Name}} struct{}

// ComponentID returns {{.IDConst}}.
func ({{.Name}}) ComponentID() wire.ComponentID {
	return {{.IDConst}}
}

// EncodeData writes data into a new component data buffer.
func ({{.Name}}) EncodeData(data *{{.FullName}}) *wire.ComponentData {
	out := wire.NewComponentData({{.IDConst}})
	encode{{.FullName}}(data, out.Fields())

	return out
}

// DecodeData reads the full state of {{.Name}} from a component data buffer.
func ({{.Name}}) DecodeData(data *wire.ComponentData) ({{.FullName}}, error) {
	if err := wire.CheckComponent({{.IDConst}}, data.ID); err != nil {
		return {{.FullName}}{}, err
	}

	return decode{{.FullName}}(data.Fields())
}

// EncodeUpdate writes the fields present in update into a new component
// update buffer.
func ({{.Name}}) EncodeUpdate(update *{{.DeltaName}}) *wire.ComponentUpdate {
	out := wire.NewComponentUpdate({{.IDConst}})
	encode{{.DeltaName}}(update, out.Fields())

	return out
}

// DecodeUpdate reads an update of {{.Name}} from a component update buffer.
func ({{.Name}}) DecodeUpdate(update *wire.ComponentUpdate) ({{.DeltaName}}, error) {
	if err := wire.CheckComponent({{.IDConst}}, update.ID); err != nil {
		return {{.DeltaName}}{}, err
	}

	return decode{{.DeltaName}}(update.Fields())
}
{{else}}
// {{.Name}} is the codec of type {{.Name}}.
type {{.Name}} struct{}

// EncodeData writes data into target.
func ({{.Name}}) EncodeData(data *{{.FullName}}, target wire.Object) {
	encode{{.FullName}}(data, target)
}

// DecodeData reads the full state of {{.Name}} from source.
func ({{.Name}}) DecodeData(source wire.Object) ({{.FullName}}, error) {
	return decode{{.FullName}}(source)
}

// EncodeUpdate writes the fields present in update into target.
func ({{.Name}}) EncodeUpdate(update *{{.DeltaName}}, target wire.Object) {
	encode{{.DeltaName}}(update, target)
}

// DecodeUpdate reads an update of {{.Name}} from source.
func ({{.Name}}) DecodeUpdate(source wire.Object) ({{.DeltaName}}, error) {
	return decode{{.DeltaName}}(source)
}
{{end}}
// CloneData returns a deep copy of data.
func ({{.Name}}) CloneData(data *{{.FullName}}) {{.FullName}} {
	return clone{{.FullName}}(data)
}

// CopyUpdate returns a deep copy of update. Absent fields stay absent.
func ({{.Name}}) CopyUpdate(update *{{.DeltaName}}) {{.DeltaName}} {
	return copy{{.DeltaName}}(update)
}

// FreeUpdate drops the nested updates owned by update, innermost first.
// Freeing an update twice is a no-op.
func ({{.Name}}) FreeUpdate(update *{{.DeltaName}}) {
	free{{.DeltaName}}(update)
}

func encode{{.FullName}}(data *{{.FullName}}, target wire.Object) {
{{.EncodeData}}}

func decode{{.FullName}}(source wire.Object) ({{.FullName}}, error) {
{{.DecodeData}}}

func encode{{.DeltaName}}(update *{{.DeltaName}}, target wire.Object) {
{{.EncodeUpdate}}}

func decode{{.DeltaName}}(source wire.Object) ({{.DeltaName}}, error) {
{{.DecodeUpdate}}}

func clone{{.FullName}}(data *{{.FullName}}) {{.FullName}} {
{{.CloneData}}}

func copy{{.DeltaName}}(update *{{.DeltaName}}) {{.DeltaName}} {
{{.CopyUpdate}}}

func free{{.DeltaName}}(update *{{.DeltaName}}) {
{{.FreeUpdate}}}
{{- end}}
`
