package gen

import (
	"cmp"
	"fmt"
	"slices"

	"codec-generator/internal/common"
	"codec-generator/internal/compiler"
)

// templateData is the data of one generated file.
type templateData struct {
	Generator   string
	Source      string
	PackageName string
	StdImports  []importSpec
	Imports     []importSpec
	Enums       []enumData
	Entities    []entityData
}

type importSpec struct {
	Alias string
	Path  string
	Std   bool
}

type enumData struct {
	Name     string
	Doc      string
	Variants []variantData
}

type variantData struct {
	Name   string
	GoName string
	Value  uint32
	Doc    string
}

// entityData holds the declarations and helper bodies of one entity.
type entityData struct {
	Name        string
	Doc         string
	FullName    string
	DeltaName   string
	IsComponent bool
	ComponentID uint32
	IDConst     string

	DataStruct   string
	UpdateStruct string

	EncodeData   string
	DecodeData   string
	EncodeUpdate string
	DecodeUpdate string
	CloneData    string
	CopyUpdate   string
	FreeUpdate   string
}

func (g *Generator) buildTemplateData(prog *compiler.Program) *templateData {
	em := newEmitter()

	data := &templateData{
		Generator:   g.config.GeneratorName,
		Source:      g.config.Source,
		PackageName: g.packageName(prog),
	}

	for _, en := range prog.Enums {
		em.use("strconv")

		ed := enumData{Name: en.Name, Doc: en.Doc}
		for _, v := range en.Variants {
			ed.Variants = append(ed.Variants, variantData{Name: v.Name, GoName: v.GoName, Value: v.Value, Doc: v.Doc})
		}

		data.Enums = append(data.Enums, ed)
	}

	for _, e := range prog.Entities {
		data.Entities = append(data.Entities, g.buildEntityData(em, e))
	}

	if len(data.Enums)+len(data.Entities) > 0 {
		alias := ""
		if common.PkgAlias(g.config.RuntimeImport) != runtimeAlias {
			alias = runtimeAlias
		}

		em.imports[g.config.RuntimeImport] = importSpec{Alias: alias, Path: g.config.RuntimeImport}
	}

	for _, spec := range em.imports {
		if spec.Std {
			data.StdImports = append(data.StdImports, spec)
		} else {
			data.Imports = append(data.Imports, spec)
		}
	}

	byPath := func(a, b importSpec) int { return cmp.Compare(a.Path, b.Path) }
	slices.SortFunc(data.StdImports, byPath)
	slices.SortFunc(data.Imports, byPath)

	return data
}

func (g *Generator) buildEntityData(em *emitter, e *compiler.Entity) entityData {
	return entityData{
		Name:         e.Name,
		Doc:          e.Doc,
		FullName:     e.FullName(),
		DeltaName:    e.DeltaName(),
		IsComponent:  e.IsComponent,
		ComponentID:  e.ComponentID,
		IDConst:      componentIDConst(e.Name),
		DataStruct:   g.generateStruct(e, false),
		UpdateStruct: g.generateStruct(e, true),
		EncodeData:   em.encodeDataBody(e),
		DecodeData:   em.decodeDataBody(e),
		EncodeUpdate: em.encodeUpdateBody(e),
		DecodeUpdate: em.decodeUpdateBody(e),
		CloneData:    em.cloneDataBody(e),
		CopyUpdate:   em.copyUpdateBody(e),
		FreeUpdate:   em.freeUpdateBody(e),
	}
}

func fallible(e *compiler.Entity) bool {
	return slices.ContainsFunc(e.Fields, func(f compiler.Field) bool { return f.Wire.Fallible() })
}

func where(e *compiler.Entity, f *compiler.Field) string {
	return e.Name + "." + f.Name
}

func (em *emitter) encodeDataBody(e *compiler.Entity) string {
	var c code

	for i := range e.Fields {
		f := &e.Fields[i]
		em.encodeFull(&c, f.Wire, "target", fieldID(f.ID), "data."+f.GoName, 0)
	}

	return c.String()
}

// decodeVars declares the result of a decoder, and err when a field can
// fail to decode.
func decodeVars(c *code, e *compiler.Entity, typ string) {
	if !fallible(e) {
		c.line("var out %s", typ)
		c.line("")

		return
	}

	c.line("var (")
	c.line("out %s", typ)
	c.line("err error")
	c.line(")")
	c.line("")
}

func (em *emitter) decodeDataBody(e *compiler.Entity) string {
	var c code

	decodeVars(&c, e, e.FullName())

	for i := range e.Fields {
		f := &e.Fields[i]
		em.decodeFull(&c, f.Wire, "source", fieldID(f.ID), "out."+f.GoName, where(e, f), 0)
	}

	c.line("")
	c.line("return out, nil")

	return c.String()
}

func (em *emitter) encodeUpdateBody(e *compiler.Entity) string {
	var c code

	c.line("if update == nil {")
	c.line("return")
	c.line("}")
	c.line("")

	for i := range e.Fields {
		f := &e.Fields[i]
		em.encodeDelta(&c, f.Wire, "target", fieldID(f.ID), "update."+f.GoName, 0)
	}

	return c.String()
}

func (em *emitter) decodeUpdateBody(e *compiler.Entity) string {
	var c code

	decodeVars(&c, e, e.DeltaName())

	for i := range e.Fields {
		f := &e.Fields[i]
		em.decodeDelta(&c, f.Wire, "source", fieldID(f.ID), "out."+f.GoName, where(e, f), 0)
	}

	c.line("")
	c.line("return out, nil")

	return c.String()
}

func (em *emitter) cloneDataBody(e *compiler.Entity) string {
	var c code

	c.line("out := *data")

	for i := range e.Fields {
		f := &e.Fields[i]
		if simple(f.Wire) {
			continue
		}

		em.cloneFull(&c, f.Wire, "out."+f.GoName, "data."+f.GoName, 0)
	}

	c.line("")
	c.line("return out")

	return c.String()
}

func (em *emitter) copyUpdateBody(e *compiler.Entity) string {
	var c code

	c.line("var out %s", e.DeltaName())
	c.line("if update == nil {")
	c.line("return out")
	c.line("}")
	c.line("")

	for i := range e.Fields {
		f := &e.Fields[i]
		em.copyDelta(&c, f.Wire, "out."+f.GoName, "update."+f.GoName, 0)
	}

	c.line("")
	c.line("return out")

	return c.String()
}

func (em *emitter) freeUpdateBody(e *compiler.Entity) string {
	var c code

	c.line("if update == nil {")
	c.line("return")
	c.line("}")

	for i := range e.Fields {
		f := &e.Fields[i]
		if !owned(f.Wire) {
			continue
		}

		c.line("")
		c.line("if update.%s != nil {", f.GoName)
		c.line("%s(update.%s)", freeUpdateFunc(refOf(f.Wire)), f.GoName)
		c.line("update.%s = nil", f.GoName)
		c.line("}")
	}

	return c.String()
}

// describeField is the label of a field in generator log records.
func describeField(f *compiler.Field) string {
	return fmt.Sprintf("%d %s %s", f.ID, f.Name, f.Wire)
}
