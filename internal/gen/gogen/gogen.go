package gogen

import (
	"fmt"
	"go/types"
	"path"
	"sort"
	"strings"

	. "github.com/dave/jennifer/jen"

	"github.com/hsfzxjy/objc/internal/gen/collector"
)

const objcMod = "github.com/hsfzxjy/objc"

const (
	generatedHeader = "Code generated by objc-gen. DO NOT EDIT."
	buildConstraint = "//go:build darwin"
	receiver        = "o"
)

func typeNameOf(pkgPath string, t types.Type) *Statement {
	switch t := types.Unalias(t).(type) {
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil || obj.Pkg().Path() == pkgPath {
			return Id(obj.Name())
		}
		return Qual(obj.Pkg().Path(), obj.Name())
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return Qual("unsafe", "Pointer")
		}
		return Id(t.Name())
	case *types.Pointer:
		return Op("*").Add(typeNameOf(pkgPath, t.Elem()))
	case *types.Array:
		return Index(Lit(int(t.Len()))).Add(typeNameOf(pkgPath, t.Elem()))
	case *types.Struct:
		return StructFunc(func(g *Group) {
			for i := 0; i < t.NumFields(); i++ {
				f := t.Field(i)
				if f.Embedded() {
					g.Add(typeNameOf(pkgPath, f.Type()))
				} else {
					g.Id(f.Name()).Add(typeNameOf(pkgPath, f.Type()))
				}
			}
		})
	}
	panic(fmt.Sprintf("unreachable: %s", t))
}

func selectorVar(cls *collector.Class, m *collector.Method) string {
	return "sel" + cls.GoName + m.GoName
}

func classFunc(cls *collector.Class) string { return cls.GoName + "Class" }

func paramName(p collector.Param) string {
	if p.Name == receiver {
		return receiver + "_"
	}
	return p.Name
}

type Generator struct {
	pkg    *collector.Package
	suffix string
	files  map[string]*File
}

func NewGenerator(pkg *collector.Package, suffix string) *Generator {
	return &Generator{pkg: pkg, suffix: suffix, files: make(map[string]*File)}
}

// OutputPath is the file the bindings declared in src are written to.
func (g *Generator) OutputPath(src string) string {
	dir, name := path.Split(src)
	return path.Join(dir, strings.TrimSuffix(name, ".go")+g.suffix)
}

func (g *Generator) fileFor(cls *collector.Class) *File {
	dst := g.OutputPath(cls.File)
	if f, ok := g.files[dst]; ok {
		return f
	}
	f := NewFile(g.pkg.Name)
	f.HeaderComment(generatedHeader)
	f.HeaderComment(buildConstraint)
	f.ImportName(objcMod, "objc")
	g.files[dst] = f
	return f
}

func (g *Generator) dumpType(cls *collector.Class, file *File) {
	var embedded *Statement
	if cls.Super != "" {
		embedded = Id(g.pkg.Class(cls.Super).GoName)
	} else {
		embedded = Qual(objcMod, "ID")
	}
	file.Commentf("%s is a reference to an instance of the Objective-C class %s.", cls.GoName, cls.ObjCName)
	file.Type().Id(cls.GoName).Struct(embedded).Line()

	file.Commentf("%s returns the class object of %s.", classFunc(cls), cls.ObjCName)
	file.Var().Id(classFunc(cls)).Op("=").Qual("sync", "OnceValue").Call(
		Func().Params().Qual(objcMod, "Class").Block(
			Return(Qual(objcMod, "GetClass").Call(Lit(cls.ObjCName))),
		),
	).Line()

	if len(cls.Methods) > 0 {
		file.Var().DefsFunc(func(g *Group) {
			for _, m := range cls.Methods {
				g.Id(selectorVar(cls, m)).Op("=").Qual(objcMod, "RegisterName").Call(Lit(m.Selector))
			}
		}).Line()
	}
}

func (g *Generator) dumpMethod(cls *collector.Class, m *collector.Method, file *File) {
	var (
		target *Statement
		name   string
	)
	if m.ClassMethod {
		name = cls.GoName + m.GoName
		target = Id(classFunc(cls)).Call().Dot("AsID").Call()
	} else {
		name = m.GoName
		target = Id(receiver).Dot("ID")
	}

	args := []Code{target, Id(selectorVar(cls, m))}
	params := make([]Code, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, Id(paramName(p)).Add(typeNameOf(g.pkg.Path, p.Type)))
		args = append(args, Id(paramName(p)))
	}

	var resultType, body *Statement
	if m.Result == nil {
		body = Qual(objcMod, "Send").Types(Struct()).Call(args...)
	} else {
		resultType = typeNameOf(g.pkg.Path, m.Result)
		body = Return(Qual(objcMod, "Send").Types(typeNameOf(g.pkg.Path, m.Result)).Call(args...))
	}

	kind := "sends"
	if m.ClassMethod {
		kind = "sends the class method"
	}
	file.Commentf("%s %s %s.", name, kind, m.Selector)
	fn := file.Func()
	if !m.ClassMethod {
		fn.Params(Id(receiver).Id(cls.GoName))
	}
	fn.Id(name).Params(params...)
	if resultType != nil {
		fn.Add(resultType)
	}
	fn.Block(body).Line()
}

func (g *Generator) AddClass(cls *collector.Class) {
	file := g.fileFor(cls)
	g.dumpType(cls, file)
	for _, m := range cls.Methods {
		g.dumpMethod(cls, m, file)
	}
}

// Files returns the generated files keyed by output path.
func (g *Generator) Files() map[string]*File { return g.files }

func (g *Generator) Paths() []string {
	paths := make([]string, 0, len(g.files))
	for p := range g.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (g *Generator) Save() error {
	for _, p := range g.Paths() {
		if err := g.files[p].Save(p); err != nil {
			return fmt.Errorf("saving %s: %w", p, err)
		}
	}
	return nil
}
