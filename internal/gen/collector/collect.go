package collector

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
)

const (
	classDirective       = "//objc:class"
	selectorDirective    = "//objc:selector"
	classMethodDirective = "//objc:class-method"
)

type Param struct {
	Name string
	Type types.Type
}

type Method struct {
	GoName      string
	Selector    string
	ClassMethod bool
	Params      []Param
	// nil for methods returning void
	Result types.Type
	Pos    token.Pos
}

// Class is one interface annotated with //objc:class.
type Class struct {
	ObjCName string
	GoName   string
	// Objective-C name of the bound superclass, empty for none
	Super   string
	Methods []*Method
	Iface   *types.TypeName
	File    string
}

type Package struct {
	Name    string
	Path    string
	Classes []*Class
}

func (p *Package) Class(objcName string) *Class {
	for _, c := range p.Classes {
		if c.ObjCName == objcName {
			return c
		}
	}
	return nil
}

type collector struct {
	ppkg   *packages.Package
	goName func(string) string
	out    *Package
}

// Error is a binding problem found in the source.
type Error struct {
	pos      token.Pos
	position token.Position
	Msg      string
}

func (e *Error) Pos() token.Pos { return e.pos }

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.position, e.Msg) }

func (c *collector) errorf(pos token.Pos, format string, args ...any) error {
	return &Error{pos: pos, position: c.ppkg.Fset.Position(pos), Msg: fmt.Sprintf(format, args...)}
}

// directive returns the arguments of the first line of doc that starts
// with name.
func directive(doc *ast.CommentGroup, name string) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	for _, line := range doc.List {
		if line.Text == name {
			return nil, true
		}
		if rest, ok := strings.CutPrefix(line.Text, name+" "); ok {
			return strings.Fields(rest), true
		}
	}
	return nil, false
}

// Collect finds the annotated interfaces of ppkg. goName maps an
// Objective-C class name to the name of its generated Go type.
func Collect(ppkg *packages.Package, goName func(string) string) (*Package, error) {
	c := &collector{
		ppkg:   ppkg,
		goName: goName,
		out:    &Package{Name: ppkg.Name, Path: ppkg.PkgPath},
	}
	for _, file := range ppkg.Syntax {
	NEXT_DECL:
		for _, decl := range file.Decls {
			decl, ok := decl.(*ast.GenDecl)
			if !ok || decl.Tok != token.TYPE {
				continue NEXT_DECL
			}
			for _, spec := range decl.Specs {
				spec := spec.(*ast.TypeSpec)
				args, ok := directive(spec.Doc, classDirective)
				if !ok && len(decl.Specs) == 1 {
					args, ok = directive(decl.Doc, classDirective)
				}
				if !ok {
					continue
				}
				if err := c.collectClass(spec, args); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, cls := range c.out.Classes {
		if cls.Super != "" && c.out.Class(cls.Super) == nil {
			return nil, c.errorf(cls.Iface.Pos(), "superclass %s of %s is not bound in package %s", cls.Super, cls.ObjCName, ppkg.PkgPath)
		}
	}
	return c.out, nil
}

func (c *collector) collectClass(spec *ast.TypeSpec, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return c.errorf(spec.Pos(), "usage: %s <Name> [<Superclass>]", classDirective)
	}
	if spec.Assign != token.NoPos || spec.TypeParams != nil {
		return c.errorf(spec.Pos(), "%s must annotate a plain interface type", classDirective)
	}
	itype, ok := spec.Type.(*ast.InterfaceType)
	if !ok {
		return c.errorf(spec.Pos(), "%s must annotate an interface, %s is not one", classDirective, spec.Name.Name)
	}
	if c.out.Class(args[0]) != nil {
		return c.errorf(spec.Pos(), "class %s is bound twice", args[0])
	}

	obj, _ := c.ppkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
	if obj == nil {
		return c.errorf(spec.Pos(), "no type information for %s", spec.Name.Name)
	}
	cls := &Class{
		ObjCName: args[0],
		GoName:   c.goName(args[0]),
		Iface:    obj,
		File:     c.ppkg.Fset.Position(spec.Pos()).Filename,
	}
	if len(args) == 2 {
		cls.Super = args[1]
	}
	if cls.GoName == spec.Name.Name {
		return c.errorf(spec.Pos(), "generated type %s would collide with the interface, rename one of them", cls.GoName)
	}

	for _, field := range itype.Methods.List {
		if len(field.Names) == 0 {
			return c.errorf(field.Pos(), "embedded interfaces are not supported")
		}
		m, err := c.collectMethod(field)
		if err != nil {
			return err
		}
		cls.Methods = append(cls.Methods, m)
	}
	c.out.Classes = append(c.out.Classes, cls)
	return nil
}

func (c *collector) collectMethod(field *ast.Field) (*Method, error) {
	ident := field.Names[0]
	fn, _ := c.ppkg.TypesInfo.Defs[ident].(*types.Func)
	if fn == nil {
		return nil, c.errorf(ident.Pos(), "no type information for %s", ident.Name)
	}
	sig := fn.Type().(*types.Signature)
	if sig.Variadic() {
		return nil, c.errorf(ident.Pos(), "variadic method %s cannot be bound", ident.Name)
	}

	m := &Method{GoName: ident.Name, Pos: ident.Pos()}
	_, m.ClassMethod = directive(field.Doc, classMethodDirective)

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		if err := checkType(p.Type()); err != nil {
			return nil, c.errorf(p.Pos(), "parameter %d of %s: %v", i, ident.Name, err)
		}
		name := p.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		m.Params = append(m.Params, Param{Name: name, Type: p.Type()})
	}
	switch results := sig.Results(); results.Len() {
	case 0:
	case 1:
		if err := checkType(results.At(0).Type()); err != nil {
			return nil, c.errorf(ident.Pos(), "result of %s: %v", ident.Name, err)
		}
		m.Result = results.At(0).Type()
	default:
		return nil, c.errorf(ident.Pos(), "method %s returns more than one value", ident.Name)
	}

	if args, ok := directive(field.Doc, selectorDirective); ok {
		if len(args) != 1 {
			return nil, c.errorf(field.Pos(), "usage: %s <selector>", selectorDirective)
		}
		if err := CheckSelector(args[0], len(m.Params)); err != nil {
			return nil, c.errorf(field.Pos(), "%v", err)
		}
		m.Selector = args[0]
	} else {
		sel, err := DeriveSelector(ident.Name, len(m.Params))
		if err != nil {
			return nil, c.errorf(ident.Pos(), "%v; name the selector with %s", err, selectorDirective)
		}
		m.Selector = sel
	}
	return m, nil
}

// checkType rejects types that have no C representation.
func checkType(t types.Type) error {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Info()&(types.IsBoolean|types.IsInteger|types.IsFloat) != 0:
			return nil
		case u.Kind() == types.UnsafePointer:
			return nil
		}
		return fmt.Errorf("%s has no C representation", t)
	case *types.Pointer:
		return nil
	case *types.Array:
		return checkType(u.Elem())
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			if err := checkType(u.Field(i).Type()); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s has no C representation", t)
}
