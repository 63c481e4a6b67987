// Package gen turns interfaces annotated with //objc:class into typed
// message-sending bindings.
//
//	//objc:class NSString NSObject
//	type nsString interface {
//		//objc:class-method
//		//objc:selector stringWithUTF8String:
//		WithUTF8String(s unsafe.Pointer) objc.ID
//		Length() uint
//	}
//
// generates a NSString struct embedding NSObject, a NSStringClass accessor,
// the function NSStringWithUTF8String and the method NSString.Length.
package gen

import (
	"errors"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/packages"

	"github.com/hsfzxjy/objc/internal/gen/collector"
	"github.com/hsfzxjy/objc/internal/gen/config"
	"github.com/hsfzxjy/objc/internal/gen/exception"
	"github.com/hsfzxjy/objc/internal/gen/gogen"
)

var log = commonlog.GetLogger("objc-gen")

// Generate collects the bindings of one loaded package and renders them.
func Generate(ppkg *packages.Package, cfg *config.ConfigStruct) (*gogen.Generator, error) {
	pkg, err := collector.Collect(ppkg, cfg.GoName)
	if err != nil {
		return nil, err
	}
	g := gogen.NewGenerator(pkg, cfg.Output.Suffix)
	for _, cls := range pkg.Classes {
		log.Debugf("binding %s as %s.%s with %d methods", cls.ObjCName, pkg.Path, cls.GoName, len(cls.Methods))
		g.AddClass(cls)
	}
	return g, nil
}

// Run loads the packages matching pattern and writes their bindings.
func Run(pattern string, cfg *config.ConfigStruct) {
	for _, ppkg := range LoadPackages(pattern) {
		g, err := Generate(ppkg, cfg)
		var cerr *collector.Error
		if errors.As(err, &cerr) {
			exception.ThrowAt(ppkg, cerr, "%s", cerr.Msg)
		}
		exception.Die(err)
		if len(g.Files()) == 0 {
			log.Noticef("no //objc:class interfaces in %s", ppkg.PkgPath)
			continue
		}
		exception.Die(g.Save())
		for _, p := range g.Paths() {
			log.Infof("wrote %s", p)
		}
	}
}
