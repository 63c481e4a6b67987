package gen

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/hsfzxjy/objc/internal/gen/exception"
)

func printErrors(pkgs []*packages.Package) int {
	n := 0
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, err := range p.Errors {
			// generated files may not exist yet, and cgo is not run
			isCgoError := strings.Contains(err.Msg, `import C`)
			if isCgoError {
				continue
			}
			n++
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
	})
	return n
}

func LoadPackages(pattern string) []*packages.Package {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedModule,
	}, pattern)
	exception.Die(err)
	if n := printErrors(pkgs); n > 0 {
		log.Warningf("%d errors while loading %s, bindings may be incomplete", n, pattern)
	}
	return pkgs
}
