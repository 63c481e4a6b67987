package exception

import (
	"fmt"
	"go/token"
	"os"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/packages"
)

var log = commonlog.GetLogger("objc-gen")

func Throw(args ...any) {
	text := fmt.Sprintf(args[0].(string), args[1:]...)
	log.Errorf("%s", text)
	fmt.Fprintf(os.Stderr, "error: %s\n", text)
	Exit()
}

type hasPos interface {
	Pos() token.Pos
}

func ThrowAt(pkg *packages.Package, obj hasPos, args ...any) {
	text := fmt.Sprintf(args[0].(string), args[1:]...)
	Throw("%s: %s", pkg.Fset.Position(obj.Pos()), text)
}

func Exit() { os.Exit(1) }

func Die(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "oops: %v\n", err)
		Exit()
	}
}
