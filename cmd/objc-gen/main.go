package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/hsfzxjy/objc/internal/gen"
	"github.com/hsfzxjy/objc/internal/gen/config"
	"github.com/hsfzxjy/objc/internal/gen/exception"
)

func main() {
	defaultConfig, err := config.Opts.Parse(os.Args[1:])
	exception.Die(err)

	commonlog.Initialize(config.Opts.Verbosity(), config.Opts.LogFile)

	cfg, err := config.Load(config.Opts.ConfigFile, defaultConfig)
	exception.Die(err)

	gen.Run(config.Opts.Package.Value, cfg)
}
