package config

import "github.com/jessevdk/go-flags"

type OptsStruct struct {
	Package struct {
		Value string `positional-arg-name:"package" required:"1"`
	} `positional-args:"yes"`
	ConfigFile string `short:"c" long:"config" default:"objc-gen.yaml" description:"Path to objc-gen config file"`
	Verbose    []bool `short:"v" long:"verbose" description:"Log more, repeat for debug output"`
	LogFile    string `long:"log" description:"Write logs to this file instead of stderr"`
}

// Parse fills o from the command line args. defaultConfig reports whether
// ConfigFile is the default path rather than one given with -c; only the
// default may be absent.
func (o *OptsStruct) Parse(args []string) (defaultConfig bool, err error) {
	parser := flags.NewParser(o, flags.HelpFlag|flags.PassDoubleDash)
	if _, err = parser.ParseArgs(args); err != nil {
		return false, err
	}
	return parser.FindOptionByLongName("config").IsSetDefault(), nil
}

// Verbosity maps the number of -v flags to a commonlog verbosity.
func (o *OptsStruct) Verbosity() int { return len(o.Verbose) }

var Opts OptsStruct
