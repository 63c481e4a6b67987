package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const DefaultSuffix = ".objc.go"

type ConfigStruct struct {
	Output struct {
		Suffix string `ms:"suffix"`
	} `ms:"output"`
	Classes struct {
		// Objective-C class name to Go type name. viper folds keys to lower
		// case, so lookups ignore case.
		Renames map[string]string `ms:"renames"`
	} `ms:"classes"`
}

// Load reads the yaml config at path. A missing file is not an error when
// optional is set; the defaults are used instead.
func Load(path string, optional bool) (*ConfigStruct, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetDefault("output.suffix", DefaultSuffix)
	v.SetDefault("classes.renames", make(map[string]string))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !optional || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, err
		}
	}
	return decode(v)
}

// Parse reads a yaml config from text. It is Load for callers that already
// hold the contents.
func Parse(text string) (*ConfigStruct, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("output.suffix", DefaultSuffix)
	v.SetDefault("classes.renames", make(map[string]string))
	if err := v.ReadConfig(strings.NewReader(text)); err != nil {
		return nil, err
	}
	return decode(v)
}

func decode(v *viper.Viper) (*ConfigStruct, error) {
	c := new(ConfigStruct)
	err := v.UnmarshalExact(c, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.TagName = "ms"
	})
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(c.Output.Suffix, ".go") {
		return nil, fmt.Errorf("output.suffix %q must end with .go", c.Output.Suffix)
	}
	renames := make(map[string]string, len(c.Classes.Renames))
	for k, v := range c.Classes.Renames {
		renames[strings.ToLower(k)] = v
	}
	c.Classes.Renames = renames
	return c, nil
}

func (c *ConfigStruct) GoName(objcName string) string {
	if name, ok := c.Classes.Renames[strings.ToLower(objcName)]; ok {
		return name
	}
	return objcName
}
