// Package config loads the optional clike.toml project file using
// TOML-tagged structs decoded via github.com/pelletier/go-toml.
// clike.toml has no required fields: every setting defaults to the
// baseline interpreter behavior when the file, or any table within it,
// is absent.
package config

import (
	"os"

	"github.com/pelletier/go-toml"

	"clike/internal/parser"
)

// Config is the resolved project configuration, after defaults have been
// applied.
type Config struct {
	TraceDebug bool
	TraceScope bool
	TraceStack bool

	IncludeSearchPaths []string
	IncludeMaxDepth    int

	PrintJoin bool
}

// Default returns the configuration CLIKE uses when no clike.toml is
// present.
func Default() Config {
	return Config{IncludeMaxDepth: parser.DefaultMaxIncludeDepth}
}

type tomlFile struct {
	Trace   tomlTrace   `toml:"trace"`
	Include tomlInclude `toml:"include"`
	Output  tomlOutput  `toml:"output"`
}

type tomlTrace struct {
	Debug bool `toml:"debug"`
	Scope bool `toml:"scope"`
	Stack bool `toml:"stack"`
}

type tomlInclude struct {
	SearchPaths []string `toml:"search-paths,omitempty"`
	MaxDepth    int      `toml:"max-depth"`
}

type tomlOutput struct {
	PrintJoin bool `toml:"print-join"`
}

// Load reads and parses the clike.toml at path. A missing file is not an
// error: Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var tf tomlFile
	tf.Include.MaxDepth = parser.DefaultMaxIncludeDepth
	if err := toml.Unmarshal(buf, &tf); err != nil {
		return cfg, err
	}

	cfg.TraceDebug = tf.Trace.Debug
	cfg.TraceScope = tf.Trace.Scope
	cfg.TraceStack = tf.Trace.Stack
	cfg.IncludeSearchPaths = tf.Include.SearchPaths
	cfg.IncludeMaxDepth = tf.Include.MaxDepth
	cfg.PrintJoin = tf.Output.PrintJoin

	return cfg, nil
}
