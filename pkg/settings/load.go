package settings

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/visigraph/pkg/errors"
)

// DefaultFile is the settings file looked up in the working directory when
// no explicit path is given.
const DefaultFile = "visigraph.toml"

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: VISIGRAPH_FORCE__REPULSIVE=0.002.
const EnvPrefix = "VISIGRAPH_"

// FlagKeys maps command line flag names to settings keys. Flags not listed
// here are ignored by [Load].
var FlagKeys = map[string]string{
	"grid-spacing":     "arrange.grid_spacing",
	"tree-spacing":     "arrange.tree_spacing",
	"circle-radius":    "arrange.circle_radius_multiplier",
	"attractive-force": "force.attractive",
	"repulsive-force":  "force.repulsive",
	"damping":          "force.damping",
	"speed":            "force.speed",
	"threshold":        "force.threshold",
	"max-steps":        "force.max_steps",
	"snap-margin":      "geometry.snap_margin_ratio",
	"vertex-labels":    "display.vertex_labels",
	"edge-handles":     "display.edge_handles",
	"crossings":        "display.crossings",
	"store":            "storage.backend",
	"store-dir":        "storage.dir",
	"redis-addr":       "storage.redis.addr",
	"mongo-uri":        "storage.mongo.uri",
	"cache-dir":        "cache.dir",
	"no-cache":         "cache.disabled",
	"addr":             "server.addr",
}

// Load builds settings from, in increasing priority: built-in defaults, the
// TOML file at path, VISIGRAPH_ environment variables and the flags in f.
//
// An empty path tries [DefaultFile] and silently skips it when absent. An
// explicit path that does not exist is an error.
func Load(path string, f *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(defaultsProvider{}, nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		_ = k.Load(file.Provider(DefaultFile), tomlparser.Parser())
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
		}
		if err := k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "settings file %s", path)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[fl.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	s := Default()
	s.Palette.Elements = nil
	if err := k.UnmarshalWithConf("", s, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			ZeroFields:       true,
			TagName:          "koanf",
			Result:           s,
		},
	}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode settings")
	}
	return s, nil
}

// Write encodes s as TOML.
func Write(w io.Writer, s *Settings) error {
	return toml.NewEncoder(w).Encode(s)
}

// defaultsProvider feeds the built-in settings to koanf as a nested map.
type defaultsProvider struct{}

func (defaultsProvider) Read() (map[string]interface{}, error) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		return nil, err
	}
	m := map[string]interface{}{}
	if _, err := toml.Decode(buf.String(), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (defaultsProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
