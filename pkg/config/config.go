// Package config loads printer settings.
//
// Settings are layered, each source overriding the previous one:
//
//  1. built-in defaults (defaults.toml)
//  2. a TOML file: the explicit path, or clihelp/config.toml in the XDG
//     config directories
//  3. CLIHELP_ environment variables, `__` separating nested keys
//     (CLIHELP_MAX_WIDTH, CLIHELP_SECTIONS__ORDER=title,usage)
//  4. overrides given by the caller, usually command line flags
package config

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/clihelp/pkg/errors"
	"github.com/arthur-debert/clihelp/pkg/logging"
	"github.com/arthur-debert/clihelp/pkg/markup"
	"github.com/arthur-debert/clihelp/pkg/printer"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed defaults.toml
var defaultConfig []byte

const (
	// EnvPrefix prefixes the environment variables read by Load
	EnvPrefix = "CLIHELP_"
	// FileName is searched for in the XDG config directories
	FileName = "clihelp/config.toml"
	// ThemeAuto detects the style from the terminal
	ThemeAuto = "auto"
)

// Config holds the printer settings
type Config struct {
	FullWidth bool     `koanf:"full_width"`
	MaxWidth  int      `koanf:"max_width"`
	Theme     string   `koanf:"theme"`
	Sections  Sections `koanf:"sections"`
}

// Sections selects and orders the printed sections
type Sections struct {
	Order     []string          `koanf:"order"`
	Disabled  []string          `koanf:"disabled"`
	Templates map[string]string `koanf:"templates"`
}

// Options tells Load where to look
type Options struct {
	// Path is a config file that must exist. When empty the XDG config
	// directories are searched and a missing file is not an error.
	Path string
	// Overrides take precedence over every other source
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Load reads the settings from all sources
func Load(opts Options) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	path := opts.Path
	if path == "" {
		if found, err := xdg.SearchConfigFile(FileName); err == nil {
			path = found
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Bool("fullWidth", cfg.FullWidth).
		Int("maxWidth", cfg.MaxWidth).
		Str("theme", cfg.Theme).
		Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps CLIHELP_SECTIONS__ORDER to sections.order
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks values Load cannot type check
func (c *Config) Validate() error {
	if c.MaxWidth < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "max_width must not be negative, got %d", c.MaxWidth).
			WithDetail("key", "max_width")
	}
	if c.Theme != "" && c.Theme != ThemeAuto {
		if _, ok := markup.NamedStyle(c.Theme); !ok {
			return errors.Newf(errors.ErrConfigInvalid, "unknown theme %q", c.Theme).
				WithDetail("key", "theme")
		}
	}
	return nil
}

// Apply configures p. Templates are set first, then the order, then
// disabled sections are removed.
func (c *Config) Apply(p *printer.Printer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	p.WithFullWidth(c.FullWidth)
	if c.MaxWidth > 0 {
		p.WithMaxWidth(c.MaxWidth)
	}

	keys := make([]string, 0, len(c.Sections.Templates))
	for key := range c.Sections.Templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := p.SetTemplate(key, c.Sections.Templates[key]); err != nil {
			return errors.Wrapf(err, errors.ErrConfigInvalid, "invalid template for section %q", key).
				WithDetail("section", key)
		}
	}

	if len(c.Sections.Order) > 0 {
		p.Registry().SetKeys(c.Sections.Order)
	}
	for _, key := range c.Sections.Disabled {
		p.Without(key)
	}

	if c.Theme != "" && c.Theme != ThemeAuto {
		style, _ := markup.NamedStyle(c.Theme)
		p.WithStyle(style)
	}
	return nil
}
