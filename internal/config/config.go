package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// FileName is the default config file name.
const FileName = "entrydesk.yaml"

// Config represents the top-level entrydesk.yaml configuration.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	MasterFile string           `yaml:"master_file"` // relative to the config file
	Display    DisplayConfig    `yaml:"display"`
	Validation ValidationConfig `yaml:"validation"`
	Table      TableConfig      `yaml:"table"`
	Server     ServerConfig     `yaml:"server"`
	Forms      []FormConfig     `yaml:"forms"`
}

// BusinessConfig identifies the business shown in the title bar.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// DisplayConfig controls how derived values are rendered.
type DisplayConfig struct {
	HideZero bool `yaml:"hide_zero"`
}

// ValidationConfig selects the commit policy.
type ValidationConfig struct {
	Strict bool `yaml:"strict"`
}

// TableConfig controls the committed-rows table.
type TableConfig struct {
	PageSize int `yaml:"page_size"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// FormConfig describes one transaction form.
type FormConfig struct {
	Kind          string `yaml:"kind"`
	Label         string `yaml:"label"`
	IDPrefix      string `yaml:"id_prefix"`
	Shortcut      string `yaml:"shortcut"` // single letter pressed after Alt+T
	CategoryLabel string `yaml:"category_label"`
	QuantityLabel string `yaml:"quantity_label"`
}

// Load reads an entrydesk.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the three entry forms of the shop floor.
func Default(businessName string) *Config {
	return &Config{
		Business:   BusinessConfig{Name: businessName},
		MasterFile: "master.csv",
		Table:      TableConfig{PageSize: 5},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Forms: []FormConfig{
			{Kind: string(model.FormFabricEntry), Label: "Fabric Entry", IDPrefix: "FAB", Shortcut: "F", CategoryLabel: "Fabric For", QuantityLabel: "Meter"},
			{Kind: string(model.FormCuttingEntry), Label: "Cutting Entry", IDPrefix: "CUT", Shortcut: "C", CategoryLabel: "Cutting For", QuantityLabel: "Pieces"},
			{Kind: string(model.FormWorkEntry), Label: "Work Entry", IDPrefix: "WRK", Shortcut: "W", CategoryLabel: "Work For", QuantityLabel: "Pieces"},
		},
	}
}

// Validate checks the constraints Load relies on.
func (c *Config) Validate() error {
	if c.Table.PageSize < 0 {
		return fmt.Errorf("table.page_size must not be negative, got %d", c.Table.PageSize)
	}
	if len(c.Forms) == 0 {
		return errors.New("no forms configured")
	}

	kinds := make(map[string]bool)
	keys := make(map[rune]string)
	for i, f := range c.Forms {
		if f.Kind == "" {
			return fmt.Errorf("forms[%d]: kind is required", i)
		}
		if kinds[f.Kind] {
			return fmt.Errorf("forms[%d]: duplicate kind %q", i, f.Kind)
		}
		kinds[f.Kind] = true

		if f.Shortcut == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(strings.ToUpper(f.Shortcut))
		if size != len(f.Shortcut) {
			return fmt.Errorf("forms[%d]: shortcut %q must be a single letter", i, f.Shortcut)
		}
		if other, ok := keys[r]; ok {
			return fmt.Errorf("forms[%d]: shortcut %q already used by %s", i, f.Shortcut, other)
		}
		keys[r] = f.Kind
	}
	return nil
}

// FormSpecs converts the configured forms to model specs. Categories are
// filled in from the master catalog by the caller.
func (c *Config) FormSpecs() []model.FormSpec {
	specs := make([]model.FormSpec, len(c.Forms))
	for i, f := range c.Forms {
		var key rune
		if f.Shortcut != "" {
			key, _ = utf8.DecodeRuneInString(strings.ToUpper(f.Shortcut))
		}
		label := f.Label
		if label == "" {
			label = f.Kind
		}
		specs[i] = model.FormSpec{
			Kind:          model.FormKind(f.Kind),
			Label:         label,
			IDPrefix:      f.IDPrefix,
			Shortcut:      key,
			CategoryLabel: f.CategoryLabel,
			QuantityLabel: f.QuantityLabel,
		}
	}
	return specs
}

// PageSize returns the configured page size, or 5 when unset.
func (c *Config) PageSize() int {
	if c.Table.PageSize <= 0 {
		return 5
	}
	return c.Table.PageSize
}

// Environment variables that override the file.
const (
	EnvAddr     = "ENTRYDESK_ADDR"
	EnvHideZero = "ENTRYDESK_HIDE_ZERO"
	EnvStrict   = "ENTRYDESK_STRICT"
	EnvPageSize = "ENTRYDESK_PAGE_SIZE"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg from ENTRYDESK_* variables read through lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvHideZero); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvHideZero, v, err)
		}
		c.Display.HideZero = b
	}
	if v, ok := lookup(EnvStrict); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvStrict, v, err)
		}
		c.Validation.Strict = b
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("parsing %s=%q: must be a positive integer", EnvPageSize, v)
		}
		c.Table.PageSize = n
	}
	return nil
}
