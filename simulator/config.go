package simulator

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the full application configuration, loaded from a YAML file.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Formulas FormulaConfig `yaml:"formulas"`
	TopK     TopKConfig    `yaml:"topk"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" default:":8080" validate:"required"`
}

// CatalogConfig locates the catalog CSV. Source may be a local path or an
// http(s) URL; the transport settings apply to remote sources.
type CatalogConfig struct {
	Source      string        `yaml:"source" default:"base_file.csv" validate:"required"`
	Timeout     time.Duration `yaml:"timeout" default:"30s" validate:"gte=1s"`
	MaxRetries  int           `yaml:"max_retries" default:"3" validate:"gte=0,lte=10"`
	RetryWaitMS int           `yaml:"retry_wait_ms" default:"100" validate:"gte=0,lte=10000"`
}

// UnmarshalYAML parses the duration field from its string form ("30s");
// yaml.v3 has no native time.Duration support.
func (c *CatalogConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Source      string `yaml:"source"`
		Timeout     string `yaml:"timeout"`
		MaxRetries  *int   `yaml:"max_retries"`
		RetryWaitMS *int   `yaml:"retry_wait_ms"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Source != "" {
		c.Source = raw.Source
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid catalog timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = d
	}
	if raw.MaxRetries != nil {
		c.MaxRetries = *raw.MaxRetries
	}
	if raw.RetryWaitMS != nil {
		c.RetryWaitMS = *raw.RetryWaitMS
	}
	return nil
}

// FormulaConfig carries the variable whitelist and the two default
// formulas offered to analysts. The whitelist is configuration, not code:
// adding a bindable column never touches the evaluator.
type FormulaConfig struct {
	Variables []string `yaml:"variables" default:"[\"ranking_score\",\"asp_boost\",\"pop_boost\"]" validate:"required,min=1"`
	DefaultA  string   `yaml:"default_a" default:"ranking_score * (1 + asp_boost)" validate:"required"`
	DefaultB  string   `yaml:"default_b" default:"ranking_score * (1 + 2 * asp_boost)" validate:"required"`
}

type TopKConfig struct {
	Default int `yaml:"default" default:"20" validate:"gte=1"`
	Min     int `yaml:"min" default:"5" validate:"gte=1"`
	Max     int `yaml:"max" default:"100" validate:"gtefield=Min"`
}

// LoadConfig reads, defaults, env-resolves and validates a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Server.Addr, err = resolveEnvVar(cfg.Server.Addr)
	if err != nil {
		return nil, err
	}
	cfg.Catalog.Source, err = resolveEnvVar(cfg.Catalog.Source)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}
	return &cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:default} syntax
var envVarPattern = regexp.MustCompile(`^\$\{([A-Z_][A-Z0-9_]*)(:[^}]*)?\}$`)

// resolveEnvVar resolves environment variable references in config values.
func resolveEnvVar(value string) (string, error) {
	matches := envVarPattern.FindStringSubmatch(value)
	if matches == nil {
		return value, nil
	}

	varName := matches[1]
	defaultPart := matches[2]

	if envValue, exists := os.LookupEnv(varName); exists {
		return envValue, nil
	}
	if defaultPart != "" {
		return strings.TrimPrefix(defaultPart, ":"), nil
	}
	return "", fmt.Errorf("required environment variable not set: %s", varName)
}
