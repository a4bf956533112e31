// Package config reads the tutor configuration file and its environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fbf-logic/tutor/internal/answer"
	"github.com/fbf-logic/tutor/internal/logic"
	"github.com/fbf-logic/tutor/internal/problem"
	tt "github.com/fbf-logic/tutor/internal/types"
)

const (
	DefaultPath     = ".tutor.yaml"
	DefaultProblems = "data/problems.json"
	DefaultAddr     = ":3001"
)

// Environment variables that take precedence over the file.
const (
	EnvProblems  = "TUTOR_PROBLEMS"
	EnvAddr      = "TUTOR_ADDR"
	EnvMatchMode = "TUTOR_MATCH_MODE"
)

// Config represents the overall configuration of the tutor.
type Config struct {
	Name     string                    `yaml:"name"`
	Problems string                    `yaml:"problems"`
	Match    Match                     `yaml:"match"`
	Policies map[string]PolicyOverride `yaml:"policies,omitempty"`
	Rules    map[string]tt.ConfigRule  `yaml:"rules"`
	Server   Server                    `yaml:"server"`
}

type Match struct {
	Mode              string `yaml:"mode"`
	MaxTableVariables int    `yaml:"max_table_variables"`
}

// PolicyOverride replaces parts of a problem type's default policy.
// Unset fields keep the default.
type PolicyOverride struct {
	ClearOnIncorrect *bool          `yaml:"clear_on_incorrect,omitempty"`
	AdvanceDelay     *time.Duration `yaml:"advance_delay,omitempty"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Name:     "tutor",
		Problems: DefaultProblems,
		Match: Match{
			Mode:              answer.ModeTextual.String(),
			MaxTableVariables: logic.DefaultConfig().MaxTableVariables,
		},
		Rules:  map[string]tt.ConfigRule{},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads the configuration at path over the defaults. A missing file
// is not an error.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// LoadDotenv loads the given .env files, or ".env" when none are given.
// Missing files are skipped and variables already set are kept.
func LoadDotenv(logger *zap.Logger, files ...string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("env file not loaded", zap.String("file", file))
			continue
		}
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}
		logger.Debug("environment loaded", zap.String("file", file))
	}
	return nil
}

// ApplyEnv overlays the TUTOR_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvProblems); ok && strings.TrimSpace(v) != "" {
		c.Problems = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		c.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMatchMode); ok && strings.TrimSpace(v) != "" {
		c.Match.Mode = strings.TrimSpace(v)
	}
	return c.Validate()
}

// Validate reports the first field that cannot be used.
func (c Config) Validate() error {
	if _, err := c.MatchMode(); err != nil {
		return err
	}
	if c.Match.MaxTableVariables < 0 {
		return fmt.Errorf("match.max_table_variables must not be negative, got %d", c.Match.MaxTableVariables)
	}
	for name, override := range c.Policies {
		if !problem.Type(name).Valid() {
			return fmt.Errorf("policy for unknown problem type %q", name)
		}
		if override.AdvanceDelay != nil && *override.AdvanceDelay < 0 {
			return fmt.Errorf("policy %s: advance_delay must not be negative", name)
		}
	}
	return nil
}

func (c Config) MatchMode() (answer.Mode, error) {
	if c.Match.Mode == "" {
		return answer.ModeTextual, nil
	}
	mode, ok := answer.ParseMode(c.Match.Mode)
	if !ok {
		return mode, fmt.Errorf("unknown match mode %q", c.Match.Mode)
	}
	return mode, nil
}

// VerifierConfig returns the settings of the semantic checker.
func (c Config) VerifierConfig() logic.Config {
	config := logic.DefaultConfig()
	if c.Match.MaxTableVariables > 0 {
		config.MaxTableVariables = c.Match.MaxTableVariables
	}
	return config
}

// Matcher builds the answer matcher described by the match section.
func (c Config) Matcher(logger *zap.Logger) (*answer.Matcher, error) {
	mode, err := c.MatchMode()
	if err != nil {
		return nil, err
	}
	return answer.NewMatcher(
		answer.WithMode(mode),
		answer.WithVerifierConfig(c.VerifierConfig()),
		answer.WithLogger(logger),
	), nil
}

// ProblemPolicies merges the overrides into the default policies.
func (c Config) ProblemPolicies() problem.Policies {
	policies := make(problem.Policies, len(problem.Types()))
	for _, t := range problem.Types() {
		policy := problem.DefaultPolicy(t)
		if override, ok := c.Policies[string(t)]; ok {
			if override.ClearOnIncorrect != nil {
				policy.ClearOnIncorrect = *override.ClearOnIncorrect
			}
			if override.AdvanceDelay != nil {
				policy.AdvanceDelay = *override.AdvanceDelay
			}
		}
		policies[t] = policy
	}
	return policies
}

// Write stores the configuration at path, creating or truncating it.
func Write(path string, config Config) error {
	if path == "" {
		path = DefaultPath
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
