// Package config resolves the tally runtime configuration from an optional
// yaml file, command-line flags and the single positional argument naming
// the transactions file.
package config

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output formats for the account summary.
const (
	FormatCSV   = "csv"
	FormatTable = "table"
)

const (
	defaultFormat   = FormatCSV
	defaultLogLevel = "info"
)

// Usage is the one-line CLI contract printed on argument errors.
const Usage = "usage: tally [flags] <transactions-file>"

// Config captures everything the run needs.
type Config struct {
	InputPath     string
	OutputPath    string
	Format        string
	LogLevel      string
	StrictAmounts bool
	Setup         bool
}

// fileConfig mirrors Config for yaml decoding.
type fileConfig struct {
	Input         string `yaml:"input,omitempty"`
	Output        string `yaml:"output,omitempty"`
	Format        string `yaml:"format,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	StrictAmounts bool   `yaml:"strict_amounts,omitempty"`
}

// Get parses flags and the optional yaml config. Flags win over the file.
// Exactly one positional argument (the transactions file) is required
// unless the file already names an input; anything else is a usage error
// reported before any ledger work happens.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	format := flag.String("format", "", "summary format: csv or table")
	output := flag.String("output", "", "write the summary to this file instead of stdout")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	strict := flag.Bool("strict-amounts", false, "fail on dispute/resolve/chargeback rows that carry an amount")
	setup := flag.Bool("setup", false, "run the interactive setup wizard and exit")
	flag.Parse()

	cfg := Config{Format: defaultFormat, LogLevel: defaultLogLevel}

	if *configPath != "" {
		fileCfg, err := getYaml(*configPath)
		if err != nil {
			return Config{}, err
		}
		applyFile(&cfg, fileCfg)
	}

	if *format != "" {
		cfg.Format = *format
	}
	if *output != "" {
		cfg.OutputPath = *output
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *strict {
		cfg.StrictAmounts = true
	}

	if *setup {
		cfg.Setup = true
		return cfg, nil
	}

	switch flag.NArg() {
	case 0:
		if cfg.InputPath == "" {
			return Config{}, errors.New(Usage)
		}
	case 1:
		cfg.InputPath = flag.Arg(0)
	default:
		return Config{}, errors.New(Usage)
	}

	if cfg.Format != FormatCSV && cfg.Format != FormatTable {
		return Config{}, errors.Errorf("invalid --format provided, --format=%s (want csv or table)", cfg.Format)
	}

	return cfg, nil
}

func getYaml(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, errors.Wrap(err, "read config file")
	}

	var fileCfg fileConfig
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return fileConfig{}, errors.Wrapf(err, "parse config file %s", path)
	}
	return fileCfg, nil
}

func applyFile(cfg *Config, fileCfg fileConfig) {
	if fileCfg.Input != "" {
		cfg.InputPath = fileCfg.Input
	}
	if fileCfg.Output != "" {
		cfg.OutputPath = fileCfg.Output
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.StrictAmounts {
		cfg.StrictAmounts = true
	}
}
