// Package setup is the interactive configuration wizard behind
// "tally -setup". It collects run options and writes them to tally.yaml.
package setup

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/tallyhq/tally/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)
)

const configFileName = "tally.yaml"

type wizardConfig struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output,omitempty"`
	Format        string `yaml:"format"`
	LogLevel      string `yaml:"log_level"`
	StrictAmounts bool   `yaml:"strict_amounts"`
}

// Run launches the terminal wizard and writes the resulting config file.
func Run() error {
	cfg := wizardConfig{
		Format:   config.FormatCSV,
		LogLevel: "info",
	}

	fmt.Println(headerStyle.Render("TALLY CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Set up your transaction replay run.\n"))

	fmt.Println(stepStyle.Render("STEP 1: INPUT"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Transactions file").
				Description("Path to the CSV transaction log").
				Value(&cfg.Input).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("input file cannot be empty")
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("cannot read %s", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Summary output file").
				Description("Leave empty to print the summary to stdout").
				Value(&cfg.Output),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 2: OUTPUT & VALIDATION"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Summary format").
				Options(
					huh.NewOption("CSV (machine readable)", config.FormatCSV),
					huh.NewOption("Table (styled terminal output)", config.FormatTable),
				).
				Value(&cfg.Format),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("debug", "debug"),
					huh.NewOption("info", "info"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&cfg.LogLevel),
			huh.NewConfirm().
				Title("Strict amounts?").
				Description("Reject dispute/resolve/chargeback rows that carry an amount").
				Value(&cfg.StrictAmounts),
		),
	).Run()
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("input: %s\noutput: %s\nformat: %s\nlog level: %s\nstrict amounts: %t",
		cfg.Input, orStdout(cfg.Output), cfg.Format, cfg.LogLevel, cfg.StrictAmounts)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFileName, raw, 0o644); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(
		fmt.Sprintf("\nConfiguration saved to %s\nRun: tally -config %s", configFileName, configFileName)))
	return nil
}

func orStdout(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
