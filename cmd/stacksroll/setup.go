package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/stacks-roll/internal/advisor"
	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/game"
	"github.com/vovakirdan/stacks-roll/internal/registry"
)

// advisorFlags are shared by every command that builds an advisor.
type advisorFlags struct {
	backend string
	url     string
	timeout time.Duration
}

func (f *advisorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "advisor", "", "Advisor backend (see 'stacksroll backends')")
	cmd.Flags().StringVar(&f.url, "advisor-url", "", "Advisor endpoint for the http and genkit backends")
	cmd.Flags().DurationVar(&f.timeout, "advisor-timeout", 0, "Timeout for one advisor call")
}

// settings resolves advisor settings: flags, then STACKSROLL_* env, then
// ~/.stacksroll/stacksroll.json, then defaults.
func (f *advisorFlags) settings(cmd *cobra.Command) (*viper.Viper, config.AdvisorSettings, error) {
	v, err := config.NewViper()
	if err != nil {
		return nil, config.AdvisorSettings{}, fmt.Errorf("reading settings: %w", err)
	}

	bindings := map[string]string{
		config.KeyAdvisorBackend: "advisor",
		config.KeyAdvisorURL:     "advisor-url",
		config.KeyAdvisorTimeout: "advisor-timeout",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, config.AdvisorSettings{}, err
		}
	}

	return v, config.LoadAdvisor(v), nil
}

// newAdvisor builds the configured backend. The off backend yields a nil
// advisor, which keeps the multipliers at their starting values.
func newAdvisor(s config.AdvisorSettings) (game.Advisor, error) {
	if s.Backend == advisor.BackendOff {
		return nil, nil
	}
	return registry.Create(s)
}

// loadGameConfig loads tuning and applies the difficulty preset.
func loadGameConfig(path, difficulty string) (config.GameConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.GameConfig{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.GameConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// resolveSeed returns the --seed value, or a time based one when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.stacksroll/stacksroll.log for appending. The
// alternate screen owns the terminal while playing, so logs go to a file.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".stacksroll")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "stacksroll.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
