package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AdvisorSettings selects and configures the difficulty advisor backend.
type AdvisorSettings struct {
	Backend string        `mapstructure:"backend"` // Registered backend name: http, genkit, heuristic, off
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"apiKey"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Viper keys shared by Load and the CLI flag bindings.
const (
	KeyAdvisorBackend = "advisor.backend"
	KeyAdvisorURL     = "advisor.url"
	KeyAdvisorAPIKey  = "advisor.apiKey"
	KeyAdvisorTimeout = "advisor.timeout"
	KeyListenAddr     = "listen"
)

// NewViper returns a viper instance with defaults, STACKSROLL_* environment
// bindings and the optional ~/.stacksroll/stacksroll.json settings file.
func NewViper() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(KeyAdvisorBackend, "heuristic")
	v.SetDefault(KeyAdvisorURL, "http://localhost:8787/v1/difficulty")
	v.SetDefault(KeyAdvisorAPIKey, "")
	v.SetDefault(KeyAdvisorTimeout, 5*time.Second)
	v.SetDefault(KeyListenAddr, ":8787")

	// STACKSROLL_ADVISOR_URL -> advisor.url, STACKSROLL_ADVISOR_APIKEY -> advisor.apiKey
	v.SetEnvPrefix("stacksroll")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("stacksroll")
	v.SetConfigType("json")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".stacksroll"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return v, nil
}

// LoadAdvisor reads advisor settings from v.
func LoadAdvisor(v *viper.Viper) AdvisorSettings {
	return AdvisorSettings{
		Backend: strings.ToLower(v.GetString(KeyAdvisorBackend)),
		URL:     v.GetString(KeyAdvisorURL),
		APIKey:  v.GetString(KeyAdvisorAPIKey),
		Timeout: v.GetDuration(KeyAdvisorTimeout),
	}
}
