// Package advisor provides the difficulty advisor backends and the HTTP
// service that exposes them.
//
// Backends register with the registry in init(); commands blank-import this
// package and pick one by name.
package advisor

import (
	"errors"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/game"
	"github.com/vovakirdan/stacks-roll/internal/registry"
)

var (
	// ErrUnavailable means the advisor could not be reached or refused the request.
	ErrUnavailable = errors.New("advisor: unavailable")
	// ErrMalformed means the advisor answered with something that is not a difficulty.
	ErrMalformed = errors.New("advisor: malformed response")
)

// Backend names.
const (
	BackendHTTP      = "http"
	BackendGenkit    = "genkit"
	BackendHeuristic = "heuristic"
	BackendOff       = "off"
)

func init() {
	registry.Register(BackendHTTP, "POST performance JSON to advisor.url", func(s config.AdvisorSettings) (game.Advisor, error) {
		return NewClient(s, false)
	})
	registry.Register(BackendGenkit, "call a hosted adjustDifficultyFlow at advisor.url", func(s config.AdvisorSettings) (game.Advisor, error) {
		return NewClient(s, true)
	})
	registry.Register(BackendHeuristic, "in-process rules, no network", func(config.AdvisorSettings) (game.Advisor, error) {
		return NewHeuristic(), nil
	})
	registry.Register(BackendOff, "never adjusts difficulty", func(config.AdvisorSettings) (game.Advisor, error) {
		return Off{}, nil
	})
}
