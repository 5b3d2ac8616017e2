package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
	"github.com/vovakirdan/stacks-roll/internal/game"
	"github.com/vovakirdan/stacks-roll/internal/registry"
)

func newTestServer(t *testing.T, adv game.Advisor) *httptest.Server {
	t.Helper()

	srv := NewServer(ServerConfig{Backend: "test"}, adv, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServerRoundTrip(t *testing.T) {
	ts := newTestServer(t, NewHeuristic())

	tests := []struct {
		name   string
		path   string
		genkit bool
	}{
		{"plain", PathDifficulty, false},
		{"genkit", PathGenkitFlow, true},
	}

	want, _ := NewHeuristic().Advise(context.Background(), testPerf)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, ts.URL+tc.path, tc.genkit)
			got, err := c.Advise(context.Background(), testPerf)
			if err != nil {
				t.Fatalf("Advise() failed: %v", err)
			}
			if got != want {
				t.Errorf("Advise() = %+v, expected %+v", got, want)
			}
		})
	}
}

func TestServerBackendFailure(t *testing.T) {
	ts := newTestServer(t, Off{})

	_, err := newTestClient(t, ts.URL+PathDifficulty, false).Advise(context.Background(), testPerf)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestServerRejectsBadRequests(t *testing.T) {
	ts := newTestServer(t, NewHeuristic())

	tests := []struct {
		name string
		path string
		body string
	}{
		{"not json", PathDifficulty, `score=1`},
		{"missing field", PathDifficulty, `{"score":1,"distanceTraveled":2,"coinsCollected":0}`},
		{"genkit without data", PathGenkitFlow, `{"score":1,"distanceTraveled":2,"coinsCollected":0,"timeElapsed":1}`},
		{"genkit missing field", PathGenkitFlow, `{"data":{"score":1}}`},
		{"negative distance", PathDifficulty, `{"score":1,"distanceTraveled":-2,"coinsCollected":0,"timeElapsed":1}`},
		{"negative time", PathDifficulty, `{"score":1,"distanceTraveled":2,"coinsCollected":0,"timeElapsed":-1}`},
		{"genkit negative coins", PathGenkitFlow, `{"data":{"score":1,"distanceTraveled":2,"coinsCollected":-3,"timeElapsed":1}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+tc.path, "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("POST failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", resp.StatusCode)
			}
		})
	}
}

func TestServerLimitsBodySize(t *testing.T) {
	ts := newTestServer(t, NewHeuristic())

	body := strings.Repeat(" ", maxRequestBytes+1) + `{"score":1,"distanceTraveled":2,"coinsCollected":0,"timeElapsed":1}`
	for _, path := range []string{PathDifficulty, PathGenkitFlow} {
		resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST %s failed: %v", path, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusRequestEntityTooLarge {
			t.Errorf("POST %s status = %d, expected 413", path, resp.StatusCode)
		}
	}
}

func TestServerHealth(t *testing.T) {
	ts := newTestServer(t, Off{})

	resp, err := http.Get(ts.URL + PathHealth)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("bad health body: %v", err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" || body["backend"] != "test" {
		t.Errorf("unexpected health response %d %v", resp.StatusCode, body)
	}
}

func TestServerMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, Off{})

	resp, err := http.Get(ts.URL + PathDifficulty)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", resp.StatusCode)
	}
}

func TestBackendsRegistered(t *testing.T) {
	for _, id := range []string{BackendHTTP, BackendGenkit, BackendHeuristic, BackendOff} {
		if !registry.Exists(id) {
			t.Errorf("backend %q not registered", id)
		}
	}

	adv, err := registry.Create(config.AdvisorSettings{Backend: BackendHeuristic})
	if err != nil {
		t.Fatalf("Create(heuristic) failed: %v", err)
	}
	if _, err := adv.Advise(context.Background(), core.Performance{TimeElapsed: 10}); err != nil {
		t.Errorf("heuristic Advise() failed: %v", err)
	}

	if _, err := registry.Create(config.AdvisorSettings{Backend: BackendHTTP}); err == nil {
		t.Error("http backend without a url should fail")
	}
}
