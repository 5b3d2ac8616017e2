package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/core"
)

// maxResponseBytes bounds how much of an advisor answer is read.
const maxResponseBytes = 64 << 10

// Client calls a remote advisor over HTTP.
type Client struct {
	url    string
	apiKey string
	genkit bool
	http   *http.Client
}

// NewClient creates an HTTP advisor client. With genkit set, bodies use the
// flow envelope instead of bare JSON.
func NewClient(s config.AdvisorSettings, genkit bool) (*Client, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("advisor: %s backend needs a url", backendName(genkit))
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		url:    s.URL,
		apiKey: s.APIKey,
		genkit: genkit,
		http:   &http.Client{Timeout: timeout},
	}, nil
}

func backendName(genkit bool) string {
	if genkit {
		return BackendGenkit
	}
	return BackendHTTP
}

// Advise posts p and decodes the multipliers from the answer.
// Transport failures and non-2xx statuses wrap ErrUnavailable; bodies that
// do not hold three finite multipliers wrap ErrMalformed.
func (c *Client) Advise(ctx context.Context, p core.Performance) (core.Difficulty, error) {
	var payload any = p
	if c.genkit {
		payload = genkitRequest{Data: p}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return core.Difficulty{}, fmt.Errorf("advisor: cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return core.Difficulty{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return core.Difficulty{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes)) //nolint:errcheck
		return core.Difficulty{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if c.genkit {
		var env genkitResponse
		if err := dec.Decode(&env); err != nil {
			return core.Difficulty{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if env.Result == nil {
			return core.Difficulty{}, fmt.Errorf("%w: missing result", ErrMalformed)
		}
		return env.Result.difficulty()
	}

	var w difficultyWire
	if err := dec.Decode(&w); err != nil {
		return core.Difficulty{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return w.difficulty()
}
