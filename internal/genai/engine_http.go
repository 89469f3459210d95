package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// httpEngine talks to a local model server exposing the generate API
// (an Ollama-compatible endpoint).
type httpEngine struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
}

// NewHTTPEngine creates an Engine backed by a local model server.
func NewHTTPEngine(cfg Config) Engine {
	return &httpEngine{
		endpoint: cfg.Endpoint,
		timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type pullRequest struct {
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

type pullResponse struct {
	Status string `json:"status"`
}

// Load pulls the model and confirms it is servable. The pull API gives
// no fine-grained progress without streaming, so progress is coarse.
func (e *httpEngine) Load(ctx context.Context, model string, progress func(Progress)) error {
	if progress != nil {
		progress(Progress{Percent: 0, Message: "Starting download"})
	}

	body, err := json.Marshal(pullRequest{Model: model, Stream: false})
	if err != nil {
		return fmt.Errorf("marshaling pull request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating pull request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading pull response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server returned status %d: %s", resp.StatusCode, string(raw))
	}

	var pr pullResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return fmt.Errorf("decoding pull response: %w", err)
	}
	if pr.Status != "success" {
		return fmt.Errorf("model pull did not succeed: %s", pr.Status)
	}

	if progress != nil {
		progress(Progress{Percent: 100, Message: "Initializing model"})
	}

	// Warm the model with an empty generate so the first real
	// completion does not pay the load cost.
	warm := generateRequest{Model: model, Stream: false}
	if _, err := e.doGenerate(ctx, warm); err != nil {
		return fmt.Errorf("warming model: %w", err)
	}
	return nil
}

type generateRequest struct {
	Model   string          `json:"model"`
	System  string          `json:"system,omitempty"`
	Prompt  string          `json:"prompt,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options,omitempty"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (e *httpEngine) Complete(ctx context.Context, model, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body := generateRequest{
		Model:  model,
		System: opts.SystemPrompt,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: opts.Temperature,
			TopP:        opts.TopP,
			NumPredict:  opts.MaxTokens,
		},
	}

	resp, err := e.doGenerate(ctx, body)
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrTimeout
		}
		if isConnectionError(err) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", err
	}
	return resp.Response, nil
}

func (e *httpEngine) doGenerate(ctx context.Context, body generateRequest) (*generateResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := e.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server returned status %d: %s", httpResp.StatusCode, string(raw))
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

func (e *httpEngine) Unload(ctx context.Context) error {
	// The server manages its own model lifetime; nothing to release
	// client-side.
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
