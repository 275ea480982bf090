// Package scoring is the HTTP client for the external face-analysis
// sidecar: anti-spoofing scores and face embeddings. Both the liveness
// gate and the matcher consume it; the classifier and extractor internals
// stay on the sidecar's side of the wire.
package scoring

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// Client calls the face-analysis sidecar.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a scoring client. The caller owns per-call timeouts via
// context; the embedded http.Client carries no timeout of its own.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures optional Client dependencies.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

type livenessRequest struct {
	Frames []string `json:"frames"`
}

type livenessResponse struct {
	SpoofScores []float64 `json:"spoof_scores"`
}

// ScoreFrames submits probe frames and returns one spoof probability per
// frame, in order.
func (c *Client) ScoreFrames(ctx context.Context, frames [][]byte) ([]float64, error) {
	encoded := make([]string, len(frames))
	for i, frame := range frames {
		encoded[i] = base64.StdEncoding.EncodeToString(frame)
	}

	var resp livenessResponse
	if err := c.post(ctx, "/v1/liveness", livenessRequest{Frames: encoded}, &resp); err != nil {
		return nil, err
	}
	if len(resp.SpoofScores) != len(frames) {
		return nil, dErrors.Newf(dErrors.CodeUnavailable,
			"scorer returned %d scores for %d frames", len(resp.SpoofScores), len(frames))
	}
	return resp.SpoofScores, nil
}

type embedRequest struct {
	Frame string `json:"frame"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed extracts the face embedding from a single frame.
func (c *Client) Embed(ctx context.Context, frame []byte) ([]float64, error) {
	var resp embedResponse
	err := c.post(ctx, "/v1/embeddings", embedRequest{Frame: base64.StdEncoding.EncodeToString(frame)}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, dErrors.New(dErrors.CodeUnavailable, "scorer returned an empty embedding")
	}
	return resp.Embedding, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "face-analysis sidecar unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Cap the diagnostic read; the sidecar's body is not trusted input.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return dErrors.Newf(dErrors.CodeUnavailable,
			"face-analysis sidecar returned %d: %s", resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "decode scoring response")
	}
	return nil
}
