// Package assistant wraps the external text/image generation service: chat
// recommendations, admin image-prompt generation, and transfer voucher
// analysis. The service itself is opaque; only the text it returns is
// interpreted, and only for RUT-shaped substrings.
package assistant

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/nochelabs/botilleria/config"
)

// Generator is the text-in/text-out contract the assistant expects from the
// external service. One attempt per call, no retries.
type Generator interface {
	Reply(ctx context.Context, system, prompt string) (string, error)
	AnalyzeImage(ctx context.Context, image []byte, instruction string) (string, error)
}

// RESTGenerator talks to a generateContent-style HTTP gateway.
type RESTGenerator struct {
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
}

func NewRESTGenerator(cfg config.AssistantConfig) *RESTGenerator {
	return &RESTGenerator{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.ApiKey,
		model:    cfg.Model,
		timeout:  30 * time.Second,
	}
}

type generateRequest struct {
	Model       string `json:"model"`
	System      string `json:"system,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	ImageData   string `json:"image_data,omitempty"`
	Instruction string `json:"instruction,omitempty"`
}

type generateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

func (g *RESTGenerator) call(ctx context.Context, req generateRequest) (string, error) {
	if g.endpoint == "" {
		return "", errors.New("assistant: no endpoint configured")
	}
	var resp generateResponse
	err := gout.POST(g.endpoint).
		WithContext(ctx).
		SetTimeout(g.timeout).
		SetHeader(gout.H{"x-api-key": g.apiKey}).
		SetJSON(req).
		BindJSON(&resp).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "assistant: request failed")
	}
	if resp.Error != "" {
		return "", errors.Errorf("assistant: service error: %s", resp.Error)
	}
	return resp.Text, nil
}

func (g *RESTGenerator) Reply(ctx context.Context, system, prompt string) (string, error) {
	return g.call(ctx, generateRequest{Model: g.model, System: system, Prompt: prompt})
}

func (g *RESTGenerator) AnalyzeImage(ctx context.Context, image []byte, instruction string) (string, error) {
	return g.call(ctx, generateRequest{
		Model:       g.model,
		ImageData:   base64.StdEncoding.EncodeToString(image),
		Instruction: instruction,
	})
}
