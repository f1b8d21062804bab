// Package gemini adapts the Google Gemini SDK to the relay's typed payloads.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"genrelay/pkg/types"
)

// ErrMissingAPIKey is returned by Generate when the client was built without a key.
var ErrMissingAPIKey = errors.New("gemini: missing API key (set GEMINI_API_KEY)")

// Generator issues one inference call for a modality.
type Generator interface {
	Generate(ctx context.Context, m types.Modality, p types.Payload) (*types.Result, error)
}

type generateFunc func(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error)

// Client is safe for concurrent use.
type Client struct {
	sdk      *genai.Client
	models   ModelSet
	log      zerolog.Logger
	generate generateFunc
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New builds a client. An empty apiKey is accepted; calls then fail with
// ErrMissingAPIKey.
func New(ctx context.Context, apiKey string, models ModelSet, opts ...Option) (*Client, error) {
	c := &Client{models: models.WithDefaults(), log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	if apiKey == "" {
		c.generate = func(context.Context, string, ...genai.Part) (*genai.GenerateContentResponse, error) {
			return nil, ErrMissingAPIKey
		}
		return c, nil
	}
	sdk, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	c.sdk = sdk
	c.generate = func(ctx context.Context, model string, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
		return sdk.GenerativeModel(model).GenerateContent(ctx, parts...)
	}
	return c, nil
}

// Models returns the modality mapping in use.
func (c *Client) Models() ModelSet { return c.models }

// Generate selects the model for m and submits p in one call.
func (c *Client) Generate(ctx context.Context, m types.Modality, p types.Payload) (*types.Result, error) {
	model, err := c.models.For(m)
	if err != nil {
		return nil, err
	}
	parts, err := toParts(p)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("modality", string(m)).Str("model", model).Int("parts", len(parts)).Msg("gemini generate")
	resp, err := c.generate(ctx, model, parts...)
	if err != nil {
		inferenceCalls.WithLabelValues(string(m), "error").Inc()
		return nil, fmt.Errorf("gemini generate (%s, %s): %w", m, model, err)
	}
	inferenceCalls.WithLabelValues(string(m), "ok").Inc()
	return fromResponse(resp), nil
}

// Prompt submits a plain text prompt.
func (c *Client) Prompt(ctx context.Context, m types.Modality, text string) (*types.Result, error) {
	return c.Generate(ctx, m, types.TextPayload(text))
}

// Close releases the SDK client.
func (c *Client) Close() error {
	if c.sdk == nil {
		return nil
	}
	return c.sdk.Close()
}

func toParts(p types.Payload) ([]genai.Part, error) {
	if len(p.Parts) == 0 {
		return nil, errors.New("gemini: empty payload")
	}
	out := make([]genai.Part, 0, len(p.Parts))
	for _, part := range p.Parts {
		if part.Inline != nil {
			out = append(out, genai.Blob{MIMEType: part.Inline.MIMEType, Data: part.Inline.Data})
			continue
		}
		out = append(out, genai.Text(part.Text))
	}
	return out, nil
}

func fromResponse(resp *genai.GenerateContentResponse) *types.Result {
	if resp == nil {
		return nil
	}
	res := &types.Result{Candidates: make([]*types.Candidate, 0, len(resp.Candidates))}
	for _, cand := range resp.Candidates {
		if cand == nil {
			res.Candidates = append(res.Candidates, nil)
			continue
		}
		out := &types.Candidate{FinishReason: cand.FinishReason.String()}
		if cand.Content != nil {
			out.Content = &types.Content{Parts: make([]types.ResultPart, 0, len(cand.Content.Parts))}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					out.Content.Parts = append(out.Content.Parts, types.TextPart(string(t)))
					continue
				}
				out.Content.Parts = append(out.Content.Parts, types.ResultPart{})
			}
		}
		res.Candidates = append(res.Candidates, out)
	}
	return res
}
