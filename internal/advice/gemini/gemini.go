// Package gemini implements advice.Advisor on top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/MrJamesThe3rd/zentracker/internal/advice"
)

const DefaultModel = "gemini-3-flash-preview"

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint. Empty means the public endpoint.
	BaseURL string
}

type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// NewAdvisor returns a Client, or advice.Unavailable when no API key is set.
func NewAdvisor(ctx context.Context, cfg Config) (advice.Advisor, error) {
	if cfg.APIKey == "" {
		return advice.Unavailable{}, nil
	}

	return New(ctx, cfg)
}

func (c *Client) Advise(ctx context.Context, samples []advice.Sample) ([]advice.Insight, error) {
	prompt, err := buildPrompt(samples)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   insightSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	raw := strings.TrimSpace(resp.Text())
	if raw == "" {
		raw = "[]"
	}

	var insights []advice.Insight
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		return nil, fmt.Errorf("%w: %w", advice.ErrSchema, err)
	}

	return insights, nil
}

var insightSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"suggestion":  {Type: genai.TypeString},
			"sentiment": {
				Type:        genai.TypeString,
				Description: "One of: positive, neutral, negative",
				Enum:        []string{"positive", "neutral", "negative"},
			},
		},
		Required: []string{"title", "description", "suggestion", "sentiment"},
	},
}

func buildPrompt(samples []advice.Sample) (string, error) {
	payload, err := json.Marshal(samples)
	if err != nil {
		return "", fmt.Errorf("encoding transactions: %w", err)
	}

	return "Act as a friendly, supportive personal financial coach. " +
		"Review these recent transactions and provide exactly 3 actionable, friendly insights.\n" +
		"Transactions: " + string(payload) + "\n\n" +
		"Focus on identifying patterns, potential savings, and offering encouragement. " +
		"Ensure the tone is non-judgmental and helpful.", nil
}
