package gemini

import (
	"context"

	provider "github.com/aide-cli/aide/internal/provider/model"
)

// Provider implements provider.Provider for Google Gemini.
type Provider struct {
	client    Client
	modelName string
}

// New creates a Provider with the specified client and model.
func New(client Client, modelName string) *Provider {
	return &Provider{
		client:    client,
		modelName: modelName,
	}
}

// Generate sends a request to the Gemini API and returns the response.
func (p *Provider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	contents := toGeminiContents(req.History)
	config := toGeminiConfig(req.System)
	if len(req.Tools) > 0 {
		config.Tools = toGeminiTools(req.Tools)
	}

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.modelName
}
