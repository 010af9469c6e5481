package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultAPIURL    = "https://api.anthropic.com/v1/messages"
	defaultModel     = "claude-3-5-sonnet-20241022"
	defaultMaxTokens = 4096
	apiVersion       = "2023-06-01"
)

// AnthropicConfig configures the Anthropic messages-API provider.
type AnthropicConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// AnthropicProvider calls the Anthropic messages API over HTTP.
type AnthropicProvider struct {
	cfg        AnthropicConfig
	httpClient *http.Client
}

// NewAnthropicProvider creates a provider with the given configuration,
// filling in API URL, model and timeout defaults.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ProviderError{Kind: KindAuth, Message: "missing API key"}
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &AnthropicProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Model returns the configured model name.
func (p *AnthropicProvider) Model() string {
	return p.cfg.Model
}

// SendMessage sends one conversation and returns the text of the first
// content block of the response.
func (p *AnthropicProvider) SendMessage(ctx context.Context, conv Conversation) (string, error) {
	maxTokens := conv.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	requestBody := map[string]interface{}{
		"model":       p.cfg.Model,
		"system":      conv.System,
		"messages":    conv.Messages,
		"max_tokens":  maxTokens,
		"temperature": conv.Temperature,
	}
	bodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		return "", &ProviderError{Kind: KindMalformed, Message: "failed to marshal request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.cfg.APIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &ProviderError{Kind: KindNetwork, Message: "failed to create request: " + err.Error()}
	}

	req.Header.Set("x-api-key", p.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", &ProviderError{Kind: KindTimeout, Message: ctx.Err().Error()}
		}
		return "", &ProviderError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Kind: KindNetwork, Message: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, respData)
	}

	text := gjson.GetBytes(respData, "content.0.text")
	if !text.Exists() || text.String() == "" {
		return "", &ProviderError{
			Kind:       KindMalformed,
			StatusCode: resp.StatusCode,
			Message:    "response has no content text",
		}
	}

	return text.String(), nil
}

func classifyStatus(status int, body []byte) *ProviderError {
	msg := gjson.GetBytes(body, "error.message").String()
	if msg == "" {
		msg = string(body)
	}

	kind := KindMalformed
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status >= 500:
		kind = KindServer
	}

	return &ProviderError{Kind: kind, StatusCode: status, Message: msg}
}
