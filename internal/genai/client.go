// internal/genai/client.go

// Package genai is the chat-completion transport for the AI extraction
// strategy. It owns request/response plumbing and payload validation;
// retries and backoff are deliberately not here; a single failure is
// enough to fall back to heuristic extraction.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"skillgap-engine/internal/common/config"
	stderrors "skillgap-engine/internal/common/errors"
	"skillgap-engine/internal/common/logger"

	"github.com/xeipuuv/gojsonschema"
)

// Completer is the single request/response AI call the extractor needs.
// A nil Completer means AI extraction is disabled.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is an HTTP Completer against the GenAI gateway.
type Client struct {
	baseURL     string
	apiKey      string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      logger.Logger
}

// NewClient builds a Client from config. Returns nil when no base URL is
// configured, which disables the AI strategy.
func NewClient(cfg config.GenAIConfig, log logger.Logger) *Client {
	if cfg.BaseURL == "" {
		return nil
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		// Rely on the caller's context deadline, not a client timeout.
		httpClient: &http.Client{},
		logger:     log.WithFields(map[string]interface{}{"component": "genai"}),
	}
}

// Complete sends one prompt and returns the generated text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"prompt":      prompt,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
	}

	body, _ := json.Marshal(requestBody)
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/ai/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", stderrors.NewExtractionAIFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", stderrors.NewExtractionAITimeoutError(0)
		}
		return "", stderrors.NewExtractionAIFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", stderrors.NewExtractionAIFailedError(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", stderrors.NewExtractionAIFailedError(fmt.Errorf("decode error: %w", err))
	}

	if strings.TrimSpace(apiResponse.Text) == "" {
		return "", stderrors.NewExtractionAIEmptyError()
	}

	c.logger.Debug("completion received", map[string]interface{}{
		"bytes": len(apiResponse.Text),
	})

	return apiResponse.Text, nil
}

// ExtractJSON strips markdown fences and surrounding prose from a model
// response, returning the outermost JSON object.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", stderrors.NewExtractionAIBadJSONError("no JSON object in response")
	}
	return s[start : end+1], nil
}

// requirementsSchema is the contract an AI requirements payload must meet
// before any of it is trusted.
const requirementsSchema = `{
	"type": "object",
	"required": ["requirements"],
	"properties": {
		"requirements": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["skillName"],
				"properties": {
					"skillName":     {"type": "string", "minLength": 1},
					"importance":    {"type": "string"},
					"requiredLevel": {},
					"notes":         {"type": "string"}
				}
			}
		},
		"summary": {"type": "string"}
	}
}`

var requirementsSchemaLoader = gojsonschema.NewStringLoader(requirementsSchema)

// ValidateRequirementsPayload checks an extracted JSON document against
// the requirements schema.
func ValidateRequirementsPayload(doc string) error {
	result, err := gojsonschema.Validate(requirementsSchemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return stderrors.NewExtractionAIBadJSONError(err.Error())
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return stderrors.NewExtractionAIBadJSONError(strings.Join(msgs, "; "))
	}
	return nil
}
