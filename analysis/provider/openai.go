package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAI sends one prompt per call to the OpenAI Responses API and returns the reply text.
// The SDK's built-in retries are disabled: a failed call is reported, never repeated.
type OpenAI struct {
	client *openai.Client
}

// NewOpenAI builds a transport for apiKey. baseURL is optional and points the client at an
// OpenAI-compatible endpoint.
func NewOpenAI(apiKey, baseURL string, opts ...option.RequestOption) *OpenAI {
	all := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(baseURL) != "" {
		all = append(all, option.WithBaseURL(baseURL))
	}
	all = append(all, opts...)

	client := openai.NewClient(all...)
	return &OpenAI{client: &client}
}

// Generate issues a single request and returns the concatenated output text.
func (o *OpenAI) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if o == nil || o.client == nil {
		return "", errors.New("openai: client is nil")
	}
	if strings.TrimSpace(model) == "" {
		return "", errors.New("openai: model is empty")
	}

	params := responses.ResponseNewParams{
		Model: model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses (%s): %w", errorKind(err), err)
	}
	return resp.OutputText(), nil
}

// errorKind labels a failed call for logs: timeout, auth, rate_limit, server, or request.
func errorKind(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return "auth"
		case apiErr.StatusCode == 429:
			return "rate_limit"
		case apiErr.StatusCode >= 500:
			return "server"
		}
		return fmt.Sprintf("status %d", apiErr.StatusCode)
	}
	if isRateLimitError(err) {
		return "rate_limit"
	}
	if isServerError(err) {
		return "server"
	}
	return "request"
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
