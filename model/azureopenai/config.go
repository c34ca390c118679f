// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package azureopenai

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/llmkit/model"
)

const (
	// NonAzureEndpoint is the endpoint used when authenticating with a
	// plain OpenAI API key instead of an Azure resource.
	NonAzureEndpoint = "https://api.openai.com/v1"

	defaultAPIVersion  = "2023-05-15"
	defaultDeployment  = ModelGPT35Turbo
	defaultTemperature = 0.7
	defaultTimeout     = 60 * time.Second
	defaultMaxRetries  = 3
)

// Config holds configuration for Azure OpenAI models.
type Config struct {
	// Endpoint is the Azure OpenAI resource endpoint, in the form
	// https://{resource}.openai.azure.com. Required unless NonAzureAPIKey
	// is set, which defaults it to NonAzureEndpoint.
	Endpoint string

	// APIVersion is the Azure OpenAI service API version, e.g. "2023-05-15".
	// Ignored for non-Azure endpoints.
	APIVersion string

	// APIKey authenticates against Azure OpenAI via the api-key header.
	APIKey string

	// NonAzureAPIKey authenticates against the OpenAI service via bearer
	// token. Setting it switches the endpoint to NonAzureEndpoint.
	NonAzureAPIKey string

	// Deployment is the Azure deployment name, or the model name when
	// using the OpenAI service. Default: gpt-35-turbo.
	Deployment string

	// Sampling and length parameters. Nil fields are omitted from requests
	// so the service applies its own defaults; Temperature defaults to 0.7.
	Temperature      *float64
	TopP             *float64
	MaxTokens        *int
	Stop             []string
	PresencePenalty  *float64
	FrequencyPenalty *float64

	// Timeout bounds each HTTP request. Default: 60s.
	Timeout time.Duration

	// MaxRetries bounds retry attempts for non-streaming requests that
	// fail with a transport error, 429, or a 5xx status. Default: 3.
	MaxRetries int

	// HTTPClient overrides the HTTP client used for requests.
	HTTPClient *http.Client

	// Tokenizer overrides the tokenizer used for input token estimation.
	Tokenizer model.Tokenizer

	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithEndpoint sets the Azure OpenAI resource endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = strings.TrimSuffix(endpoint, "/")
	}
}

// WithAPIVersion sets the Azure OpenAI service API version.
func WithAPIVersion(version string) Option {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithAPIKey sets the Azure OpenAI API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithNonAzureAPIKey authenticates against the OpenAI service instead of
// Azure OpenAI. The endpoint is set to NonAzureEndpoint.
func WithNonAzureAPIKey(key string) Option {
	return func(c *Config) {
		c.NonAzureAPIKey = key
		c.Endpoint = NonAzureEndpoint
	}
}

// WithDeployment sets the deployment name (Azure) or model name (OpenAI).
func WithDeployment(deployment string) Option {
	return func(c *Config) {
		c.Deployment = deployment
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(c *Config) {
		c.Temperature = &temperature
	}
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(topP float64) Option {
	return func(c *Config) {
		c.TopP = &topP
	}
}

// WithMaxTokens caps the number of generated tokens.
func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.MaxTokens = &maxTokens
	}
}

// WithStop sets stop sequences.
func WithStop(stop ...string) Option {
	return func(c *Config) {
		c.Stop = stop
	}
}

// WithPresencePenalty sets the presence penalty.
func WithPresencePenalty(penalty float64) Option {
	return func(c *Config) {
		c.PresencePenalty = &penalty
	}
}

// WithFrequencyPenalty sets the frequency penalty.
func WithFrequencyPenalty(penalty float64) Option {
	return func(c *Config) {
		c.FrequencyPenalty = &penalty
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxRetries sets the retry budget for non-streaming requests.
func WithMaxRetries(maxRetries int) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTokenizer sets a custom tokenizer for input token estimation.
func WithTokenizer(tokenizer model.Tokenizer) Option {
	return func(c *Config) {
		c.Tokenizer = tokenizer
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// NewConfig creates a Config with defaults and applies the given options.
func NewConfig(opts ...Option) *Config {
	temperature := defaultTemperature
	cfg := &Config{
		APIVersion:  defaultAPIVersion,
		Deployment:  defaultDeployment,
		Temperature: &temperature,
		Timeout:     defaultTimeout,
		MaxRetries:  defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// azure reports whether the config targets Azure OpenAI rather than the
// OpenAI service.
func (c *Config) azure() bool {
	return c.NonAzureAPIKey == ""
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("azureopenai config: Endpoint is required")
	}
	if c.APIKey == "" && c.NonAzureAPIKey == "" {
		return errors.New("azureopenai config: APIKey or NonAzureAPIKey is required")
	}
	if c.azure() && c.APIVersion == "" {
		return errors.New("azureopenai config: APIVersion is required")
	}
	if c.Deployment == "" {
		return errors.New("azureopenai config: Deployment is required")
	}
	return nil
}
