package llm

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/govgate/internal/util"
)

const (
	defaultOpenAIModel = openai.GPT4oMini
	defaultMaxTokens   = 800
	defaultTimeout     = 30 * time.Second

	systemPrompt = "You write short, neutral briefs for reviewers of content governance disclaimers and cite only the URLs you are given."
)

// OpenAIProvider talks to the OpenAI Chat Completions API or any endpoint
// compatible with it, such as a local Ollama server
type OpenAIProvider struct {
	client *openai.Client
	config Config
	name   string
}

// NewOpenAIProvider creates a provider for the OpenAI API
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newCompatibleProvider("openai", config), nil
}

func newCompatibleProvider(name string, config Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: util.NewTransport(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		name:   name,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// IsAvailable lists models as a lightweight reachability and auth check
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()
	_, err := p.client.ListModels(ctx)
	return err == nil
}

func (p *OpenAIProvider) timeout() time.Duration {
	if p.config.Timeout <= 0 {
		return defaultTimeout
	}
	return time.Duration(p.config.Timeout) * time.Second
}

// Summarize generates a brief with the Chat Completions API
func (p *OpenAIProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Report, req.EvidenceURLs)
	}

	model := firstNonEmpty(req.Model, p.config.Model)
	if model == "" {
		if p.name != "openai" {
			return nil, fmt.Errorf("%s model must be specified (e.g., llama3.1:8b, mistral)", p.name)
		}
		model = defaultOpenAIModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", p.name)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	cited := extractURLs(summary)

	if p.config.StrictEvidence {
		if err := verifyCitations(cited, req.EvidenceURLs); err != nil {
			return nil, err
		}
	}

	return &SummarizeResponse{
		Summary:    summary,
		CitedURLs:  cited,
		Model:      firstNonEmpty(resp.Model, model),
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

// extractURLs returns the distinct http(s) URLs in text, trailing
// punctuation removed
func extractURLs(text string) []string {
	var unique []string
	seen := make(map[string]bool)
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:!?")
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}
	return unique
}

// verifyCitations fails on the first cited URL outside allowed
func verifyCitations(cited, allowed []string) error {
	for _, u := range cited {
		if !slices.Contains(allowed, u) {
			return fmt.Errorf("%w: model cited disallowed URL: %s", ErrCitationLeak, u)
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
