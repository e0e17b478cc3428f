// Package resources generates short interview-preparation articles.
package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/interviewx/internal/language"
	"github.com/abhisek/interviewx/internal/llm"
	"github.com/rs/zerolog/log"
)

// OpArticle is the operation name carried by *llm.ErrCommunication.
const OpArticle = "article"

var (
	// ErrNoTopic is returned when the requested topic is blank.
	ErrNoTopic = errors.New("article topic is required")

	// ErrEmptyArticle is returned when the model replies with no text.
	ErrEmptyArticle = errors.New("model returned an empty article")
)

var topics = []string{
	"How to answer 'Tell me about yourself'",
	"Explaining the STAR method for behavioral questions",
	"Top 5 body language tips for interviews",
	"How to research a company before an interview",
	"Questions to ask the interviewer",
	"Following up after an interview",
	"Negotiating your salary",
	"Dressing for success in a modern workplace",
}

// Topics returns the suggested article topics in display order.
func Topics() []string {
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}

// Article is a generated article in markdown.
type Article struct {
	Topic   string
	Content string
}

// Config controls the requests sent by the Client.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Client writes articles with an LLM provider.
type Client struct {
	provider llm.Provider
	config   Config
}

// New creates a Client.
func New(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

const systemPrompt = `You are a career coach who writes practical, encouraging guides for job seekers preparing for interviews.`

// Article writes an article on topic in the language named by languageCode.
// Failures talking to the provider are returned as *llm.ErrCommunication.
func (c *Client) Article(ctx context.Context, topic, languageCode string) (*Article, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrNoTopic
	}
	if c == nil || c.provider == nil {
		return nil, &llm.ErrCommunication{Op: OpArticle, Err: errors.New("no provider configured")}
	}
	ctx = llm.WithPurpose(ctx, "resource-article")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(topic, languageCode)},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return nil, &llm.ErrCommunication{Op: OpArticle, Err: err}
	}

	content := strings.TrimSpace(resp.Text())
	if content == "" {
		return nil, ErrEmptyArticle
	}

	log.Debug().Str("topic", topic).Int("bytes", len(content)).Msg("resource article generated")
	return &Article{Topic: topic, Content: content}, nil
}

func buildPrompt(topic, languageCode string) string {
	return fmt.Sprintf("Write a helpful, well-structured article for job seekers on the topic: %q. "+
		"Use '## ' headings for sections, '* ' bullet points or numbered lists for tips, and short paragraphs. "+
		"Do not repeat the topic as a title. Keep it under 600 words. Write the article in %s.",
		topic, language.Name(languageCode))
}
