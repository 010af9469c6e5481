// Package ai wraps the AI provider used for spec repair and
// enhancement: a narrow SendMessage interface, an Anthropic
// implementation, and a retry policy that only retries transient
// failures.
package ai

import "context"

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the full request sent to a provider.
type Conversation struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Provider sends a conversation and returns the assistant's text reply.
type Provider interface {
	SendMessage(ctx context.Context, conv Conversation) (string, error)
}
