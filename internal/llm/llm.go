package llm

import (
	"context"
	"errors"
)

// ErrEmptyReply means the provider answered without usable text.
var ErrEmptyReply = errors.New("llm: empty reply from model")

// Message is one conversation turn. Role is "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client generates assistant replies grounded by a system prompt.
type Client interface {
	Name() string
	Chat(ctx context.Context, system string, history []Message) (string, error)
	Close() error
}
