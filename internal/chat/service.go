package chat

import (
	"context"
	"strings"
	"sync"

	"repolens/internal/ingest"
	"repolens/internal/llm"
)

// maxHistoryMessages bounds how many past turns are replayed to the model
// per conversation. Older turns fall off the front.
const maxHistoryMessages = 20

// Service answers questions about an ingested repository. Conversation
// history lives in memory only and is bounded per conversation.
type Service struct {
	client llm.Client

	mu            sync.Mutex
	conversations map[string][]llm.Message
}

func NewService(client llm.Client) *Service {
	return &Service{
		client:        client,
		conversations: make(map[string][]llm.Message),
	}
}

// Ask appends the question to the conversation, sends the snapshot-derived
// system prompt plus history to the model, and records the reply. A failed
// provider call leaves the conversation unchanged.
func (s *Service) Ask(ctx context.Context, snap *ingest.Snapshot, conversationID, question string) (string, error) {
	question = strings.TrimSpace(question)
	system := SystemPrompt(snap)

	s.mu.Lock()
	history := append([]llm.Message(nil), s.conversations[conversationID]...)
	s.mu.Unlock()
	history = append(history, llm.Message{Role: "user", Content: question})

	reply, err := s.client.Chat(ctx, system, history)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	turns := append(s.conversations[conversationID],
		llm.Message{Role: "user", Content: question},
		llm.Message{Role: "assistant", Content: reply},
	)
	if len(turns) > maxHistoryMessages {
		turns = turns[len(turns)-maxHistoryMessages:]
	}
	s.conversations[conversationID] = turns
	s.mu.Unlock()

	return reply, nil
}

// Reset drops the stored history for one conversation.
func (s *Service) Reset(conversationID string) {
	s.mu.Lock()
	delete(s.conversations, conversationID)
	s.mu.Unlock()
}
