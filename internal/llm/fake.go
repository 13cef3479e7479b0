package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeClient returns deterministic replies for offline use and tests. It
// records every call so tests can assert the prompts it received.
type FakeClient struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	Systems []string
	Turns   [][]Message
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Chat(_ context.Context, system string, history []Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Systems = append(f.Systems, system)
	turns := make([]Message, len(history))
	copy(turns, history)
	f.Turns = append(f.Turns, turns)

	if f.Err != nil {
		return "", f.Err
	}
	if f.Reply != "" {
		return f.Reply, nil
	}
	last := ""
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}
	return fmt.Sprintf("fake answer to: %s", strings.TrimSpace(last)), nil
}

// Calls reports how many times Chat was invoked.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Turns)
}
