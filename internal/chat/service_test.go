package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"repolens/internal/ingest"
	"repolens/internal/llm"
)

func demoSnapshot() *ingest.Snapshot {
	return &ingest.Snapshot{
		Info: ingest.RepoInfo{
			Name:        "demo",
			FullName:    "octo/demo",
			Description: "a demo service",
			Language:    "Go",
			Stars:       12,
			Forks:       3,
			Topics:      []string{"http", "demo"},
		},
		CodeFiles: []ingest.CodeFile{
			{Path: "main.go", Name: "main.go", Content: "package main", Language: "Go"},
		},
		ImportantFiles: []ingest.ImportantFile{
			{Path: "README.md", Name: "README.md", Content: "# demo\n\n![logo](x.png)\n\nHello.", Type: "config"},
		},
		TotalFiles: 2,
	}
}

func TestSystemPrompt_ContainsRepoContext(t *testing.T) {
	p := SystemPrompt(demoSnapshot())

	require.Contains(t, p, "octo/demo")
	require.Contains(t, p, "a demo service")
	require.Contains(t, p, "Primary language: Go")
	require.Contains(t, p, "main.go")
	require.Contains(t, p, "package main")
	require.Contains(t, p, "http, demo")
	require.NotContains(t, p, "![logo]", "markdown images are stripped")
}

func TestAsk_SendsHistoryAndRecordsReply(t *testing.T) {
	fake := llm.NewFakeClient()
	svc := NewService(fake)
	snap := demoSnapshot()

	reply1, err := svc.Ask(context.Background(), snap, "conv", "what does it do?")
	require.NoError(t, err)
	require.NotEmpty(t, reply1)

	_, err = svc.Ask(context.Background(), snap, "conv", "and how is it built?")
	require.NoError(t, err)

	require.Equal(t, 2, fake.Calls())
	// Second call replays the first turn plus its answer.
	second := fake.Turns[1]
	require.Len(t, second, 3)
	require.Equal(t, "user", second[0].Role)
	require.Equal(t, "what does it do?", second[0].Content)
	require.Equal(t, "assistant", second[1].Role)
	require.Equal(t, "and how is it built?", second[2].Content)

	require.True(t, strings.Contains(fake.Systems[0], "octo/demo"))
}

func TestAsk_ConversationsAreIsolated(t *testing.T) {
	fake := llm.NewFakeClient()
	svc := NewService(fake)
	snap := demoSnapshot()

	_, err := svc.Ask(context.Background(), snap, "a", "first")
	require.NoError(t, err)
	_, err = svc.Ask(context.Background(), snap, "b", "second")
	require.NoError(t, err)

	require.Len(t, fake.Turns[1], 1, "conversation b must not see conversation a")
}

func TestAsk_HistoryIsBounded(t *testing.T) {
	fake := llm.NewFakeClient()
	svc := NewService(fake)
	snap := demoSnapshot()

	for i := 0; i < maxHistoryMessages; i++ {
		_, err := svc.Ask(context.Background(), snap, "conv", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}

	last := fake.Turns[len(fake.Turns)-1]
	require.LessOrEqual(t, len(last), maxHistoryMessages+1)
}

func TestAsk_ProviderErrorLeavesHistoryUnchanged(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Err = errors.New("boom")
	svc := NewService(fake)
	snap := demoSnapshot()

	_, err := svc.Ask(context.Background(), snap, "conv", "q")
	require.Error(t, err)

	fake.Err = nil
	_, err = svc.Ask(context.Background(), snap, "conv", "again")
	require.NoError(t, err)
	require.Len(t, fake.Turns[1], 1, "failed turn must not be recorded")
}
