package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, Token: "test-token"})
}

func TestClient_Repository(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octocat/hello", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":             "hello",
			"full_name":        "octocat/hello",
			"description":      "demo",
			"language":         "Go",
			"stargazers_count": 42,
			"forks_count":      7,
			"topics":           []string{"demo"},
		})
	})

	repo, err := c.Repository(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", repo.Name)
	require.Equal(t, "Go", repo.Language)
	require.Equal(t, 42, repo.StargazersCount)
}

func TestClient_Directory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octocat/hello/contents/src", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"name": "main.go", "path": "src/main.go", "type": "file", "size": 120},
			{"name": "lib", "path": "src/lib", "type": "dir", "size": 0},
		})
	})

	entries, err := c.Directory(context.Background(), "octocat", "hello", "src")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "main.go", entries[0].Name)
	require.Equal(t, "dir", entries[1].Type)
}

func TestClient_File(t *testing.T) {
	body := "package main\n\nfunc main() {}\n"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(body)),
			"size":     len(body),
		})
	})

	got, err := c.File(context.Background(), "octocat", "hello", "main.go")
	require.NoError(t, err)
	require.Equal(t, body, got)
}

func TestClient_FileTooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"encoding": "base64",
			"content":  "",
			"size":     maxFileBytes + 1,
		})
	})

	_, err := c.File(context.Background(), "octocat", "hello", "big.bin")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	_, err := c.Repository(context.Background(), "octocat", "gone")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
