package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"repolens/internal/common/ratelimit"
)

const defaultBaseURL = "https://api.github.com"

// maxFileBytes is the ceiling on remote-reported file size. Files larger
// than this are never downloaded.
const maxFileBytes = 200_000

var (
	// ErrNotFound marks a 404 from the contents or repository endpoint.
	ErrNotFound = errors.New("github: not found")
	// ErrTooLarge marks a file whose reported size exceeds the fetch ceiling.
	ErrTooLarge = errors.New("github: file exceeds size ceiling")
)

// Repository is the subset of repository metadata the service consumes.
type Repository struct {
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Topics          []string `json:"topics"`
	Homepage        string   `json:"homepage"`
}

// TreeEntry is one node of a directory listing. It is not retained beyond
// traversal.
type TreeEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
	Size int64  `json:"size"`
}

type fileContent struct {
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	Size     int64  `json:"size"`
}

// Client calls the GitHub REST API. An empty token means unauthenticated
// access (GitHub rate limits it to 60 req/hr).
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	rl      *ratelimit.Limiter
}

// Options tune a Client. Zero values fall back to defaults.
type Options struct {
	Token   string
	BaseURL string
	RPS     float64
	Burst   int
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: base,
		token:   strings.TrimSpace(opts.Token),
		rl:      ratelimit.New(opts.RPS, opts.Burst),
	}
}

func (c *Client) Close() {
	c.rl.Stop()
}

// Repository fetches repository metadata for owner/repo.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	var out Repository
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Directory lists the entries of a directory. The path is repo-relative;
// the empty string lists the repository root.
func (c *Client) Directory(ctx context.Context, owner, repo, path string) ([]TreeEntry, error) {
	var out []TreeEntry
	if err := c.getJSON(ctx, contentsPath(owner, repo, path), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// File fetches a file's content decoded to a string. Content arrives
// base64-encoded; non-UTF-8 bytes pass through undecoded rather than
// failing the fetch. The contents endpoint returns the payload inline, so
// files above the size ceiling return ErrTooLarge after the response has
// been read; the ceiling bounds what is retained and decoded, not the
// transfer itself.
func (c *Client) File(ctx context.Context, owner, repo, path string) (string, error) {
	var out fileContent
	if err := c.getJSON(ctx, contentsPath(owner, repo, path), &out); err != nil {
		return "", err
	}
	if out.Size > maxFileBytes {
		return "", ErrTooLarge
	}
	if out.Encoding != "base64" {
		return out.Content, nil
	}
	// GitHub wraps base64 payloads with newlines.
	raw := strings.ReplaceAll(strings.TrimSpace(out.Content), "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("github: decode %s: %w", path, err)
	}
	return string(decoded), nil
}

func contentsPath(owner, repo, path string) string {
	p := fmt.Sprintf("/repos/%s/%s/contents", url.PathEscape(owner), url.PathEscape(repo))
	path = strings.Trim(path, "/")
	if path == "" {
		return p
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return p + "/" + strings.Join(segments, "/")
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.rl.Acquire(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("github: unexpected status %s for %s: %s", resp.Status, path, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
