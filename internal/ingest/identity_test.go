package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIdentity_NormalizesEquivalentURLs(t *testing.T) {
	inputs := []string{
		"https://github.com/octocat/hello",
		"https://github.com/octocat/hello/",
		"https://github.com/octocat/hello.git",
		"http://github.com/octocat/hello.git/",
		"github.com/octocat/hello",
		"https://www.github.com/octocat/hello",
		"octocat/hello",
	}
	want := Identity{Owner: "octocat", Repo: "hello"}
	for _, in := range inputs {
		got, err := ParseIdentity(in)
		require.NoError(t, err, "input %q", in)
		require.Equal(t, want, got, "input %q", in)
	}
}

func TestParseIdentity_KeepsDotsInRepoName(t *testing.T) {
	got, err := ParseIdentity("https://github.com/octocat/hello.js")
	require.NoError(t, err)
	require.Equal(t, "hello.js", got.Repo)

	got, err = ParseIdentity("https://github.com/octocat/hello.js.git")
	require.NoError(t, err)
	require.Equal(t, "hello.js", got.Repo)
}

func TestParseIdentity_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"https://github.com/octocat",
		"https://github.com/",
		"https://gitlab.com/octocat/hello",
		"https://github.com/octocat/hello/tree/main",
		"not a url at all",
	}
	for _, in := range inputs {
		_, err := ParseIdentity(in)
		require.Error(t, err, "input %q", in)
		require.Equal(t, KindInvalidIdentity, KindOf(err), "input %q", in)
	}
}
