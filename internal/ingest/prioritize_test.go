package ingest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func code(name string, size int64) CodeFile {
	return CodeFile{Path: name, Name: name, Size: size}
}

func TestPrioritize_EntryPointsFirst(t *testing.T) {
	got := Prioritize([]CodeFile{
		code("zebra.js", 100),
		code("server.ts", 900),
		code("index.js", 500),
		code("helper.py", 50),
		code("main.go", 300),
	})

	var names []string
	for _, f := range got {
		names = append(names, f.Name)
	}
	// index < main < server by keyword rank; non-matching files follow,
	// smaller size first.
	require.Equal(t, []string{"index.js", "main.go", "server.ts", "helper.py", "zebra.js"}, names)
}

func TestPrioritize_KeywordMatchIsCaseInsensitive(t *testing.T) {
	got := Prioritize([]CodeFile{
		code("zzz.go", 10),
		code("MainWindow.cs", 4000),
	})
	require.Equal(t, "MainWindow.cs", got[0].Name)
}

func TestPrioritize_StableAndIdempotent(t *testing.T) {
	in := []CodeFile{
		code("app_one.js", 10),
		code("app_two.js", 10),
		code("b.js", 20),
		code("a.js", 20),
	}

	first := Prioritize(in)
	second := Prioritize(first)
	require.Equal(t, first, second)

	// Equal-rank matches keep input order; equal-size non-matches too.
	require.Equal(t, "app_one.js", first[0].Name)
	require.Equal(t, "app_two.js", first[1].Name)
	require.Equal(t, "b.js", first[2].Name)
	require.Equal(t, "a.js", first[3].Name)
}

func TestPrioritize_TruncatesToCap(t *testing.T) {
	var in []CodeFile
	for i := 0; i < maxCodeFiles+10; i++ {
		in = append(in, code(fmt.Sprintf("file%02d.rb", i), int64(i)))
	}
	got := Prioritize(in)
	require.Len(t, got, maxCodeFiles)
	// Input is untouched.
	require.Len(t, in, maxCodeFiles+10)
}
