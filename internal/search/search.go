package search

import (
	"path"
	"sort"
	"strings"

	"repolens/internal/ingest"
)

const (
	minQueryLen       = 2
	contextLines      = 2
	maxMatchesPerFile = 5
	maxFilesPerQuery  = 10
)

// importantNames rank a file ahead of all others in search results,
// regardless of match count.
var importantNames = map[string]struct{}{
	"readme.md":    {},
	"package.json": {},
	"index.js":     {},
	"index.ts":     {},
	"main.go":      {},
	"main.py":      {},
	"app.js":       {},
	"app.py":       {},
	"server.js":    {},
	"go.mod":       {},
	"makefile":     {},
	"dockerfile":   {},
}

// LineMatch is one matched line with up to contextLines lines around it.
type LineMatch struct {
	Line   int      `json:"line"`
	Text   string   `json:"text"`
	Before []string `json:"before,omitempty"`
	After  []string `json:"after,omitempty"`
}

// FileMatches aggregates the matches within one file. TotalMatches counts
// every matching line even when Matches was capped.
type FileMatches struct {
	Path         string      `json:"path"`
	Matches      []LineMatch `json:"matches"`
	TotalMatches int         `json:"totalMatches"`
}

// Result is a ranked, bounded result set. TotalMatches sums the per-file
// counts across every matching file, including files dropped by the
// per-query cap.
type Result struct {
	Results      []FileMatches `json:"results"`
	TotalMatches int           `json:"totalMatches"`
}

func emptyResult() Result {
	return Result{Results: []FileMatches{}}
}

// Search scans every document line by line for a case-insensitive substring
// match. The scan is recomputed per query; nothing is indexed ahead of
// time. Queries shorter than two characters return an empty result rather
// than an error.
func Search(docs []ingest.Document, query string) Result {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLen {
		return emptyResult()
	}
	needle := strings.ToLower(query)

	out := emptyResult()
	for _, doc := range docs {
		fm := scanDoc(doc, func(line string) bool {
			return strings.Contains(strings.ToLower(line), needle)
		})
		if fm.TotalMatches == 0 {
			continue
		}
		out.TotalMatches += fm.TotalMatches
		out.Results = append(out.Results, fm)
	}

	rankFiles(out.Results)
	if len(out.Results) > maxFilesPerQuery {
		out.Results = out.Results[:maxFilesPerQuery]
	}
	return out
}

func scanDoc(doc ingest.Document, match func(string) bool) FileMatches {
	fm := FileMatches{Path: doc.Path}
	lines := strings.Split(doc.Content, "\n")
	for i, line := range lines {
		if !match(line) {
			continue
		}
		fm.TotalMatches++
		if len(fm.Matches) >= maxMatchesPerFile {
			continue
		}
		fm.Matches = append(fm.Matches, LineMatch{
			Line:   i + 1,
			Text:   line,
			Before: contextSlice(lines, i-contextLines, i),
			After:  contextSlice(lines, i+1, i+1+contextLines),
		})
	}
	return fm
}

func contextSlice(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	out := make([]string, to-from)
	copy(out, lines[from:to])
	return out
}

// rankFiles puts importance-listed files before all others; within each
// tier, higher total match counts come first. The sort is stable so equal
// files keep document order.
func rankFiles(files []FileMatches) {
	sort.SliceStable(files, func(i, j int) bool {
		ii, ij := isImportant(files[i].Path), isImportant(files[j].Path)
		if ii != ij {
			return ii
		}
		return files[i].TotalMatches > files[j].TotalMatches
	})
}

func isImportant(p string) bool {
	_, ok := importantNames[strings.ToLower(path.Base(p))]
	return ok
}
