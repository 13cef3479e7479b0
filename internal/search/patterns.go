package search

import (
	"regexp"
	"strings"

	"repolens/internal/ingest"
)

// PatternKind selects a family of syntactic constructs to scan for.
type PatternKind string

const (
	PatternFunction PatternKind = "function"
	PatternClass    PatternKind = "class"
	PatternImport   PatternKind = "import"
	PatternExport   PatternKind = "export"
)

// patternRes are lexical approximations of declaration syntax. This is a
// heuristic grep, not an AST search: the patterns are shaped for the
// JS/TS/Python/Go family and will under-match other syntaxes.
var patternRes = map[PatternKind]*regexp.Regexp{
	PatternFunction: regexp.MustCompile(`(?:\bfunction\s+\w+|\bfunc\s+(?:\([^)]*\)\s*)?\w+\s*\(|\bdef\s+\w+\s*\(|\b(?:const|let|var)\s+\w+\s*=\s*(?:async\s+)?\()`),
	PatternClass:    regexp.MustCompile(`(?:\bclass\s+\w+|\btype\s+\w+\s+(?:struct|interface)\b|\binterface\s+\w+)`),
	PatternImport:   regexp.MustCompile(`(?:^\s*import\b|^\s*from\s+\S+\s+import\b|\brequire\s*\()`),
	PatternExport:   regexp.MustCompile(`(?:^\s*export\b|\bmodule\.exports\b)`),
}

// ValidPatternKind reports whether kind names a supported pattern family.
func ValidPatternKind(kind string) bool {
	_, ok := patternRes[PatternKind(kind)]
	return ok
}

// SearchPattern scans for lines that look like declarations of the given
// kind and, when query is non-empty, keeps only matches whose line contains
// the query substring (case-insensitive). Result bounds and ranking are the
// same as for plain Search.
func SearchPattern(docs []ingest.Document, kind PatternKind, query string) Result {
	re, ok := patternRes[kind]
	if !ok {
		return emptyResult()
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	out := emptyResult()
	for _, doc := range docs {
		fm := scanDoc(doc, func(line string) bool {
			if !re.MatchString(line) {
				return false
			}
			return needle == "" || strings.Contains(strings.ToLower(line), needle)
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
