package ingest

import (
	"sort"
	"strings"
)

// maxCodeFiles caps how many code files reach the prompt context.
const maxCodeFiles = 25

// entryPointKeywords rank filenames by architectural significance; earlier
// keywords win. Matching is a case-insensitive substring check, a cheap
// heuristic that stands in for semantic analysis.
var entryPointKeywords = []string{
	"index", "main", "app", "server", "api",
	"router", "route", "handler", "controller", "service", "config",
}

// Prioritize stably orders code files by entry-point keyword rank, then
// (among files matching no keyword) by ascending size, and truncates the
// result to maxCodeFiles. The input slice is left untouched.
func Prioritize(files []CodeFile) []CodeFile {
	ranked := make([]CodeFile, len(files))
	copy(ranked, files)

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := keywordRank(ranked[i].Name), keywordRank(ranked[j].Name)
		if ri != rj {
			return ri < rj
		}
		if ri == len(entryPointKeywords) {
			return ranked[i].Size < ranked[j].Size
		}
		return false
	})

	if len(ranked) > maxCodeFiles {
		ranked = ranked[:maxCodeFiles]
	}
	return ranked
}

func keywordRank(name string) int {
	lower := strings.ToLower(name)
	for i, kw := range entryPointKeywords {
		if strings.Contains(lower, kw) {
			return i
		}
	}
	return len(entryPointKeywords)
}
