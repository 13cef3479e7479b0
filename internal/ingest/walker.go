package ingest

import (
	"context"
	"errors"
	"log"
	"path"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"repolens/internal/github"
)

const (
	// maxDepth counts directory levels below the root listing; the root is
	// depth 0, so four levels (0..3) are listed in total.
	maxDepth = 3
	// maxEntriesPerDir bounds how many entries of one listing are
	// considered. Remaining entries are dropped, which trades completeness
	// on very large directories for a bounded API-call budget.
	maxEntriesPerDir = 60
	// maxCodeFileBytes is the exclusive reported-size admission ceiling for
	// code files; files at or above it are never fetched.
	maxCodeFileBytes = 300_000

	codeContentCap      = 20_000
	importantContentCap = 8_000

	defaultParallelism = 8
)

// skipDirs are build, dependency and artifact directories that are never
// traversed at any depth. Hidden directories (leading dot) are skipped too.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"out":          {},
	"bin":          {},
	"obj":          {},
	"coverage":     {},
	"__pycache__":  {},
	"third_party":  {},
}

// descendDirs is the allowlist of conventional source-tree names traversed
// below the root level. At the root every non-skipped directory is entered
// so unconventional layouts still get shallow discovery.
var descendDirs = map[string]struct{}{
	"src": {}, "lib": {}, "libs": {}, "app": {}, "apps": {},
	"cmd": {}, "internal": {}, "pkg": {}, "server": {}, "client": {},
	"api": {}, "core": {}, "components": {}, "pages": {}, "routes": {},
	"handlers": {}, "controllers": {}, "models": {}, "services": {},
	"middleware": {}, "store": {}, "hooks": {}, "utils": {}, "helpers": {},
	"common": {}, "shared": {}, "config": {}, "scripts": {},
	"modules": {}, "packages": {}, "source": {},
}

// importantNames are config/doc filenames (lowercase, exact match) captured
// as important files.
var importantNames = map[string]struct{}{
	"package.json":       {},
	"tsconfig.json":      {},
	"go.mod":             {},
	"cargo.toml":         {},
	"pyproject.toml":     {},
	"requirements.txt":   {},
	"gemfile":            {},
	"composer.json":      {},
	"pom.xml":            {},
	"build.gradle":       {},
	"makefile":           {},
	"dockerfile":         {},
	"docker-compose.yml": {},
	".env.example":       {},
	"readme.md":          {},
	"webpack.config.js":  {},
	"vite.config.js":     {},
	"next.config.js":     {},
}

var languageByExt = map[string]string{
	".js": "JavaScript", ".jsx": "JavaScript", ".mjs": "JavaScript",
	".ts": "TypeScript", ".tsx": "TypeScript",
	".py": "Python", ".go": "Go", ".rs": "Rust", ".java": "Java",
	".rb": "Ruby", ".php": "PHP",
	".c": "C", ".h": "C", ".cpp": "C++", ".hpp": "C++", ".cc": "C++",
	".cs": "C#", ".swift": "Swift", ".kt": "Kotlin", ".scala": "Scala",
	".sh": "Shell", ".sql": "SQL",
	".html": "HTML", ".css": "CSS", ".scss": "CSS",
	".vue": "Vue", ".svelte": "Svelte",
}

// ContentFetcher is the capability the walker drives: repository metadata,
// directory listings and file content from the hosting API.
type ContentFetcher interface {
	Repository(ctx context.Context, owner, repo string) (*github.Repository, error)
	Directory(ctx context.Context, owner, repo, path string) ([]github.TreeEntry, error)
	File(ctx context.Context, owner, repo, path string) (string, error)
}

// Walker performs the bounded traversal of a remote repository tree.
// Directory listings descend sequentially; qualifying file fetches fan out
// through a size-limited group so external load stays bounded.
type Walker struct {
	fetcher     ContentFetcher
	parallelism int
}

func NewWalker(fetcher ContentFetcher) *Walker {
	return &Walker{fetcher: fetcher, parallelism: defaultParallelism}
}

// walkOutput is the unordered result of one traversal. Ordering is applied
// later by the prioritizer.
type walkOutput struct {
	Info      RepoInfo
	Code      []CodeFile
	Important []ImportantFile
}

// Walk ingests the repository named by id. A metadata fetch failure is
// fatal; per-entry fetch failures are logged and degrade to skipped
// entries.
func (w *Walker) Walk(ctx context.Context, id Identity) (*walkOutput, error) {
	repo, err := w.fetcher.Repository(ctx, id.Owner, id.Repo)
	if err != nil {
		kind := KindUpstreamUnavailable
		if errors.Is(err, github.ErrNotFound) {
			kind = KindRepositoryNotFound
		}
		return nil, &Error{Kind: kind, Msg: "failed to analyze repository " + id.String(), Err: err}
	}

	out := &walkOutput{Info: RepoInfo{
		Name:        repo.Name,
		FullName:    repo.FullName,
		Description: repo.Description,
		Language:    repo.Language,
		Stars:       repo.StargazersCount,
		Forks:       repo.ForksCount,
		Topics:      repo.Topics,
		Homepage:    repo.Homepage,
	}}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(w.parallelism)
	w.walkDir(ctx, &g, &mu, out, id, "", 0)
	_ = g.Wait() // fetch tasks never return errors; they degrade and log
	return out, nil
}

// walkDir lists one directory at the given depth and schedules fetches for
// qualifying files. File fetches run on g; recursion stays on the calling
// goroutine so the group only ever carries leaf tasks.
func (w *Walker) walkDir(ctx context.Context, g *errgroup.Group, mu *sync.Mutex, out *walkOutput, id Identity, dir string, depth int) {
	if ctx.Err() != nil {
		return
	}
	entries, err := w.fetcher.Directory(ctx, id.Owner, id.Repo, dir)
	if err != nil {
		log.Printf("ingest: list %s %q failed: %v", id, dir, err)
		return
	}
	if len(entries) > maxEntriesPerDir {
		entries = entries[:maxEntriesPerDir]
	}

	for _, entry := range entries {
		switch entry.Type {
		case "dir":
			if depth >= maxDepth {
				continue
			}
			if !descendInto(entry.Name, depth) {
				continue
			}
			w.walkDir(ctx, g, mu, out, id, entry.Path, depth+1)
		case "file":
			w.admitFile(ctx, g, mu, out, id, entry)
		}
	}
}

func (w *Walker) admitFile(ctx context.Context, g *errgroup.Group, mu *sync.Mutex, out *walkOutput, id Identity, entry github.TreeEntry) {
	name := strings.ToLower(entry.Name)

	if _, ok := importantNames[name]; ok {
		g.Go(func() error {
			content, err := w.fetcher.File(ctx, id.Owner, id.Repo, entry.Path)
			if err != nil {
				log.Printf("ingest: fetch %s %q failed: %v", id, entry.Path, err)
				return nil
			}
			mu.Lock()
			out.Important = append(out.Important, ImportantFile{
				Path:        entry.Path,
				Name:        entry.Name,
				Content:     truncate(content, importantContentCap),
				FullContent: content,
				Type:        "config",
			})
			mu.Unlock()
			return nil
		})
		return
	}

	ext := strings.ToLower(path.Ext(name))
	lang, ok := languageByExt[ext]
	if !ok || entry.Size >= maxCodeFileBytes {
		return
	}
	g.Go(func() error {
		content, err := w.fetcher.File(ctx, id.Owner, id.Repo, entry.Path)
		if err != nil {
			log.Printf("ingest: fetch %s %q failed: %v", id, entry.Path, err)
			return nil
		}
		mu.Lock()
		out.Code = append(out.Code, CodeFile{
			Path:        entry.Path,
			Name:        entry.Name,
			Content:     truncate(content, codeContentCap),
			FullContent: content,
			Language:    lang,
			Size:        entry.Size,
		})
		mu.Unlock()
		return nil
	})
}

func descendInto(name string, parentDepth int) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	lower := strings.ToLower(name)
	if _, skipped := skipDirs[lower]; skipped {
		return false
	}
	if parentDepth == 0 {
		return true
	}
	_, ok := descendDirs[lower]
	return ok
}

// truncate cuts s to at most n bytes without splitting a rune, so the
// result is always a prefix of s.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
