package ingest

// RepoInfo is the repository metadata captured at ingestion time.
type RepoInfo struct {
	Name        string   `json:"name"`
	FullName    string   `json:"fullName"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Topics      []string `json:"topics"`
	Homepage    string   `json:"homepage"`
}

// CodeFile is one discovered source file. Content is capped for prompt
// assembly; FullContent keeps the untruncated fetch result so search stays
// complete regardless of the prompt budget.
type CodeFile struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Content     string `json:"content"`
	FullContent string `json:"-"`
	Language    string `json:"language"`
	Size        int64  `json:"size"`
}

// ImportantFile is a config or doc file (package manifest, README, ...)
// kept under a smaller content budget than code files.
type ImportantFile struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Content     string `json:"content"`
	FullContent string `json:"-"`
	Type        string `json:"type"`
}

// Document is the searchable view of one discovered file: path plus full,
// untruncated content.
type Document struct {
	Path    string
	Name    string
	Content string
}

// Snapshot is the complete ingestion result for one Identity. Once cached
// it is read-only to consumers.
type Snapshot struct {
	Info           RepoInfo
	CodeFiles      []CodeFile // prioritized, at most maxCodeFiles
	ImportantFiles []ImportantFile
	TotalFiles     int
	AllFiles       []Document // every discovered file, full content
}
