package ingest

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"repolens/internal/cache/memory"
)

const defaultCacheCapacity = 128

// Service orchestrates ingestion: identity parsing, the walk, prioritization
// and caching. Concurrent first requests for the same identity share a
// single walk via the singleflight group.
type Service struct {
	walker *Walker
	cache  *memory.Store[string, *Snapshot]
	group  singleflight.Group
}

func NewService(fetcher ContentFetcher, cacheCapacity int) *Service {
	if cacheCapacity <= 0 {
		cacheCapacity = defaultCacheCapacity
	}
	return &Service{
		walker: NewWalker(fetcher),
		cache:  memory.New[string, *Snapshot](cacheCapacity),
	}
}

// Analyze returns the snapshot for the repository named by raw, ingesting
// it on a cache miss. The returned snapshot is shared and read-only.
func (s *Service) Analyze(ctx context.Context, raw string) (*Snapshot, error) {
	id, err := ParseIdentity(raw)
	if err != nil {
		return nil, err
	}
	key := id.String()
	if snap, ok := s.cache.Get(key); ok {
		return snap, nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		// A concurrent caller may have finished while we queued.
		if snap, ok := s.cache.Get(key); ok {
			return snap, nil
		}
		snap, err := s.ingest(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.Put(key, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Snapshot returns the cached snapshot for raw, or KindNotYetAnalyzed when
// the repository has not been ingested. It never triggers a walk.
func (s *Service) Snapshot(raw string) (*Snapshot, error) {
	id, err := ParseIdentity(raw)
	if err != nil {
		return nil, err
	}
	snap, ok := s.cache.Get(id.String())
	if !ok {
		return nil, &Error{
			Kind: KindNotYetAnalyzed,
			Msg:  fmt.Sprintf("repository %s has not been analyzed yet", id),
		}
	}
	return snap, nil
}

func (s *Service) ingest(ctx context.Context, id Identity) (*Snapshot, error) {
	out, err := s.walker.Walk(ctx, id)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Info:           out.Info,
		CodeFiles:      Prioritize(out.Code),
		ImportantFiles: out.Important,
		TotalFiles:     len(out.Code) + len(out.Important),
	}
	snap.AllFiles = make([]Document, 0, snap.TotalFiles)
	for _, f := range out.Code {
		snap.AllFiles = append(snap.AllFiles, Document{Path: f.Path, Name: f.Name, Content: f.FullContent})
	}
	for _, f := range out.Important {
		snap.AllFiles = append(snap.AllFiles, Document{Path: f.Path, Name: f.Name, Content: f.FullContent})
	}
	return snap, nil
}
