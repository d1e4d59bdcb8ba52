package alerts

import (
	"context"
	"fmt"

	"github.com/martatracker-data/internal/common/logger"
	"github.com/martatracker-data/internal/feed"
)

// SearchClient fetches alert posts newer than sinceID from the social feed.
// An empty sinceID requests without a lower bound.
type SearchClient interface {
	Search(ctx context.Context, sinceID string) (*feed.SearchResponse, error)
}

// AlertStore persists alert rows. Expired rows are invisible to reads; the
// store, not the pipeline, enforces expiry.
type AlertStore interface {
	// Put upserts a row keyed by route and creation time, so replaying an
	// already-processed post overwrites its own row instead of duplicating.
	Put(ctx context.Context, rec Record) error
	// QueryByRoute returns the route's live rows newest-created-first.
	QueryByRoute(ctx context.Context, route string) ([]Record, error)
	// ScanAll returns every live row; order is not guaranteed.
	ScanAll(ctx context.Context) ([]Record, error)
}

// Syncer runs one ingestion cycle: load cursor, search the feed, persist
// every parseable post, then advance the cursor to the feed's newest id.
type Syncer struct {
	feed   SearchClient
	store  AlertStore
	cursor *Cursor
	logger logger.Logger
}

func NewSyncer(client SearchClient, store AlertStore, cursor *Cursor, log logger.Logger) *Syncer {
	return &Syncer{
		feed:   client,
		store:  store,
		cursor: cursor,
		logger: log,
	}
}

// Run executes one polling cycle. A feed failure returns an error wrapping
// feed.ErrUpstream and leaves the cursor untouched so the next cycle retries
// the same range. A storage failure aborts the remaining posts of the batch;
// rows already written stay written, and the unadvanced cursor makes the
// cycle safe to rerun.
func (s *Syncer) Run(ctx context.Context) error {
	sinceID, found, err := s.cursor.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Info("No fetch cursor found, treating as first run")
	}

	resp, err := s.feed.Search(ctx, sinceID)
	if err != nil {
		return fmt.Errorf("searching feed: %w", err)
	}
	s.logger.Info("Found posts to process", "count", resp.Meta.ResultCount)

	// Feed order is newest first. Skipped posts never block progress, but a
	// write failure is fatal to the cycle.
	for _, post := range resp.Data {
		rec, ok := BuildRecord(post)
		if !ok {
			s.logger.Warn("Skipping unparseable post", "id", post.ID)
			continue
		}

		s.logger.Debug("Persisting alert",
			"route", rec.Route,
			"created_at", rec.CreatedAt,
			"post_id", post.ID)

		if err := s.store.Put(ctx, rec); err != nil {
			return fmt.Errorf("persisting alert for route %s: %w", rec.Route, err)
		}
	}

	// The cursor advances to the id the feed reported as newest, not to the
	// last post we managed to parse. Posts dropped for parse failures are
	// dropped permanently instead of being re-fetched forever.
	if resp.Meta.ResultCount > 0 && resp.Meta.NewestID != "" {
		s.logger.Debug("Advancing fetch cursor", "newest_id", resp.Meta.NewestID)
		if err := s.cursor.Save(ctx, resp.Meta.NewestID); err != nil {
			return err
		}
	}

	return nil
}
