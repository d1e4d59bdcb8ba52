package alerts

import (
	"time"

	"github.com/martatracker-data/internal/feed"
)

// alertTTL is how long an alert row stays visible before the store expires it.
const alertTTL = 24 * time.Hour

// Record is the normalized alert stored and merged per route.
type Record struct {
	Route     string
	Text      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// BuildRecord converts one raw feed post into a Record. ok is false when the
// post is malformed (missing id, text or creation time) or when no route can
// be extracted from its text; either way the post is skipped, not stored.
func BuildRecord(post feed.Post) (Record, bool) {
	if post.ID == "" || post.Text == "" || post.CreatedAt.IsZero() {
		return Record{}, false
	}

	route, rest, ok := ExtractRoute(post.Text)
	if !ok {
		return Record{}, false
	}

	created := post.CreatedAt.UTC().Truncate(time.Second)

	return Record{
		Route:     route,
		Text:      rest,
		CreatedAt: created,
		ExpiresAt: created.Add(alertTTL),
	}, true
}
