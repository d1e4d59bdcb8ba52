package alerts

import (
	"context"
	"fmt"
)

// ParamStore is a durable single-value store for named parameters.
type ParamStore interface {
	// Get returns found=false for a missing parameter; that is a normal
	// state, not an error.
	Get(ctx context.Context, name string) (value string, found bool, err error)
	Put(ctx context.Context, name, value string) error
}

// Cursor tracks the id of the most recently processed feed post so each
// polling cycle only fetches newer posts.
type Cursor struct {
	params ParamStore
	name   string
}

func NewCursor(params ParamStore, name string) *Cursor {
	return &Cursor{params: params, name: name}
}

// Load reads the last-seen post id. found is false on the first run, before
// any cycle has persisted a cursor.
func (c *Cursor) Load(ctx context.Context) (string, bool, error) {
	value, found, err := c.params.Get(ctx, c.name)
	if err != nil {
		return "", false, fmt.Errorf("loading cursor %s: %w", c.name, err)
	}
	return value, found, nil
}

// Save overwrites the cursor unconditionally. Single writer per invocation
// is assumed; there is no compare-and-swap.
func (c *Cursor) Save(ctx context.Context, id string) error {
	if err := c.params.Put(ctx, c.name, id); err != nil {
		return fmt.Errorf("saving cursor %s: %w", c.name, err)
	}
	return nil
}
