package alerts

// Merge combines an incoming record with the current composite for the same
// route. The record with the later creation time takes the primary slot: its
// timestamps win and its text leads, with the other record's text appended
// after a blank line. Equal timestamps keep existing as primary, so replaying
// an identical pair duplicates the text; callers fold newest-first, which
// keeps the result stable.
func Merge(existing *Record, incoming Record) Record {
	if existing == nil {
		return incoming
	}

	if incoming.CreatedAt.After(existing.CreatedAt) {
		return Record{
			Route:     incoming.Route,
			Text:      incoming.Text + "\n\n" + existing.Text,
			CreatedAt: incoming.CreatedAt,
			ExpiresAt: incoming.ExpiresAt,
		}
	}

	return Record{
		Route:     existing.Route,
		Text:      existing.Text + "\n\n" + incoming.Text,
		CreatedAt: existing.CreatedAt,
		ExpiresAt: existing.ExpiresAt,
	}
}
