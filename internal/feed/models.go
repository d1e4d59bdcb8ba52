package feed

import "time"

// Post is one alert post from the recent-search response. Unknown response
// fields are ignored; missing fields decode to zero values and are validated
// downstream.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchMeta is the response metadata. NewestID is authoritative for "what
// have we seen" and drives cursor advancement.
type SearchMeta struct {
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	ResultCount int    `json:"result_count"`
}

// SearchResponse is the decoded body of a recent-search call. Posts arrive
// newest first.
type SearchResponse struct {
	Data []Post     `json:"data"`
	Meta SearchMeta `json:"meta"`
}
