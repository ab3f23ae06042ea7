package models

import "time"

// CandidateItem is a raw post pulled from a content source. It is immutable
// once fetched; the pipeline only reads from it.
type CandidateItem struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Permalink string `json:"permalink"`
}

// PendingPost is an enriched item waiting for the admin's approve/reject
// decision. Title and Body hold the translated text; Category is predicted
// from the original (untranslated) title.
type PendingPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	SourceURL string    `json:"source_url"`
	QueuedAt  time.Time `json:"queued_at"`
}
