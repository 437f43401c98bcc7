package model

// Article is one scraped news article.
//
// Design decision: we keep the exact column set of the CSV artifact in the
// struct rather than deriving columns at write time. The record is the
// artifact row; writers only order the fields.
type Article struct {
	// Page is the 1-based index of the listing page or category the
	// article was discovered on.
	Page int `json:"page"`

	// Category is the human-readable section name ("Thời sự", "Kinh doanh", ...).
	// Empty when scraping plain homepage pagination.
	Category string `json:"category,omitempty"`

	// Title is the cleaned headline text.
	Title string `json:"title"`

	// Link is the absolute article URL.
	Link string `json:"link"`

	// ContentPreview is the first 200 characters of the extracted body,
	// with a "..." marker when the body was longer.
	ContentPreview string `json:"content_preview"`

	// Summary is the naive extractive summary: the first sentences of the
	// body, truncated to at most 300 characters including a trailing "...".
	Summary string `json:"summary"`

	// ContentLength is the length of the full extracted body in runes.
	ContentLength int `json:"content_length"`

	// ScrapedAt is the collection timestamp in TimestampLayout format.
	ScrapedAt string `json:"scraped_at"`
}
