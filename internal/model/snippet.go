package model

import "time"

// Tag is a short named label attached to a snippet for filtering.
// Tags are many-to-many with snippets and the server assigns their IDs;
// order within a snippet's tag list carries no meaning.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snippet represents a titled, tagged block of source code with a declared
// programming language, owned by exactly one user and optionally public.
//
// UserID/User is a back-reference only — the client never reassigns
// ownership. The `json:"..."` struct tags mirror the API's wire format.
type Snippet struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	Content             string    `json:"content"`
	Tags                []Tag     `json:"tags"`
	ProgrammingLanguage string    `json:"programmingLanguage"`
	UserID              string    `json:"userId"`
	User                User      `json:"user"`
	IsPublic            bool      `json:"isPublic"`
	ViewCount           int       `json:"viewCount"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TagNames flattens the tag list to its names, preserving server order.
func (s *Snippet) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Pagination is the server-computed position of one page within a larger
// collection.
//
// THE SERVER IS THE SOURCE OF TRUTH:
// HasNextPage and HasPrevPage are passed through to callers unmodified.
// The client must not recompute them from Page/TotalPages — if the server
// ever rounds differently, recomputing here would silently drift from what
// a fetch of the "next" page actually returns.
type Pagination struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"` // 1-indexed
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// SnippetPage is one paginated result set as returned by the list endpoints.
// Invariant: len(Snippets) <= Pagination.Limit.
type SnippetPage struct {
	Snippets   []Snippet  `json:"snippets"`
	Pagination Pagination `json:"pagination"`
}

// SnippetInput is the client-authored record submitted on create and update.
// Tags are plain names here; the server resolves them to Tag records.
type SnippetInput struct {
	Title               string   `json:"title"`
	Description         string   `json:"description,omitempty"`
	Content             string   `json:"content"`
	Tags                []string `json:"tags"`
	ProgrammingLanguage string   `json:"programmingLanguage"`
	IsPublic            bool     `json:"isPublic"`
}
