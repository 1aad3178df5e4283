package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sakif/snipshare/internal/model"
)

// SavedSnippets fetches a page of the user's saved collection.
// Unlike the feed endpoints, saved snippets take no filters — only
// page/limit.
func (c *Client) SavedSnippets(ctx context.Context, page, limit int) (*model.SnippetPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var env pageEnvelope
	if err := c.do(ctx, http.MethodGet, "saved-snippets", q, nil, &env); err != nil {
		return nil, err
	}
	return env.page(), nil
}

// SaveSnippet adds a snippet to the user's saved collection.
func (c *Client) SaveSnippet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "saved-snippets/"+id, nil, nil, nil)
}

// UnsaveSnippet removes a snippet from the user's saved collection.
func (c *Client) UnsaveSnippet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "saved-snippets/"+id, nil, nil, nil)
}

// IsSaved reports whether the snippet is in the user's saved collection.
func (c *Client) IsSaved(ctx context.Context, id string) (bool, error) {
	var out struct {
		IsSaved bool `json:"isSaved"`
	}
	if err := c.do(ctx, http.MethodGet, "saved-snippets/"+id+"/is-saved", nil, nil, &out); err != nil {
		return false, err
	}
	return out.IsSaved, nil
}
