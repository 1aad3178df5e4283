package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/snipshare/internal/model"
)

// Snippets fetches a page of the public feed.
func (c *Client) Snippets(ctx context.Context, q ListQuery) (*model.SnippetPage, error) {
	var env pageEnvelope
	if err := c.do(ctx, http.MethodGet, "snippets", q.Values(), nil, &env); err != nil {
		return nil, err
	}
	return env.page(), nil
}

// MySnippets fetches a page of the authenticated user's own snippets.
// Authentication is server-enforced; an anonymous call comes back as a
// session error rather than being pre-checked here.
func (c *Client) MySnippets(ctx context.Context, q ListQuery) (*model.SnippetPage, error) {
	var env pageEnvelope
	if err := c.do(ctx, http.MethodGet, "me/snippets", q.Values(), nil, &env); err != nil {
		return nil, err
	}
	return env.page(), nil
}

// SnippetByID fetches one snippet.
func (c *Client) SnippetByID(ctx context.Context, id string) (*model.Snippet, error) {
	var snippet model.Snippet
	if err := c.do(ctx, http.MethodGet, "me/snippets/"+id, nil, nil, &snippet); err != nil {
		return nil, err
	}
	return &snippet, nil
}

// CreateSnippet submits a new snippet and returns the server's record.
func (c *Client) CreateSnippet(ctx context.Context, input model.SnippetInput) (*model.Snippet, error) {
	var snippet model.Snippet
	if err := c.do(ctx, http.MethodPost, "me/snippets", nil, input, &snippet); err != nil {
		return nil, err
	}
	return &snippet, nil
}

// UpdateSnippet resubmits the full record for an existing snippet.
// The API uses POST (not PUT) on the item path for updates.
func (c *Client) UpdateSnippet(ctx context.Context, id string, input model.SnippetInput) (*model.Snippet, error) {
	var snippet model.Snippet
	if err := c.do(ctx, http.MethodPost, "me/snippets/"+id, nil, input, &snippet); err != nil {
		return nil, err
	}
	return &snippet, nil
}

// DeleteSnippet removes a snippet by id.
func (c *Client) DeleteSnippet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "me/snippets/"+id, nil, nil, nil)
}

// Attachment is one file sent with a multipart snippet update.
type Attachment struct {
	Name    string
	Content io.Reader
}

// UpdateSnippetMultipart is the attachment-carrying variant of
// UpdateSnippet. Snippet fields travel as form values and each attachment
// as a file part, matching the API's multipart contract.
func (c *Client) UpdateSnippetMultipart(ctx context.Context, id string, input model.SnippetInput, attachments []Attachment) (*model.Snippet, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":               input.Title,
		"description":         input.Description,
		"content":             input.Content,
		"programmingLanguage": input.ProgrammingLanguage,
		"tags":                strings.Join(input.Tags, ","),
		"isPublic":            strconv.FormatBool(input.IsPublic),
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", name, err)
		}
	}
	for _, a := range attachments {
		part, err := form.CreateFormFile("attachments", a.Name)
		if err != nil {
			return nil, fmt.Errorf("adding attachment %s: %w", a.Name, err)
		}
		if _, err := io.Copy(part, a.Content); err != nil {
			return nil, fmt.Errorf("reading attachment %s: %w", a.Name, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalising form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("me/snippets/"+id, nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", form.FormDataContentType())

	var snippet model.Snippet
	if err := c.send(req, &snippet); err != nil {
		return nil, err
	}
	return &snippet, nil
}
