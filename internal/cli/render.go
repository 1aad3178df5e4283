package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sakif/snipshare/internal/forms"
	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/pagination"
	"github.com/sakif/snipshare/internal/store"
)

// renderPage prints a slot's snippet cards followed by the pagination
// strip, reading everything from the store.
func renderPage(out io.Writer, snippets *store.SnippetStore, slot store.Slot) {
	items := snippets.Snippets(slot)
	meta := snippets.PaginationFor(slot)

	if len(items) == 0 {
		fmt.Fprintln(out, "No snippets found.")
		return
	}

	for i := range items {
		renderCard(out, &items[i])
	}

	fmt.Fprintf(out, "\n%d snippets, page %d of %d\n", meta.Total, meta.Page, meta.TotalPages)
	fmt.Fprintln(out, renderStrip(pagination.Build(meta)))
}

// renderCard prints the list-view summary of one snippet.
func renderCard(out io.Writer, s *model.Snippet) {
	visibility := "private"
	if s.IsPublic {
		visibility = "public"
	}
	fmt.Fprintf(out, "%s  %s [%s, %s]\n", s.ID, s.Title, s.ProgrammingLanguage, visibility)
	if s.Description != "" {
		fmt.Fprintf(out, "    %s\n", s.Description)
	}
	fmt.Fprintf(out, "    by %s", s.User.Username)
	if tags := s.TagNames(); len(tags) > 0 {
		fmt.Fprintf(out, "  #%s", strings.Join(tags, " #"))
	}
	fmt.Fprintf(out, "  (%d views)\n", s.ViewCount)
}

// renderSnippet prints one snippet in full, including its content.
func renderSnippet(out io.Writer, s *model.Snippet, saved bool) {
	if s == nil {
		fmt.Fprintln(out, "Snippet not found.")
		return
	}
	renderCard(out, s)
	if saved {
		fmt.Fprintln(out, "    saved to your collection")
	}
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out, s.Content)
	fmt.Fprintln(out, strings.Repeat("-", 40))
}

func renderUser(out io.Writer, u *model.User) {
	fmt.Fprintf(out, "%s <%s> @%s\n", u.FullName(), u.Email, u.Username)
	if u.Position != "" || u.CompanyName != "" {
		fmt.Fprintf(out, "%s %s\n", u.Position, u.CompanyName)
	}
	if !u.IsActive {
		fmt.Fprintln(out, "email not verified")
	}
}

// renderStrip formats the page controls on one line, e.g.
//
//	<< < 1 .. 4 [5] 6 .. 10 > >>
//
// Disabled prev/next controls are shown in parentheses, mirroring the
// greyed-out buttons of the original UI.
func renderStrip(c pagination.Controls) string {
	var b strings.Builder

	writeControl(&b, "<<", c.PrevEnabled)
	writeControl(&b, "<", c.PrevEnabled)

	for _, item := range c.Items {
		switch {
		case item.Ellipsis:
			b.WriteString(" ..")
		case item.Current:
			fmt.Fprintf(&b, " [%d]", item.Page)
		default:
			fmt.Fprintf(&b, " %d", item.Page)
		}
	}

	writeControl(&b, ">", c.NextEnabled)
	writeControl(&b, ">>", c.NextEnabled)
	return strings.TrimSpace(b.String())
}

func writeControl(b *strings.Builder, label string, enabled bool) {
	if enabled {
		fmt.Fprintf(b, " %s", label)
	} else {
		fmt.Fprintf(b, " (%s)", label)
	}
}

// renderFieldErrors prints validation failures next to their field names,
// the inline-error equivalent of the web form.
func renderFieldErrors(out io.Writer, errs forms.Errors) {
	for field, msg := range errs {
		fmt.Fprintf(out, "%s %s\n", field, msg)
	}
}
