// Package pagination computes the bounded page-number strip rendered under
// a result set.
//
// The shape: with five or fewer pages, every page shows. Beyond that the
// first and last pages are always anchored, up to three pages form a
// window around the current one, and an ellipsis marks each gap between
// the anchors and the window.
package pagination

import "github.com/sakif/snipshare/internal/model"

// maxVisible is the page count at which the strip stops showing every page.
const maxVisible = 5

// Item is one element of the strip: a page number, or an ellipsis marker.
type Item struct {
	Page     int // valid when Ellipsis is false
	Ellipsis bool
	Current  bool
}

// Controls is everything a view needs to render the strip: the items plus
// the enabled state of the first/prev/next/last buttons.
//
// PrevEnabled and NextEnabled come straight from the server's
// hasPrevPage/hasNextPage flags. They are NOT derived from Page and
// TotalPages here — the server is the source of truth for whether more
// pages exist, and recomputing would drift if it ever rounds differently.
type Controls struct {
	Items       []Item
	PrevEnabled bool // first and previous buttons
	NextEnabled bool // next and last buttons
	First       int  // target of the "first" button, always 1
	Last        int  // target of the "last" button
}

// Build computes the strip for the given server pagination metadata.
func Build(p model.Pagination) Controls {
	return Controls{
		Items:       Window(p.Page, p.TotalPages),
		PrevEnabled: p.HasPrevPage,
		NextEnabled: p.HasNextPage,
		First:       1,
		Last:        p.TotalPages,
	}
}

// Window computes the visible page items for a current page within
// totalPages.
func Window(page, totalPages int) []Item {
	if totalPages < 1 {
		return nil
	}

	if totalPages <= maxVisible {
		items := make([]Item, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			items = append(items, Item{Page: i, Current: i == page})
		}
		return items
	}

	items := []Item{{Page: 1, Current: page == 1}}

	if page > 3 {
		items = append(items, Item{Ellipsis: true})
	}

	// A window of up to three pages centered on the current page, kept
	// strictly between the anchored first and last pages.
	start := max(2, page-1)
	end := min(totalPages-1, start+2)
	if end-start < 2 {
		start = max(2, end-2)
	}
	for i := start; i <= end; i++ {
		items = append(items, Item{Page: i, Current: i == page})
	}

	if page < totalPages-2 {
		items = append(items, Item{Ellipsis: true})
	}

	items = append(items, Item{Page: totalPages, Current: page == totalPages})
	return items
}
