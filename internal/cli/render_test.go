package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/snipshare/internal/model"
	"github.com/sakif/snipshare/internal/pagination"
)

func TestRenderStrip(t *testing.T) {
	c := pagination.Build(model.Pagination{
		Total:       100,
		Page:        5,
		Limit:       10,
		TotalPages:  10,
		HasNextPage: true,
		HasPrevPage: true,
	})
	assert.Equal(t, "<< < 1 .. 4 [5] 6 .. 10 > >>", renderStrip(c))
}

func TestRenderStrip_DisabledControls(t *testing.T) {
	c := pagination.Build(model.Pagination{
		Total:       15,
		Page:        1,
		Limit:       10,
		TotalPages:  2,
		HasNextPage: true,
		HasPrevPage: false,
	})
	assert.Equal(t, "(<<) (<) [1] 2 > >>", renderStrip(c))
}
