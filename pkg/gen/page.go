package gen

import "github.com/NVIDIA/OSMO-sub000/pkg/models"

// Page is one window of an index-addressable entity space.
type Page[T any] struct {
	Entries []T `json:"entries"`
	Total   int `json:"total"`
}

// pageOf windows gen into [offset, offset+limit) clamped to [0, total) and
// the configured max page size. Only the entities inside the window are
// computed; the rest of the id space never materializes. Invalid numbers are
// clamped, never rejected.
func pageOf[T any](total, offset, limit, maxPage int, gen func(int) T) Page[T] {
	if total < 0 {
		total = 0
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if limit > maxPage {
		limit = maxPage
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := Page[T]{Total: total, Entries: []T{}}
	for i := offset; i < end; i++ {
		page.Entries = append(page.Entries, gen(i))
	}
	return page
}

// WorkflowPage returns one page of the workflow space. Entry k equals
// Workflow(offset+k) exactly.
func (g *Generator) WorkflowPage(offset, limit int) Page[models.Workflow] {
	return pageOf(g.cfg.WorkflowTotal, offset, limit, g.cfg.MaxPageSize, g.Workflow)
}
