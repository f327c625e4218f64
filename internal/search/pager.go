package search

import (
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/pkg/pagination"
)

const DefaultPageSize = pagination.PageDefaultSize

// Pager filters a full result set by the committed query and category and
// slices the matches into pages. It is not safe for concurrent use.
type Pager struct {
	size     int
	all      []domain.Entry
	filtered []domain.Entry
	query    string
	category string
	current  int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size, current: 1}
}

func (p *Pager) SetResults(all []domain.Entry) {
	p.all = all
	p.refilter()
}

func (p *Pager) SetQuery(q string) {
	p.query = q
	p.refilter()
}

func (p *Pager) SetCategory(c string) {
	p.category = c
	p.refilter()
}

func (p *Pager) Query() string    { return p.query }
func (p *Pager) Category() string { return p.category }
func (p *Pager) Current() int     { return p.current }
func (p *Pager) Size() int        { return p.size }

// Len is the number of filtered entries.
func (p *Pager) Len() int { return len(p.filtered) }

// TotalPages is ceil(Len/Size) and 0 when nothing matches.
func (p *Pager) TotalPages() int {
	return pagination.TotalPages(len(p.filtered), p.size)
}

// HasPagination reports whether page controls should be rendered.
func (p *Pager) HasPagination() bool {
	return p.TotalPages() > 1
}

// Page clamps n into [1, max(1, TotalPages)], makes it current and returns
// its slice of the filtered entries.
func (p *Pager) Page(n int) []domain.Entry {
	p.current = pagination.ClampPage(n, len(p.filtered), p.size)
	start, end := pagination.Bounds(p.current, len(p.filtered), p.size)
	return slices.Clip(p.filtered[start:end])
}

// CurrentPage returns the slice of the current page.
func (p *Pager) CurrentPage() []domain.Entry {
	return p.Page(p.current)
}

// Latest returns the first n entries of the unfiltered results.
func (p *Pager) Latest(n int) []domain.Entry {
	if n > len(p.all) {
		n = len(p.all)
	}
	if n < 0 {
		n = 0
	}
	return slices.Clip(p.all[:n])
}

func (p *Pager) refilter() {
	p.filtered = Filter(p.all, p.query, p.category)
	p.current = 1
}

// Filter keeps entries whose title or description contains query and whose
// category equals category, both case-insensitively. Empty criteria match
// everything. query is trimmed before matching, so " dog" matches "dog".
func Filter(all []domain.Entry, query, category string) []domain.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := strings.ToLower(strings.TrimSpace(category))

	out := make([]domain.Entry, 0, len(all))
	for _, e := range all {
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			continue
		}
		if cat != "" && strings.ToLower(strings.TrimSpace(e.Category)) != cat {
			continue
		}
		out = append(out, e)
	}
	return out
}
