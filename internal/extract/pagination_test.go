// internal/extract/pagination_test.go
package extract

import (
	"testing"

	"github.com/vidproxy/vidproxy/internal/records"
)

func TestExtractPagination(t *testing.T) {
	tests := []struct {
		name string
		html string
		want records.PaginationInfo
	}{
		{
			"no pager yields the default",
			`<html><body><p>no pager</p></body></html>`,
			records.PaginationInfo{CurrentPage: 1, TotalPages: 1},
		},
		{
			"middle page",
			`<div class="pager">
				<span class="pager__item"><a href="?page=1">1</a></span>
				<span class="pager__item pager__item--active">2</span>
				<span class="pager__item"><a href="?page=3">3</a></span>
			</div>`,
			records.PaginationInfo{CurrentPage: 2, TotalPages: 3, HasNext: true, HasPrevious: true},
		},
		{
			"first page",
			`<div class="pager">
				<span class="pager__item pager__item--active">1</span>
				<span class="pager__item"><a href="?page=2">2</a></span>
			</div>`,
			records.PaginationInfo{CurrentPage: 1, TotalPages: 2, HasNext: true},
		},
		{
			"last page without next control",
			`<div class="pager">
				<span class="pager__item"><a href="?page=1">1</a></span>
				<span class="pager__item pager__item--active">4</span>
			</div>`,
			records.PaginationInfo{CurrentPage: 4, TotalPages: 4, HasPrevious: true},
		},
		{
			"active marker alone, next link present",
			`<div><span class="pager__item--active">7</span><a rel="next" href="?page=8">next</a></div>`,
			records.PaginationInfo{CurrentPage: 7, TotalPages: 7, HasNext: true, HasPrevious: true},
		},
		{
			"bootstrap-style pagination",
			`<ul class="pagination">
				<li class="active"><a>3</a></li>
				<li><a href="?page=5">5</a></li>
			</ul>`,
			records.PaginationInfo{CurrentPage: 3, TotalPages: 5, HasNext: true, HasPrevious: true},
		},
		{
			"controls without an active marker assume page one",
			`<div class="pager"><span class="pager__item"><a>1</a></span><span class="pager__item"><a>9</a></span></div>`,
			records.PaginationInfo{CurrentPage: 1, TotalPages: 9, HasNext: true},
		},
		{
			"non-numeric pager text yields the default",
			`<div class="pager"><span class="pager__item"><a>next</a></span></div>`,
			records.PaginationInfo{CurrentPage: 1, TotalPages: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPagination(NewPage(tt.html))
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
