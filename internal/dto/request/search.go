package request

import (
	"flix/pkg/utils"
)

// SearchPageSize is fixed; the incremental-loading client always pulls
// twelve cards per page
const SearchPageSize = 12

type SearchRequest struct {
	Query string
	Genre string
	Page  int
}

func (s SearchRequest) Offset() int {
	return utils.CalculateOffset(s.Page, SearchPageSize)
}
