package models

// Sort orders accepted by list endpoints.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams holds the pagination, sorting and search parameters of a list
// request. Services normalize the raw values before they reach the store, so
// repositories can rely on Sort being an allowed field and Limit being
// positive.
type ListParams struct {
	Limit     int
	Offset    int
	Sort      string
	Order     string
	SearchKey string
}

// Descending reports whether results are ordered from highest to lowest.
func (p ListParams) Descending() bool {
	return p.Order == OrderDesc
}

// UserPage is the response of the users list endpoint.
type UserPage struct {
	TotalCount int    `json:"totalCount"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Sort       string `json:"sort"`
	Order      string `json:"order"`
	SearchKey  string `json:"searchKey"`
	Users      []User `json:"users"`
}

// BookPage is the response of the books list endpoint.
type BookPage struct {
	TotalCount int    `json:"totalCount"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Sort       string `json:"sort"`
	Order      string `json:"order"`
	SearchKey  string `json:"searchKey"`
	Books      []Book `json:"books"`
}
