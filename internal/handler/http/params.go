package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
)

// listParamsFromRequest reads pagination, sorting and search parameters from
// the query string. Unparsable numbers are reported as zero and left to the
// service to normalize.
func listParamsFromRequest(r *http.Request) models.ListParams {
	query := r.URL.Query()

	return models.ListParams{
		Limit:     atoiOrZero(query.Get("limit")),
		Offset:    atoiOrZero(query.Get("offset")),
		Sort:      query.Get("sort"),
		Order:     query.Get("order"),
		SearchKey: query.Get("searchKey"),
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// decodeJSON decodes the request body into dst. Every failure, including an
// empty body, is reported as [ErrInvalidJSON].
func decodeJSON(r *http.Request, dst any) error {
	if err := utils.DecodeJSON(r, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
