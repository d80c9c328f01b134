package service

import (
	"strings"

	"github.com/MKhiriev/go-bookshelf/models"
)

const (
	DefaultListLimit = 5
	MaxListLimit     = 100
)

var (
	userSortFields = []string{"firstName", "lastName"}
	bookSortFields = []string{"name", "pages", "price"}
)

// normalizeListParams replaces out-of-range values with defaults. sort falls
// back to the first of allowedSorts.
func normalizeListParams(params models.ListParams, allowedSorts []string) models.ListParams {
	if params.Limit <= 0 {
		params.Limit = DefaultListLimit
	}
	if params.Limit > MaxListLimit {
		params.Limit = MaxListLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	sort := allowedSorts[0]
	for _, allowed := range allowedSorts {
		if params.Sort == allowed {
			sort = allowed
			break
		}
	}
	params.Sort = sort

	if strings.EqualFold(params.Order, models.OrderDesc) {
		params.Order = models.OrderDesc
	} else {
		params.Order = models.OrderAsc
	}

	return params
}
