package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pcparts/catalog/internal/catalog"
	"github.com/pcparts/catalog/internal/model"
)

// Paging holds the limits applied to /pageable requests.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// parsePageRequest reads offset, limit and sort ("field[,asc|desc]"). Limits above
// MaxLimit are clamped; the sort field itself is checked by the service.
func (p Paging) parsePageRequest(q url.Values) (catalog.PageRequest, error) {
	req := catalog.PageRequest{Limit: p.DefaultLimit}

	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, model.NewInvalidParameterError("offset")
		}
		req.Offset = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return req, model.NewInvalidParameterError("limit")
		}
		req.Limit = n
	}
	if p.MaxLimit > 0 && req.Limit > p.MaxLimit {
		req.Limit = p.MaxLimit
	}

	if raw := strings.TrimSpace(q.Get("sort")); raw != "" {
		field, dir, _ := strings.Cut(raw, ",")
		req.Sort = strings.TrimSpace(field)
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			req.Desc = true
		default:
			return req, model.NewInvalidParameterError("sort")
		}
		if req.Sort == "" {
			return req, model.NewInvalidParameterError("sort")
		}
	}
	return req, nil
}
