package http

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/approval"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/utils"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
	"github.com/goccy/go-json"
)

// decodeJSON reads the request body into v and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("decode request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// clientIP is the host part of RemoteAddr. When proxy headers are trusted,
// chi's RealIP middleware has already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// queryPtr returns a query parameter, or nil when it is absent or blank.
func queryPtr(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func queryPagination(r *http.Request) (utils.Pagination, error) {
	var p utils.Pagination
	var errs validator.ValidationErrors
	for _, field := range []struct {
		name string
		dst  *int
	}{{"page", &p.Page}, {"limit", &p.Limit}} {
		raw := r.URL.Query().Get(field.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: field.name, Message: field.name + " must be a number"})
			continue
		}
		*field.dst = n
	}
	if len(errs) > 0 {
		return p, errs
	}
	return p, nil
}

func approvalFilter(r *http.Request) (approval.Filter, error) {
	p, err := queryPagination(r)
	if err != nil {
		return approval.Filter{}, err
	}
	filter := approval.Filter{Status: queryPtr(r, "status"), Pagination: p}
	if err := filter.Validate(); err != nil {
		return approval.Filter{}, err
	}
	return filter, nil
}

// decideRequest reads the approve/reject body of /{id}/approve.
func decideRequest(w http.ResponseWriter, r *http.Request, id string) (approval.DecideRequest, bool) {
	req := approval.DecideRequest{}
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	req.ID = id
	return req, true
}
