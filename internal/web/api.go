package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/evcraddock/rent-ledger/internal/ledger"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func apiNotFound(w http.ResponseWriter) {
	apiError(w, "Not found", http.StatusNotFound)
}

// apiFail maps a ledger error to a status code. Unexpected errors are logged.
func apiFail(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *ledger.ValidationError
	var missing *ledger.NotFoundError
	switch {
	case errors.As(err, &invalid):
		apiError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &missing):
		apiError(w, err.Error(), http.StatusNotFound)
	default:
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("api request failed")
		apiError(w, err.Error(), http.StatusInternalServerError)
	}
}

// decodeBody decodes the JSON request body into v, writing a 400 response
// and returning false when it is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// apiSegments splits an /api path into its non-empty segments.
func apiSegments(path string) []string {
	path = strings.TrimPrefix(path, "/api")
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// handleAPI is the catch-all /api router.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		apiJSON(w, struct{}{}, http.StatusOK)
		return
	}

	parts := apiSegments(r.URL.Path)
	if len(parts) == 0 {
		if r.Method == http.MethodGet {
			apiJSON(w, map[string]string{"message": "API is running"}, http.StatusOK)
			return
		}
		apiNotFound(w)
		return
	}

	rest := parts[1:]
	switch parts[0] {
	case "properties":
		s.routeProperties(w, r, rest)
	case "tenants":
		s.routeTenants(w, r, rest)
	case "payments":
		s.routePayments(w, r, rest)
	case "expenses":
		s.routeExpenses(w, r, rest)
	case "settings":
		s.routeSettings(w, r, rest)
	case "reconcile":
		if len(rest) == 0 && r.Method == http.MethodPost {
			s.apiReconcileAll(w, r)
			return
		}
		apiNotFound(w)
	case "dashboard":
		if len(rest) == 0 && r.Method == http.MethodGet {
			s.apiDashboard(w, r)
			return
		}
		apiNotFound(w)
	case "leases":
		if len(rest) == 0 && r.Method == http.MethodGet {
			s.apiLeases(w, r)
			return
		}
		apiNotFound(w)
	case "reports":
		s.routeReports(w, r, rest)
	default:
		apiNotFound(w)
	}
}

var apiResources = map[string]bool{
	"properties": true,
	"tenants":    true,
	"payments":   true,
	"expenses":   true,
	"settings":   true,
	"reconcile":  true,
	"dashboard":  true,
	"leases":     true,
}

var reportNames = map[string]bool{
	"monthly":      true,
	"expenses.png": true,
}

// routeLabel maps a request to a metrics label with ids replaced by {id}.
func routeLabel(r *http.Request) string {
	path := r.URL.Path
	if path == "/health" || path == "/metrics" {
		return path
	}
	if path != "/api" && !strings.HasPrefix(path, "/api/") {
		return "other"
	}

	parts := apiSegments(path)
	switch {
	case len(parts) == 0:
		return "/api"
	case parts[0] == "reports":
		if len(parts) == 2 && reportNames[parts[1]] {
			return "/api/reports/" + parts[1]
		}
		return "other"
	case !apiResources[parts[0]] || len(parts) > 3:
		return "other"
	}

	label := "/api/" + parts[0]
	if len(parts) > 1 {
		label += "/{id}"
	}
	if len(parts) > 2 {
		label += "/" + parts[2]
	}
	return label
}

// yearParam reads ?year=, defaulting to the current year.
func (s *Server) yearParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return s.now().Year(), nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1 || year > 9999 {
		return 0, &ledger.ValidationError{Field: "year", Message: "must be a four-digit year"}
	}
	return year, nil
}
