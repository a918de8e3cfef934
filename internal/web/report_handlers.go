package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/evcraddock/rent-ledger/internal/report"
)

func (s *Server) apiDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	props, err := s.ledger.ListProperties(ctx)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	tenants, err := s.ledger.ListTenants(ctx)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	expenses, err := s.ledger.ListExpenses(ctx)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	st, err := s.ledger.GetSettings(ctx)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, report.Dashboard(props, tenants, expenses, st.Currency, s.now()), http.StatusOK)
}

func (s *Server) apiLeases(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.ledger.ListTenants(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, report.Leases(tenants, s.now()), http.StatusOK)
}

// routeReports routes /api/reports/{name} requests.
func (s *Server) routeReports(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) != 1 || r.Method != http.MethodGet {
		apiNotFound(w)
		return
	}
	switch parts[0] {
	case "monthly":
		s.apiMonthlyReport(w, r)
	case "expenses.png":
		s.apiExpenseChart(w, r)
	default:
		apiNotFound(w)
	}
}

func (s *Server) apiMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := s.yearParam(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	payments, err := s.ledger.ListPayments(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}

	apiJSON(w, report.Monthly(year, payments, expenses), http.StatusOK)
}

func (s *Server) apiExpenseChart(w http.ResponseWriter, r *http.Request) {
	year, err := s.yearParam(r)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}

	png, err := report.ExpenseChart(year, expenses)
	if errors.Is(err, report.ErrNoExpenses) {
		apiError(w, "no expenses for "+strconv.Itoa(year), http.StatusNotFound)
		return
	}
	if err != nil {
		apiFail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Msg("writing chart")
	}
}
