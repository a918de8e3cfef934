package web

import (
	"net/http"

	"github.com/evcraddock/rent-ledger/internal/ledger"
)

func apiDeleted(w http.ResponseWriter) {
	apiJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

// routeProperties routes /api/properties requests.
func (s *Server) routeProperties(w http.ResponseWriter, r *http.Request, parts []string) {
	switch len(parts) {
	case 0:
		switch r.Method {
		case http.MethodGet:
			s.apiListProperties(w, r)
		case http.MethodPost:
			s.apiCreateProperty(w, r)
		default:
			apiNotFound(w)
		}
	case 1:
		id := parts[0]
		switch r.Method {
		case http.MethodGet:
			s.apiGetProperty(w, r, id)
		case http.MethodPut:
			s.apiUpdateProperty(w, r, id)
		case http.MethodDelete:
			s.apiDeleteProperty(w, r, id)
		default:
			apiNotFound(w)
		}
	case 2:
		switch {
		case parts[1] == "reconcile" && r.Method == http.MethodPost:
			s.apiReconcileProperty(w, r, parts[0])
		case parts[1] == "tenants" && r.Method == http.MethodGet:
			s.apiListPropertyTenants(w, r, parts[0])
		default:
			apiNotFound(w)
		}
	default:
		apiNotFound(w)
	}
}

func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.ledger.ListProperties(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, props, http.StatusOK)
}

func (s *Server) apiListPropertyTenants(w http.ResponseWriter, r *http.Request, id string) {
	tenants, err := s.ledger.ListPropertyTenants(r.Context(), id)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, tenants, http.StatusOK)
}

func (s *Server) apiGetProperty(w http.ResponseWriter, r *http.Request, id string) {
	p, err := s.ledger.GetProperty(r.Context(), id)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiCreateProperty(w http.ResponseWriter, r *http.Request) {
	var in ledger.PropertyInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := s.ledger.CreateProperty(r.Context(), in)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, p, http.StatusCreated)
}

func (s *Server) apiUpdateProperty(w http.ResponseWriter, r *http.Request, id string) {
	var in ledger.PropertyInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := s.ledger.UpdateProperty(r.Context(), id, in)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiDeleteProperty(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.ledger.DeleteProperty(r.Context(), id); err != nil {
		apiFail(w, r, err)
		return
	}
	apiDeleted(w)
}

func (s *Server) apiReconcileProperty(w http.ResponseWriter, r *http.Request, id string) {
	p, err := s.ledger.ReconcilePropertyOccupancy(r.Context(), id)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiReconcileAll(w http.ResponseWriter, r *http.Request) {
	n, err := s.ledger.ReconcileAll(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, map[string]int{"updated": n}, http.StatusOK)
}

// routeTenants routes /api/tenants requests.
func (s *Server) routeTenants(w http.ResponseWriter, r *http.Request, parts []string) {
	switch len(parts) {
	case 0:
		switch r.Method {
		case http.MethodGet:
			s.apiListTenants(w, r)
		case http.MethodPost:
			s.apiCreateTenant(w, r)
		default:
			apiNotFound(w)
		}
	case 1:
		id := parts[0]
		switch r.Method {
		case http.MethodGet:
			s.apiGetTenant(w, r, id)
		case http.MethodPut:
			s.apiUpdateTenant(w, r, id)
		case http.MethodDelete:
			s.apiDeleteTenant(w, r, id)
		default:
			apiNotFound(w)
		}
	default:
		apiNotFound(w)
	}
}

func (s *Server) apiListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.ledger.ListTenants(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, tenants, http.StatusOK)
}

func (s *Server) apiGetTenant(w http.ResponseWriter, r *http.Request, id string) {
	t, err := s.ledger.GetTenant(r.Context(), id)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, t, http.StatusOK)
}

func (s *Server) apiCreateTenant(w http.ResponseWriter, r *http.Request) {
	var in ledger.TenantInput
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := s.ledger.CreateTenant(r.Context(), in)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, t, http.StatusCreated)
}

func (s *Server) apiUpdateTenant(w http.ResponseWriter, r *http.Request, id string) {
	var in ledger.TenantInput
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := s.ledger.UpdateTenant(r.Context(), id, in)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, t, http.StatusOK)
}

func (s *Server) apiDeleteTenant(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.ledger.DeleteTenant(r.Context(), id); err != nil {
		apiFail(w, r, err)
		return
	}
	apiDeleted(w)
}

// routePayments routes /api/payments requests. Payments cannot be changed
// once recorded.
func (s *Server) routePayments(w http.ResponseWriter, r *http.Request, parts []string) {
	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		s.apiListPayments(w, r)
	case len(parts) == 0 && r.Method == http.MethodPost:
		s.apiCreatePayment(w, r)
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.apiGetPayment(w, r, parts[0])
	default:
		apiNotFound(w)
	}
}

func (s *Server) apiListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.ledger.ListPayments(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, payments, http.StatusOK)
}

func (s *Server) apiGetPayment(w http.ResponseWriter, r *http.Request, id string) {
	p, err := s.ledger.GetPayment(r.Context(), id)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiCreatePayment(w http.ResponseWriter, r *http.Request) {
	var in ledger.PaymentInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := s.ledger.CreatePayment(r.Context(), in)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, p, http.StatusCreated)
}

// routeExpenses routes /api/expenses requests.
func (s *Server) routeExpenses(w http.ResponseWriter, r *http.Request, parts []string) {
	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		s.apiListExpenses(w, r)
	case len(parts) == 0 && r.Method == http.MethodPost:
		s.apiCreateExpense(w, r)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		s.apiDeleteExpense(w, r, parts[0])
	default:
		apiNotFound(w)
	}
}

func (s *Server) apiListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, expenses, http.StatusOK)
}

func (s *Server) apiCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in ledger.ExpenseInput
	if !decodeBody(w, r, &in) {
		return
	}
	e, err := s.ledger.CreateExpense(r.Context(), in)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, e, http.StatusCreated)
}

func (s *Server) apiDeleteExpense(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.ledger.DeleteExpense(r.Context(), id); err != nil {
		apiFail(w, r, err)
		return
	}
	apiDeleted(w)
}

// routeSettings routes /api/settings requests.
func (s *Server) routeSettings(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) != 0 {
		apiNotFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		st, err := s.ledger.GetSettings(r.Context())
		if err != nil {
			apiFail(w, r, err)
			return
		}
		apiJSON(w, st, http.StatusOK)
	case http.MethodPut:
		var in ledger.SettingsInput
		if !decodeBody(w, r, &in) {
			return
		}
		st, err := s.ledger.UpdateSettings(r.Context(), in)
		if err != nil {
			apiFail(w, r, err)
			return
		}
		apiJSON(w, st, http.StatusOK)
	default:
		apiNotFound(w)
	}
}
