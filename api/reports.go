package api

import (
	"net/http"

	"github.com/aselbek/carelink/internal/reports"
)

// ReportsHandler exposes the fixed analytic queries. Parameterized routes
// read their substrings from query parameters; a missing parameter matches
// everything, same as an empty substring.
type ReportsHandler struct {
	reports *reports.Reports
}

func NewReportsHandler(r *reports.Reports) *ReportsHandler {
	return &ReportsHandler{reports: r}
}

func (h *ReportsHandler) AcceptedAppointments(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.reports.AcceptedAppointmentPairs(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if pairs == nil {
		pairs = []reports.NamePair{}
	}
	writeJSON(w, pairs, http.StatusOK)
}

func (h *ReportsHandler) JobsRequiring(w http.ResponseWriter, r *http.Request) {
	ids, err := h.reports.JobsRequiring(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	writeJSON(w, ids, http.StatusOK)
}

func (h *ReportsHandler) WorkHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.reports.WorkHoursForCaregivingType(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if hours == nil {
		hours = []float64{}
	}
	writeJSON(w, hours, http.StatusOK)
}

func (h *ReportsHandler) MembersSeeking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	names, err := h.reports.MembersSeeking(r.Context(), q.Get("type"), q.Get("town"), q.Get("rules"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if names == nil {
		names = []reports.Name{}
	}
	writeJSON(w, names, http.StatusOK)
}

func (h *ReportsHandler) ApplicationsPerJob(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reports.ApplicationsPerJob(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if counts == nil {
		counts = []reports.JobApplicantCount{}
	}
	writeJSON(w, counts, http.StatusOK)
}

func (h *ReportsHandler) AcceptedHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.reports.AcceptedHoursPerCaregiver(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if hours == nil {
		hours = []reports.CaregiverHours{}
	}
	writeJSON(w, hours, http.StatusOK)
}

type averagePayResponse struct {
	Average float64 `json:"average"`
	Defined bool    `json:"defined"`
}

func (h *ReportsHandler) AveragePay(w http.ResponseWriter, r *http.Request) {
	avg, ok, err := h.reports.AverageAcceptedPay(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, averagePayResponse{Average: avg, Defined: ok}, http.StatusOK)
}

func (h *ReportsHandler) AboveAveragePay(w http.ResponseWriter, r *http.Request) {
	pay, err := h.reports.AboveAveragePay(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if pay == nil {
		pay = []reports.CaregiverPay{}
	}
	writeJSON(w, pay, http.StatusOK)
}

func (h *ReportsHandler) TotalCost(w http.ResponseWriter, r *http.Request) {
	mode := reports.CastNone
	if r.URL.Query().Get("cast") == "integer" {
		mode = reports.CastInteger
	}
	pay, err := h.reports.TotalCostPerCaregiver(r.Context(), mode)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if pay == nil {
		pay = []reports.CaregiverPay{}
	}
	writeJSON(w, pay, http.StatusOK)
}

func (h *ReportsHandler) JobApplicationsView(w http.ResponseWriter, r *http.Request) {
	apps, err := h.reports.JobApplicationsView(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if apps == nil {
		apps = []reports.JobApplicant{}
	}
	writeJSON(w, apps, http.StatusOK)
}
