package api

import (
	"net/http"

	"github.com/aselbek/carelink/internal/reports"
	"github.com/aselbek/carelink/internal/store"
	"github.com/gorilla/mux"
)

func SetupRoutes(version, buildTime string, s *store.Store, r *reports.Reports) *mux.Router {
	router := mux.NewRouter()

	// Middleware chain
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)
	router.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	recordsHandler := NewRecordsHandler(s)
	reportsHandler := NewReportsHandler(r)

	// System endpoints
	router.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	router.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Analytic query endpoints; registered before the dynamic table routes
	// so "queries" is never taken for a table name.
	q := router.PathPrefix("/queries").Subrouter()
	q.HandleFunc("/accepted-appointments", reportsHandler.AcceptedAppointments).Methods("GET")
	q.HandleFunc("/jobs", reportsHandler.JobsRequiring).Methods("GET")
	q.HandleFunc("/work-hours", reportsHandler.WorkHours).Methods("GET")
	q.HandleFunc("/members-seeking", reportsHandler.MembersSeeking).Methods("GET")
	q.HandleFunc("/applications-per-job", reportsHandler.ApplicationsPerJob).Methods("GET")
	q.HandleFunc("/accepted-hours", reportsHandler.AcceptedHours).Methods("GET")
	q.HandleFunc("/average-pay", reportsHandler.AveragePay).Methods("GET")
	q.HandleFunc("/above-average-pay", reportsHandler.AboveAveragePay).Methods("GET")
	q.HandleFunc("/total-cost", reportsHandler.TotalCost).Methods("GET")
	q.HandleFunc("/job-applications", reportsHandler.JobApplicationsView).Methods("GET")

	// Dynamic table CRUD
	router.HandleFunc("/{table}", recordsHandler.Create).Methods("POST")
	router.HandleFunc("/{table}", recordsHandler.ReadAll).Methods("GET")
	router.HandleFunc("/{table}/{id}", recordsHandler.Update).Methods("PUT")
	router.HandleFunc("/{table}/{id}", recordsHandler.Delete).Methods("DELETE")

	// mux only runs middleware on matched routes, so preflight requests
	// need a route of their own; the CORS middleware answers them before
	// this handler runs.
	preflight := func(w http.ResponseWriter, r *http.Request) {}
	router.HandleFunc("/{table}", preflight).Methods("OPTIONS")
	router.HandleFunc("/{table}/{id}", preflight).Methods("OPTIONS")

	return router
}
