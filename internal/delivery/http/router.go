package http

import (
	"net/http"

	"go-healthcare-portal/internal/delivery/http/handler"
	"go-healthcare-portal/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	pairingHandler   *handler.PairingHandler
	healthLogHandler *handler.HealthLogHandler
	messageHandler   *handler.MessageHandler
	checkupHandler   *handler.CheckupHandler
	auditLogHandler  *handler.AuditLogHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	pairingHandler *handler.PairingHandler,
	healthLogHandler *handler.HealthLogHandler,
	messageHandler *handler.MessageHandler,
	checkupHandler *handler.CheckupHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		pairingHandler:   pairingHandler,
		healthLogHandler: healthLogHandler,
		messageHandler:   messageHandler,
		checkupHandler:   checkupHandler,
		auditLogHandler:  auditLogHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/me", r.authHandler.UpdateProfile).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/pairings", r.pairingHandler.CreatePairing).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	// Pairing lookups
	pairings := api.PathPrefix("/pairings").Subrouter()
	pairings.Use(r.authMiddleware.Authenticate)
	pairings.Handle("/doctor", middleware.RequirePatient(http.HandlerFunc(r.pairingHandler.GetMyDoctor))).Methods(http.MethodGet)
	pairings.Handle("/patients", middleware.RequireDoctor(http.HandlerFunc(r.pairingHandler.GetMyPatients))).Methods(http.MethodGet)

	// Health logs
	healthLogs := api.PathPrefix("/health-logs").Subrouter()
	healthLogs.Use(r.authMiddleware.Authenticate)
	healthLogs.Handle("", middleware.RequirePatient(http.HandlerFunc(r.healthLogHandler.CreateHealthLog))).Methods(http.MethodPost)
	healthLogs.Handle("", middleware.RequirePatient(http.HandlerFunc(r.healthLogHandler.GetMyHealthLogs))).Methods(http.MethodGet)

	// Doctor view over a paired patient's logs
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Handle("/{id}/health-logs", middleware.RequireDoctor(http.HandlerFunc(r.healthLogHandler.GetPatientHealthLogs))).Methods(http.MethodGet)

	// Messages
	messages := api.PathPrefix("/messages").Subrouter()
	messages.Use(r.authMiddleware.Authenticate)
	messages.HandleFunc("", r.messageHandler.SendMessage).Methods(http.MethodPost)
	messages.HandleFunc("/stream", r.messageHandler.StreamMessages).Methods(http.MethodGet)
	messages.HandleFunc("/{userId}", r.messageHandler.GetThread).Methods(http.MethodGet)

	// Checkups
	checkups := api.PathPrefix("/checkups").Subrouter()
	checkups.Use(r.authMiddleware.Authenticate)
	checkups.Handle("", middleware.RequireDoctor(http.HandlerFunc(r.checkupHandler.CreateCheckup))).Methods(http.MethodPost)
	checkups.HandleFunc("", r.checkupHandler.GetMyCheckups).Methods(http.MethodGet)
	checkups.Handle("/{id}/status", middleware.RequireDoctor(http.HandlerFunc(r.checkupHandler.UpdateCheckupStatus))).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
