package http

import (
	"net/http"

	"github.com/incorgnihealth/api/internal/delivery/http/handler"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/delivery/ws"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	consultationHandler *handler.ConsultationHandler
	doctorHandler       *handler.DoctorHandler
	prescriptionHandler *handler.PrescriptionHandler
	orderHandler        *handler.OrderHandler
	notificationHandler *handler.NotificationHandler
	paymentHandler      *handler.PaymentHandler
	adminHandler        *handler.AdminHandler
	wsHandler           *ws.Handler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	apiRateLimiter       *middleware.RateLimiter
	authRateLimiter      *middleware.RateLimiter
	sensitiveRateLimiter *middleware.RateLimiter
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	consultationHandler *handler.ConsultationHandler,
	doctorHandler *handler.DoctorHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	orderHandler *handler.OrderHandler,
	notificationHandler *handler.NotificationHandler,
	paymentHandler *handler.PaymentHandler,
	adminHandler *handler.AdminHandler,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	apiRateLimiter *middleware.RateLimiter,
	authRateLimiter *middleware.RateLimiter,
	sensitiveRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		userHandler:         userHandler,
		consultationHandler: consultationHandler,
		doctorHandler:       doctorHandler,
		prescriptionHandler: prescriptionHandler,
		orderHandler:        orderHandler,
		notificationHandler: notificationHandler,
		paymentHandler:      paymentHandler,
		adminHandler:        adminHandler,
		wsHandler:           wsHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		apiRateLimiter:       apiRateLimiter,
		authRateLimiter:      authRateLimiter,
		sensitiveRateLimiter: sensitiveRateLimiter,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.apiRateLimiter.Handle)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, rate limited)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.authRateLimiter.Handle)
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/verify", r.authHandler.Verify).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Profile and personal history
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/me", r.userHandler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/me", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	users.HandleFunc("/me/consultations", r.userHandler.GetMyConsultations).Methods(http.MethodGet)
	users.HandleFunc("/me/orders", r.userHandler.GetMyOrders).Methods(http.MethodGet)

	// Consultation lifecycle
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.Use(r.authMiddleware.Authenticate)
	consultations.HandleFunc("", r.consultationHandler.Start).Methods(http.MethodPost)
	consultations.HandleFunc("/{id}", r.consultationHandler.Get).Methods(http.MethodGet)
	consultations.HandleFunc("/{id}/claim", r.consultationHandler.Claim).Methods(http.MethodPost)
	consultations.HandleFunc("/{id}/close", r.consultationHandler.Close).Methods(http.MethodPost)

	// Doctor workspace
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Use(middleware.RequireDoctor)
	doctors.HandleFunc("/queue", r.doctorHandler.GetQueue).Methods(http.MethodGet)
	doctors.HandleFunc("/stats", r.doctorHandler.GetStats).Methods(http.MethodGet)
	doctors.HandleFunc("/availability", r.doctorHandler.SetAvailability).Methods(http.MethodPut)
	doctors.Handle("/prescriptions",
		r.sensitiveRateLimiter.Handle(http.HandlerFunc(r.prescriptionHandler.Prescribe))).Methods(http.MethodPost)

	// Symptom triage (doctors only, tighter limit)
	triage := api.PathPrefix("/triage").Subrouter()
	triage.Use(r.authMiddleware.Authenticate)
	triage.Use(middleware.RequireDoctor)
	triage.Use(r.sensitiveRateLimiter.Handle)
	triage.HandleFunc("/analyze", r.prescriptionHandler.Analyze).Methods(http.MethodPost)

	// Pharmacy workspace
	pharmacy := api.PathPrefix("/pharmacy").Subrouter()
	pharmacy.Use(r.authMiddleware.Authenticate)
	pharmacy.Use(middleware.RequirePharmacist)
	pharmacy.HandleFunc("/orders", r.orderHandler.GetBoard).Methods(http.MethodGet)
	pharmacy.HandleFunc("/orders/mine", r.orderHandler.GetPharmacyOrders).Methods(http.MethodGet)
	pharmacy.HandleFunc("/orders/{id}/accept", r.orderHandler.Accept).Methods(http.MethodPost)
	pharmacy.HandleFunc("/orders/{id}/ready", r.orderHandler.MarkReady).Methods(http.MethodPost)

	// Rider workspace
	riders := api.PathPrefix("/riders").Subrouter()
	riders.Use(r.authMiddleware.Authenticate)
	riders.Use(middleware.RequireRider)
	riders.HandleFunc("/deliveries", r.orderHandler.GetAvailableDeliveries).Methods(http.MethodGet)
	riders.HandleFunc("/deliveries/mine", r.orderHandler.GetMyDeliveries).Methods(http.MethodGet)
	riders.HandleFunc("/deliveries/{id}/pickup", r.orderHandler.Pickup).Methods(http.MethodPost)
	riders.HandleFunc("/deliveries/{id}/deliver", r.orderHandler.Deliver).Methods(http.MethodPost)

	// Notifications
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.List).Methods(http.MethodGet)
	notifications.HandleFunc("/read-all", r.notificationHandler.MarkAllRead).Methods(http.MethodPost)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPost)

	// Wallet payments
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(r.authMiddleware.Authenticate)
	payments.Handle("",
		r.sensitiveRateLimiter.Handle(http.HandlerFunc(r.paymentHandler.Pay))).Methods(http.MethodPost)
	payments.HandleFunc("/history", r.paymentHandler.History).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/metrics", r.adminHandler.GetMetrics).Methods(http.MethodGet)
	admin.HandleFunc("/users", r.adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/consultations", r.adminHandler.ListConsultations).Methods(http.MethodGet)
	admin.HandleFunc("/orders", r.adminHandler.ListOrders).Methods(http.MethodGet)

	// Realtime chat relay; authenticates itself via query token.
	r.router.HandleFunc("/ws", r.wsHandler.Connect).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
