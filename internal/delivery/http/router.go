package http

import (
	"net/http"

	"medikeep/internal/delivery/http/handler"
	"medikeep/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	connectionHandler *handler.ConnectionHandler
	qrHandler         *handler.QRHandler
	medicationHandler *handler.MedicationHandler
	storageHandler    *handler.StorageHandler
	inventoryHandler  *handler.InventoryHandler
	requestHandler    *handler.RequestHandler
	chatHandler       *handler.ChatHandler
	reminderHandler   *handler.ReminderHandler
	extractionHandler *handler.ExtractionHandler
	eventsHandler     *handler.EventsHandler
	authMiddleware    *middleware.AuthMiddleware
	profileMiddleware *middleware.ProfileMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	connectionHandler *handler.ConnectionHandler,
	qrHandler *handler.QRHandler,
	medicationHandler *handler.MedicationHandler,
	storageHandler *handler.StorageHandler,
	inventoryHandler *handler.InventoryHandler,
	requestHandler *handler.RequestHandler,
	chatHandler *handler.ChatHandler,
	reminderHandler *handler.ReminderHandler,
	extractionHandler *handler.ExtractionHandler,
	eventsHandler *handler.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
	profileMiddleware *middleware.ProfileMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		connectionHandler: connectionHandler,
		qrHandler:         qrHandler,
		medicationHandler: medicationHandler,
		storageHandler:    storageHandler,
		inventoryHandler:  inventoryHandler,
		requestHandler:    requestHandler,
		chatHandler:       chatHandler,
		reminderHandler:   reminderHandler,
		extractionHandler: extractionHandler,
		eventsHandler:     eventsHandler,
		authMiddleware:    authMiddleware,
		profileMiddleware: profileMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Profile setup is allowed before a profile exists; everything else below
	// requires one.
	onboarding := api.PathPrefix("/profiles").Subrouter()
	onboarding.Use(r.authMiddleware.Authenticate)
	onboarding.HandleFunc("", r.profileHandler.CreateProfile).Methods(http.MethodPost)
	onboarding.HandleFunc("/me", r.profileHandler.GetMyProfile).Methods(http.MethodGet)
	onboarding.HandleFunc("/me", r.profileHandler.UpdateProfile).Methods(http.MethodPut)
	onboarding.HandleFunc("/search", r.profileHandler.SearchProfiles).Methods(http.MethodGet)
	onboarding.HandleFunc("/{id}", r.profileHandler.GetProfileSummary).Methods(http.MethodGet)

	// Protected routes requiring a completed profile
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.Use(r.profileMiddleware.RequireProfile)

	// Family connections
	protected.HandleFunc("/friend-requests", r.connectionHandler.SendFriendRequest).Methods(http.MethodPost)
	protected.HandleFunc("/friend-requests", r.connectionHandler.ListIncomingRequests).Methods(http.MethodGet)
	protected.HandleFunc("/friend-requests/{id}/respond", r.connectionHandler.RespondToFriendRequest).Methods(http.MethodPost)
	protected.HandleFunc("/family", r.connectionHandler.ListFamily).Methods(http.MethodGet)
	protected.HandleFunc("/family/{id}", r.connectionHandler.RemoveFamilyMember).Methods(http.MethodDelete)

	// QR flows
	protected.HandleFunc("/qr/me", r.qrHandler.GetMyQRCode).Methods(http.MethodGet)
	protected.HandleFunc("/qr/scan", r.qrHandler.Scan).Methods(http.MethodPost)

	// Medication schedule
	protected.HandleFunc("/medications", r.medicationHandler.CreateMedication).Methods(http.MethodPost)
	protected.HandleFunc("/medications", r.medicationHandler.ListMedications).Methods(http.MethodGet)
	protected.HandleFunc("/medications/{id}", r.medicationHandler.UpdateMedication).Methods(http.MethodPut)
	protected.HandleFunc("/medications/{id}", r.medicationHandler.DeleteMedication).Methods(http.MethodDelete)

	// Medicine cabinet
	protected.HandleFunc("/storage", r.storageHandler.CreateStoredMedicine).Methods(http.MethodPost)
	protected.HandleFunc("/storage", r.storageHandler.ListStoredMedicines).Methods(http.MethodGet)
	protected.HandleFunc("/storage/{id}", r.storageHandler.UpdateStoredMedicine).Methods(http.MethodPut)
	protected.HandleFunc("/storage/{id}", r.storageHandler.DeleteStoredMedicine).Methods(http.MethodDelete)

	// Reminders and adherence
	protected.HandleFunc("/reminders/sync", r.reminderHandler.Sync).Methods(http.MethodPost)
	protected.HandleFunc("/reminders/pending", r.reminderHandler.Pending).Methods(http.MethodGet)
	protected.HandleFunc("/reminders/ack", r.reminderHandler.Ack).Methods(http.MethodPost)
	protected.HandleFunc("/reminders", r.reminderHandler.Cancel).Methods(http.MethodDelete)
	protected.HandleFunc("/adherence", r.reminderHandler.LogAdherence).Methods(http.MethodPost)
	protected.HandleFunc("/adherence", r.reminderHandler.AdherenceHistory).Methods(http.MethodGet)

	// Medication requests (customer side)
	protected.HandleFunc("/requests", r.requestHandler.SendRequest).Methods(http.MethodPost)

	// Chat
	protected.HandleFunc("/chats", r.chatHandler.CreateOrGetChat).Methods(http.MethodPost)
	protected.HandleFunc("/chats", r.chatHandler.ListChats).Methods(http.MethodGet)
	protected.HandleFunc("/chats/{id}/messages", r.chatHandler.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/chats/{id}/messages", r.chatHandler.ListMessages).Methods(http.MethodGet)
	protected.HandleFunc("/chats/{id}/read", r.chatHandler.MarkRead).Methods(http.MethodPost)

	// Document extraction
	protected.HandleFunc("/extract", r.extractionHandler.ExtractDocument).Methods(http.MethodPost)

	// Event streams
	protected.HandleFunc("/events", r.eventsHandler.StreamUserEvents).Methods(http.MethodGet)
	protected.HandleFunc("/chats/{id}/events", r.eventsHandler.StreamChatEvents).Methods(http.MethodGet)

	// Professional routes (chemist/doctor only)
	professional := api.NewRoute().Subrouter()
	professional.Use(r.authMiddleware.Authenticate)
	professional.Use(r.profileMiddleware.RequireProfile)
	professional.Use(r.profileMiddleware.RequireProfessional)

	professional.HandleFunc("/inventory", r.inventoryHandler.CreateItem).Methods(http.MethodPost)
	professional.HandleFunc("/inventory", r.inventoryHandler.ListItems).Methods(http.MethodGet)
	professional.HandleFunc("/inventory/{id}", r.inventoryHandler.UpdateItem).Methods(http.MethodPut)
	professional.HandleFunc("/inventory/{id}", r.inventoryHandler.DeleteItem).Methods(http.MethodDelete)

	professional.HandleFunc("/requests/incoming", r.requestHandler.ListRequests).Methods(http.MethodGet)
	professional.HandleFunc("/requests/{id}/decline", r.requestHandler.DeclineRequest).Methods(http.MethodPost)
	professional.HandleFunc("/requests/{id}/fulfil", r.requestHandler.FulfilRequest).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
