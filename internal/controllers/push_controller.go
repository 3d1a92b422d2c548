package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"brickdeals/internal/models"
	"brickdeals/internal/notify"
	"brickdeals/internal/providers"
	"brickdeals/internal/services"
	"brickdeals/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PushController owns the subscriber-facing endpoints: registration,
// preference updates, unregistration and operator test pushes.
type PushController struct {
	conf        *structures.Config
	logger      providers.Logger
	subscribers services.SubscriberServiceInterface
	notifier    notify.NotifierInterface
}

func NewPushController(conf *structures.Config, logger providers.Logger, subscribers services.SubscriberServiceInterface, notifier notify.NotifierInterface) *PushController {
	return &PushController{
		conf:        conf,
		logger:      logger,
		subscribers: subscribers,
		notifier:    notifier,
	}
}

type registerRequest struct {
	Token       string                `json:"token"`
	Platform    models.Platform       `json:"platform"`
	Preferences *services.Preferences `json:"preferences"`
}

func (pc *PushController) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	err := pc.subscribers.Register(r.Context(), payload.Token, payload.Platform, payload.Preferences)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "registered"})
}

type updateRequest struct {
	Token       string                `json:"token"`
	Preferences *services.Preferences `json:"preferences"`
}

func (pc *PushController) UpdateNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	var payload updateRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	err := pc.subscribers.UpdatePreferences(r.Context(), payload.Token, payload.Preferences)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "preferences updated"})
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (pc *PushController) UnregisterPushToken(w http.ResponseWriter, r *http.Request) {
	var payload tokenRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	err := pc.subscribers.Unregister(r.Context(), payload.Token)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "unregistered"})
}

// SendTestNotification is admin-gated in production. With no admin key
// configured it is open, a development convenience flagged at startup.
func (pc *PushController) SendTestNotification(w http.ResponseWriter, r *http.Request) {
	if !providers.AdminAuthorized(pc.conf, r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload tokenRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	sub, err := pc.subscribers.Get(r.Context(), payload.Token)
	if err != nil {
		pc.fail(w, r, err)
		return
	}
	if err := pc.notifier.SendTest(r.Context(), sub); err != nil {
		pc.logger.Errorf(providers.TypePush, "Test push failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "test notification sent"})
}

// fail maps service errors to generic client responses. Internal detail
// stays in the logs, never in the payload.
func (pc *PushController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrInvalidPlatform):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	default:
		pc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s failed: %s", r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}
