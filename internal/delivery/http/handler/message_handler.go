package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/service"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
	"go-healthcare-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	notifier       service.Notifier
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewMessageHandler(
	messageUsecase usecase.MessageUsecase,
	notifier service.Notifier,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		notifier:       notifier,
		validator:      validator,
		log:            log,
	}
}

// SendMessage creates a message from the calling principal
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.Send(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyMessage), errors.Is(err, usecase.ErrSelfMessage):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrReceiverNotFound):
			response.NotFound(w, "Receiver not found")
		case errors.Is(err, usecase.ErrNotPaired), errors.Is(err, authz.ErrForbidden):
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

// GetThread returns the conversation with the user in the path
func (h *MessageHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	otherID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user id", nil)
		return
	}

	thread, err := h.messageUsecase.Thread(r.Context(), otherID)
	if err != nil {
		response.InternalServerError(w, "Failed to get thread")
		return
	}

	response.Success(w, http.StatusOK, "Thread retrieved successfully", thread)
}

// StreamMessages relays message-insert notifications for the calling
// principal over server-sent events. Events are triggers to refetch or merge;
// duplicates are harmless.
func (h *MessageHandler) StreamMessages(w http.ResponseWriter, r *http.Request) {
	principal, ok := authz.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	events, cancel, err := h.notifier.Subscribe(r.Context(), principal.ID)
	if err != nil {
		h.log.Warnf("Failed to subscribe %s to message events: %+v", principal.ID, err)
		response.InternalServerError(w, "Failed to subscribe")
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Warnf("Failed to encode message event: %+v", err)
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
