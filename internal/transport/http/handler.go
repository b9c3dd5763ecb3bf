package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cwrk-planet/activities/internal/domain"
	httpmw "github.com/cwrk-planet/activities/internal/transport/http/middleware"
	"github.com/cwrk-planet/activities/pkg/httputil"
)

type ActivityService interface {
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	SignUp(ctx context.Context, name, email string) (*domain.RosterChange, error)
	RemoveParticipant(ctx context.Context, name, email string) (*domain.RosterChange, error)
}

type Handler struct {
	svc ActivityService
}

func NewHandler(svc ActivityService) *Handler {
	return &Handler{svc: svc}
}

// GET /activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListActivities(r.Context())
	if err != nil {
		writeError(w, r, "handler.ListActivities", err)
		return
	}

	resp := make(ActivitiesResponse, len(list))
	for _, a := range list {
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		resp[a.Name] = ActivityItem{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		}
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// POST /activities/{name}/signup?email=
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	name := httputil.PathParam(r, "name")
	email := r.URL.Query().Get("email")

	ch, err := h.svc.SignUp(r.Context(), name, email)
	if err != nil {
		writeError(w, r, "handler.SignUp", err)
		return
	}

	httputil.Message(w, fmt.Sprintf("Signed up %s for %s", ch.Email, ch.Activity.Name))
}

// DELETE /activities/{name}/participants/{email}
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	name := httputil.PathParam(r, "name")
	email := httputil.PathParam(r, "email")

	ch, err := h.svc.RemoveParticipant(r.Context(), name, email)
	if err != nil {
		writeError(w, r, "handler.RemoveParticipant", err)
		return
	}

	httputil.Message(w, fmt.Sprintf("Removed %s from %s", ch.Email, ch.Activity.Name))
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		httputil.Detail(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, domain.ErrParticipantNotFound):
		httputil.Detail(w, http.StatusNotFound, "Participant not found")
	case errors.Is(err, domain.ErrAlreadySignedUp):
		httputil.Detail(w, http.StatusBadRequest, "Student already signed up")
	case errors.Is(err, domain.ErrEmailRequired):
		httputil.Detail(w, http.StatusUnprocessableEntity, "email query parameter is required")
	default:
		httpmw.L(r.Context()).Error(op+":", slog.Any("err", err))
		httputil.Detail(w, http.StatusInternalServerError, "internal error")
	}
}
