package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"sso-server/internal/middleware"
	"sso-server/internal/organization"
	"sso-server/internal/shared/errors"
	"sso-server/internal/shared/response"
	"sso-server/internal/user"

	"github.com/google/uuid"
)

type userReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type membershipLister interface {
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]organization.Membership, error)
}

type MeResponse struct {
	*user.User
	Organizations []organization.Membership `json:"organizations"`
}

type MeHandler struct {
	users userReader
	orgs  membershipLister
}

func NewMeHandler(users userReader, orgs membershipLister) *MeHandler {
	return &MeHandler{users: users, orgs: orgs}
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "me")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no user claims found in context"))
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Error(w, r, logger, errors.Unauthorized("invalid token subject"))
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	memberships, err := h.orgs.ListMemberships(r.Context(), userID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if memberships == nil {
		memberships = []organization.Membership{}
	}

	response.Success(w, http.StatusOK, MeResponse{User: u, Organizations: memberships})
}
