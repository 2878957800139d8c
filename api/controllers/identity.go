package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/spequip/backend/api/middleware"
	"github.com/spequip/backend/pkg/enums"
	pkgerrors "github.com/spequip/backend/pkg/errors"
)

// requesterID pulls the authenticated user id out of the request context.
func requesterID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context")
	}
	return id, nil
}

// requesterRole pulls the authenticated role out of the request context.
func requesterRole(r *http.Request) enums.UserRole {
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return enums.UserRoleCustomer
	}
	return role
}
