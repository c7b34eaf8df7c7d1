package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers. Authentication happens at the gateway; these headers
// carry the already-authenticated caller into the engine.
const (
	headerRole      = "X-Role"
	headerAccountID = "X-Account-Id"
)

type callerIdentity struct {
	accountID kernel.UUID
	role      account.Role
}

// callerFrom extracts the authenticated caller from the identity headers.
// Replies 401 itself when either header is missing or malformed; the
// returned error is non-nil in that case and the handler just propagates it
// (echo skips its own error handling once the response is committed).
func callerFrom(ctx echo.Context) (callerIdentity, error) {
	role, err := account.RoleFromString(ctx.Request().Header.Get(headerRole))
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing or unknown " + headerRole + " header",
		})
		return callerIdentity{}, err
	}

	accountID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerAccountID))
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid " + headerAccountID + " header",
		})
		return callerIdentity{}, err
	}

	return callerIdentity{accountID: accountID, role: role}, nil
}

// lastPathSegment returns the final segment of the matched route, used by
// the shared transition handler to recover the requested action.
func lastPathSegment(ctx echo.Context) string {
	path := ctx.Path()
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// queryUUIDs parses a comma-separated list of UUIDs from a query parameter.
func queryUUIDs(ctx echo.Context, name string) ([]kernel.UUID, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]kernel.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := kernel.UUIDFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
