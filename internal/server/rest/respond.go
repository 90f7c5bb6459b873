package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huseyinozgul/docvault/internal/common"
)

// Detail messages returned to clients.
const (
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidToken       = "Invalid or expired token"
	msgUserNotFound       = "User not found"
	msgEmailTaken         = "Email already registered"
	msgBadCredentials     = "Invalid email or password"
	msgParentNotFound     = "Parent folder not found"
	msgFolderNotFound     = "Folder not found"
	msgFileNotFound       = "File not found"
	msgTargetNotFound     = "Target folder not found"
	msgHasSubfolders      = "Folder is not empty. Delete subfolders first."
	msgHasFiles           = "Folder is not empty. Delete files first."
	msgInvalidContent     = "Invalid base64 content"
	msgCorruptContent     = "Failed to decode file content"
	msgNoUpdateFields     = "At least one field (name or parent_folder_id) must be provided"
	msgInternal           = "Internal server error"
	msgBodyTooLarge       = "Request body too large"
	statusHealthy         = "healthy"
	statusUnhealthy       = "unhealthy"
	wwwAuthenticateBearer = "Bearer"
)

type errorResponse struct {
	Detail any `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeError maps a service error to a status and detail message. notFound
// is the message for a plain ownership miss on the route's own resource.
// Anything unrecognised is logged and reported as a bare 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrorParentFolderNotFound):
		writeDetail(w, http.StatusNotFound, msgParentNotFound)
	case errors.Is(err, common.ErrorTargetFolderNotFound):
		writeDetail(w, http.StatusNotFound, msgTargetNotFound)
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusBadRequest, msgEmailTaken)
	case errors.Is(err, common.ErrorUnauthorized):
		writeDetail(w, http.StatusUnauthorized, msgBadCredentials)
	case errors.Is(err, common.ErrorFolderHasSubfolders):
		writeDetail(w, http.StatusBadRequest, msgHasSubfolders)
	case errors.Is(err, common.ErrorFolderHasFiles):
		writeDetail(w, http.StatusBadRequest, msgHasFiles)
	case errors.Is(err, common.ErrorInvalidContent):
		writeDetail(w, http.StatusBadRequest, msgInvalidContent)
	case errors.Is(err, common.ErrorNoUpdateFields):
		writeDetail(w, http.StatusBadRequest, msgNoUpdateFields)
	case errors.Is(err, common.ErrorCorruptContent):
		writeDetail(w, http.StatusInternalServerError, msgCorruptContent)
	default:
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
	}
}
