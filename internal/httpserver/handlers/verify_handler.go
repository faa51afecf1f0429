// filepath: internal/httpserver/handlers/verify_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// VerifyRequest names a previously committed file and its expected
// attributes.
type VerifyRequest struct {
	Path       string `json:"path"`
	HashSHA256 string `json:"hash_sha256"`
	Size       int64  `json:"size"`
}

// VerifyResponse reports whether the file still matches.
type VerifyResponse struct {
	Path     string `json:"path"`
	Verified bool   `json:"verified"`
}

// VerifyDocument re-checks the integrity of a committed file against the
// hash and size recorded at upload time.
func (h *Handlers) VerifyDocument(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if req.Path == "" || req.HashSHA256 == "" {
		respondWithError(w, http.StatusBadRequest, "Fields 'path' and 'hash_sha256' are required.")
		return
	}

	verified := h.Upload.VerifyIntegrity(req.Path, req.HashSHA256, req.Size)

	h.Auditor.Log(r.Context(), "document.verify", actor(r), req.Path, map[string]interface{}{
		"verified": verified,
	})
	respondWithJSON(w, http.StatusOK, VerifyResponse{Path: req.Path, Verified: verified})
}
