// filepath: internal/httpserver/handlers/upload_handler.go
package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"docvault/internal/logging"
	"docvault/internal/models"
	"docvault/internal/services"
	"docvault/internal/storage"
)

// multipartOverhead is headroom for form boundaries and headers on top of
// the configured payload limit.
const multipartOverhead = 1 << 20

// UploadDocument accepts a single file as multipart/form-data (part name
// "file") and runs it through the ingestion pipeline. Returns 201 with the
// outcome on commit, 422 with the outcome when the file is rejected.
func (h *Handlers) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSizeBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		logging.Log.Warnf("Failed to read multipart file part: %v", err)
		respondWithError(w, http.StatusBadRequest, "Missing or unreadable 'file' part in multipart form.")
		return
	}
	defer file.Close()

	outcome, err := h.Upload.UploadFile(file, uploadOptions(header))
	if err != nil {
		respondWithUploadError(w, err)
		return
	}

	if !outcome.Committed {
		respondWithJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}

	h.Auditor.Log(r.Context(), "document.upload", actor(r), outcome.FinalPath, map[string]interface{}{
		"original_name": header.Filename,
		"size":          outcome.Size,
		"hash_sha256":   outcome.HashSHA256,
	})
	respondWithJSON(w, http.StatusCreated, outcome)
}

// UploadDocumentBatch accepts multiple files under the part name "files"
// and commits them all-or-nothing. A failed batch returns 422 and every
// previously committed file has already been rolled back.
func (h *Handlers) UploadDocumentBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSizeBytes*8+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logging.Log.Warnf("Failed to parse multipart form: %v", err)
		respondWithError(w, http.StatusBadRequest, "Failed to parse multipart form.")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondWithError(w, http.StatusBadRequest, "No 'files' parts in multipart form.")
		return
	}

	var batch []services.BatchFile
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Could not open uploaded file part.")
			return
		}
		defer part.Close()
		batch = append(batch, services.BatchFile{
			Content: part,
			Options: uploadOptions(header),
		})
	}

	outcome := h.Upload.UploadBatch(batch)
	if !outcome.Success {
		respondWithJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}

	for _, res := range outcome.Outcomes {
		h.Auditor.Log(r.Context(), "document.upload", actor(r), res.FinalPath, map[string]interface{}{
			"size":        res.Size,
			"hash_sha256": res.HashSHA256,
			"batch_size":  len(outcome.Outcomes),
		})
	}
	respondWithJSON(w, http.StatusCreated, outcome)
}

func uploadOptions(header *multipart.FileHeader) models.UploadOptions {
	return models.UploadOptions{
		OriginalName:     header.Filename,
		DeclaredMimeType: header.Header.Get("Content-Type"),
	}
}

// respondWithUploadError maps typed ingestion errors onto HTTP statuses.
func respondWithUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrSizeExceeded):
		respondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, storage.ErrPathTraversal):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrCollisionUnresolved):
		// A fresh name will almost certainly not collide again.
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		logging.Log.Errorf("Upload failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Upload failed.")
	}
}
