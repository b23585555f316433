package http

import (
	"io"
	"net/http"
	"path/filepath"

	"crewvar-backend/internal/storage"

	"github.com/gorilla/mux"
)

// UploadHandler serves the mock presigned-URL endpoints when photo storage
// runs on the local filesystem.
type UploadHandler struct {
	mockStorage *storage.MockStorageService
}

func NewUploadHandler(mockStorage *storage.MockStorageService) *UploadHandler {
	return &UploadHandler{mockStorage: mockStorage}
}

// HandleUpload handles PUT requests to mock presigned upload URLs.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.mockStorage.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Mimic an S3 PUT response
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload streams a stored photo back to the client.
func (h *UploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}

// RegisterMockStorageRoutes registers the mock storage HTTP endpoints.
func RegisterMockStorageRoutes(router *mux.Router, mockStorage *storage.MockStorageService) {
	handler := NewUploadHandler(mockStorage)
	router.HandleFunc("/api/v1/upload/{token}", handler.HandleUpload).Methods("PUT")
	router.HandleFunc("/api/v1/download/{key}", handler.HandleDownload).Methods("GET")
}
