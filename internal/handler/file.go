package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/skyboxlabs/skybox/internal/repository"
	"github.com/skyboxlabs/skybox/internal/service"
)

type FileHandler struct {
	fileService *service.FileService
	maxFileSize int64
}

func NewFileHandler(fileService *service.FileService, maxFileSize int64) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxFileSize: maxFileSize,
	}
}

// Save accepts a raw request body and stores it as a new file.
// The display name comes from the "name" query parameter, or failing that
// from a Content-Disposition header on the request. Responds with the
// generated id as plain text.
func (h *FileHandler) Save(w http.ResponseWriter, r *http.Request) {
	name, ok := resolveName(r)
	if !ok {
		http.Error(w, "file name not provided", http.StatusBadRequest)
		return
	}
	if name == "" {
		http.Error(w, "file name is empty", http.StatusBadRequest)
		return
	}

	// The body is capped here; exceeding the limit fails the stream inside
	// Save and takes the normal rollback path.
	body := http.MaxBytesReader(w, r.Body, h.maxFileSize)

	file, err := h.fileService.Save(r.Context(), name, body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyFile):
			http.Error(w, "file is empty", http.StatusBadRequest)
		case errors.Is(err, service.ErrSaveFailed):
			http.Error(w, "failed to save file", http.StatusBadRequest)
		default:
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	slog.Info("file saved", "file_id", file.ID, "name", file.Name, "size", file.Size)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(file.ID))
}

// Info returns the metadata record for a file as JSON.
func (h *FileHandler) Info(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("file_id")

	file, err := h.fileService.Info(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			slog.Info("file not found", "file_id", fileID)
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to fetch file info", "error", err, "file_id", fileID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(file)
	if err != nil {
		slog.Error("failed to encode file info", "error", err, "file_id", fileID)
	}
}

// Get streams the stored bytes back with the original name as the suggested
// download filename.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("file_id")

	file, blob, err := h.fileService.Get(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			slog.Info("file not found", "file_id", fileID)
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to fetch file", "error", err, "file_id", fileID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))

	_, err = io.Copy(w, blob)
	if err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("failed to stream file", "error", err, "file_id", fileID)
	}
}

// resolveName picks the display name for an upload: the "name" query
// parameter wins, otherwise the filename from a Content-Disposition request
// header. The bool reports whether any name was supplied at all.
func resolveName(r *http.Request) (string, bool) {
	if r.URL.Query().Has("name") {
		return r.URL.Query().Get("name"), true
	}

	cd := r.Header.Get("Content-Disposition")
	if cd == "" {
		return "", false
	}

	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return "", false
	}

	filename, ok := params["filename"]
	return filename, ok
}
