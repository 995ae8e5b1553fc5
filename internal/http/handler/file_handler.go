package handler

import (
	"fmt"
	"net/http"

	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 8 << 20

type FileHandler struct {
	files *service.FileService
}

func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// Upload accepts a multipart form with one or more "files" parts.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, fmt.Errorf("%w: malformed multipart form", service.ErrValidation))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	var uploads []service.Upload
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			writeError(w, fmt.Errorf("%w: unreadable file %q", service.ErrValidation, header.Filename))
			return
		}
		defer part.Close()
		uploads = append(uploads, service.Upload{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Content:     part,
		})
	}

	actor := middleware.CurrentUser(r.Context())
	records, err := h.files.UploadImages(r.Context(), uploads, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, records)
}

type claimRequest struct {
	FileIDs []uint `json:"fileIds"`
}

// Claim marks uploaded files as referenced so cleanup leaves them alone.
func (h *FileHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	actor := middleware.CurrentUser(r.Context())
	if err := h.files.Claim(r.Context(), req.FileIDs, actor.ID); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// URL returns a short-lived download link for a stored file.
func (h *FileHandler) URL(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	url, err := h.files.URL(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"url": url})
}
