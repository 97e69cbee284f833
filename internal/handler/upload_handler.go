package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Chamas111/booking-airbnb/internal/service"
	"github.com/dustin/go-humanize"
)

const (
	photosField = "photos"
	// multipart parts above this size spill to temp files
	multipartMemory = 32 << 20
)

type UploadByLinkRequest struct {
	Link string `json:"link" validate:"required,max=2048"`
}

func (h *Handlers) UploadByLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UploadByLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validateBody(w, req) {
		return
	}

	ref, err := h.PhotoService.AddByLink(r.Context(), req.Link)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, ref, http.StatusOK)
}

// Upload stores every file of the "photos" field and answers their references
// in the order they were sent.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.Upload.MaxRequestSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("Request too large (max %s)",
				humanize.IBytes(uint64(h.Cfg.Upload.MaxRequestSize))), http.StatusRequestEntityTooLarge)
		} else {
			WriteError(w, "Expected a multipart form", http.StatusBadRequest)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[photosField]
	if len(headers) == 0 {
		WriteError(w, "No photos in request", http.StatusUnprocessableEntity)
		return
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFile(fh))
	}

	refs, err := h.PhotoService.AddByUpload(r.Context(), files)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, refs, http.StatusOK)
}

func uploadFile(fh *multipart.FileHeader) service.UploadFile {
	return service.UploadFile{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
