package httpapi

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/attachment"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/entity"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/port/storage"
	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

// ListingHandler serves one listing kind. Create and update accept either a
// plain JSON body or multipart form data with the JSON under the "data" field
// and image files under "images".
type ListingHandler struct {
	uc     *usecase.ListingUsecase
	store  storage.FileStore
	files  *attachment.Lifecycle
	logger *zap.Logger
}

func NewListingHandler(uc *usecase.ListingUsecase, store storage.FileStore, files *attachment.Lifecycle, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{uc: uc, store: store, files: files, logger: logger}
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.uc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]string)
	for param := range h.uc.Variant().Search {
		params[param] = r.URL.Query().Get(param)
	}
	listings, err := h.uc.Search(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	l, err := h.uc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, uploads, _, err := h.readRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	created, err := h.uc.Create(r.Context(), UserID(r.Context()), body, uploads)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, uploads, replace, err := h.readRequest(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	updated, err := h.uc.Update(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()), body, uploads, replace)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), chi.URLParam(r, "id"), UserID(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "deleted")
}

func (h *ListingHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.uc.ListImages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *ListingHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "image index must be a number")
		return
	}
	images, err := h.uc.DeleteImageAt(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()), index)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// readRequest extracts the JSON payload, stored uploads and the replace flag.
// Multipart requests carry JSON under "data" and files under "images"; files
// are written to storage here, before the usecase runs, so a later failure
// goes through its compensation path.
func (h *ListingHandler) readRequest(r *http.Request) ([]byte, []attachment.UploadedFile, bool, error) {
	replace, _ := strconv.ParseBool(r.URL.Query().Get("replace_images"))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
		if err != nil {
			return nil, nil, false, &usecase.ValidationError{Reason: "failed to read request body"}
		}
		return body, nil, replace, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, false, &usecase.ValidationError{Reason: "invalid multipart form"}
	}
	if v := r.FormValue("replace_images"); v != "" {
		replace, _ = strconv.ParseBool(v)
	}
	body := []byte(r.FormValue("data"))

	files := r.MultipartForm.File["images"]
	if len(files) > entity.MaxListingImages {
		return nil, nil, false, &usecase.ValidationError{
			Reason: "a maximum of " + strconv.Itoa(entity.MaxListingImages) + " images may be uploaded",
		}
	}

	// A failure on any file discards the ones already stored; otherwise the
	// request fails with orphaned files no record will ever reference.
	uploads := make([]attachment.UploadedFile, 0, len(files))
	fail := func(reason string) ([]byte, []attachment.UploadedFile, bool, error) {
		h.files.DeleteFiles(r.Context(), h.files.NormalizeUploaded(uploads))
		return nil, nil, false, &usecase.ValidationError{Reason: reason}
	}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return fail("failed to read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return fail("failed to read uploaded file")
		}
		path, err := h.store.Save(r.Context(), h.uc.Variant().UploadDir, fh.Filename, data)
		if err != nil {
			h.logger.Error("Failed to store uploaded file", zap.String("name", fh.Filename), zap.Error(err))
			return fail("failed to store uploaded file")
		}
		uploads = append(uploads, attachment.UploadedFile{
			OriginalName: fh.Filename,
			StoredPath:   path,
			MimeType:     fh.Header.Get("Content-Type"),
		})
	}
	return body, uploads, replace, nil
}
