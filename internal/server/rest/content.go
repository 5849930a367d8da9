package rest

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/services"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/go-chi/chi/v5"
)

// imageField is the multipart field carrying an uploaded file.
const imageField = "image"

type contentHandler[E models.Entity[E]] struct {
	svc       *services.ContentService[E]
	logger    logging.Logger
	maxUpload int64
}

// mountContent registers the CRUD routes of one content kind on r. Reads
// are public; writes go through auth.
func mountContent[E models.Entity[E]](r chi.Router, path string, svc *services.ContentService[E], auth func(http.Handler) http.Handler, maxUpload int64, logger logging.Logger) {
	h := &contentHandler[E]{
		svc:       svc,
		logger:    logger.With("resource", path),
		maxUpload: maxUpload,
	}
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *contentHandler[E]) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.Filter{
		Facet:  q.Get(h.svc.Kind().FacetParam),
		Search: q.Get("search"),
		Page:   atoiOrZero(q.Get("page")),
		Limit:  atoiOrZero(q.Get("limit")),
	}.Normalize()

	res, src, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, src)
		return
	}
	p := store.NewPagination(f, res.Total)
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: res.Items, Source: src, Pagination: &p})
}

func (h *contentHandler[E]) get(w http.ResponseWriter, r *http.Request) {
	e, src, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, h.logger, err, src)
		return
	}
	writeOK(w, http.StatusOK, e, src)
}

func (h *contentHandler[E]) create(w http.ResponseWriter, r *http.Request) {
	actor, _ := IdentityFrom(r.Context())
	fields, image, err := h.readPayload(w, r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, "")
		return
	}
	e, src, err := h.svc.Create(r.Context(), actor, fields, image)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, src)
		return
	}
	writeOK(w, http.StatusCreated, e, src)
}

func (h *contentHandler[E]) update(w http.ResponseWriter, r *http.Request) {
	actor, _ := IdentityFrom(r.Context())
	fields, image, err := h.readPayload(w, r)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, "")
		return
	}
	e, src, err := h.svc.Update(r.Context(), actor, chi.URLParam(r, "id"), fields, image)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, src)
		return
	}
	writeOK(w, http.StatusOK, e, src)
}

func (h *contentHandler[E]) delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := IdentityFrom(r.Context())
	src, err := h.svc.Delete(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, h.logger, err, src)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: fmt.Sprintf("%s deleted", h.svc.Kind().Name),
		Source:  src,
	})
}

// readPayload accepts either a JSON object or a multipart form. The image
// is nil unless a file was attached under imageField.
func (h *contentHandler[E]) readPayload(w http.ResponseWriter, r *http.Request) (services.Fields, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, nil, err
		}
		fields, err := services.FieldsFromJSON(data)
		return fields, nil, err
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, err
		}
		return nil, nil, common.NewValidationError("body", "malformed multipart form")
	}
	defer r.MultipartForm.RemoveAll()

	fields := services.FieldsFromForm(r.MultipartForm.Value)

	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return fields, nil, nil
	}
	if err != nil {
		return nil, nil, common.NewValidationError(imageField, "unreadable file")
	}
	defer file.Close()

	if !imageContentType(header.Header.Get("Content-Type")) {
		return nil, nil, common.NewValidationError(imageField, "only image files are allowed")
	}
	image, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, common.NewValidationError(imageField, "unreadable file")
	}
	return fields, image, nil
}

// imageContentType screens the declared part type. The bytes are sniffed
// again before upload.
func imageContentType(ct string) bool {
	return ct == "" || ct == "application/octet-stream" || strings.HasPrefix(ct, "image/")
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
