package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/watchhaven/internal/command"
	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/media"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

const uploadFormField = "image"

func (h *Handlers) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.ListAllProducts())
}

func (h *Handlers) AdminAddProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeJSON(r, &p); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.cmdHandler.AddProduct(r.Context(), command.AddProduct{Product: p})
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.WithField("product_id", created.ID).Info("[Admin] Product added")
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeJSON(r, &p); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	p.ID = chi.URLParam(r, "id")

	updated, ok, err := h.cmdHandler.UpdateProduct(r.Context(), command.UpdateProduct{Product: p})
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !ok {
		respondJSON(w, http.StatusOK, map[string]bool{"updated": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"updated": true, "product": updated})
}

// AdminDeleteProduct removes a product only when the request confirms it
// with ?confirm=true or an X-Confirm: yes header
func (h *Handlers) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted := h.cmdHandler.DeleteProduct(r.Context(), command.DeleteProduct{
		ProductID: id,
		Confirm:   requestConfirmation(r),
	})

	if deleted {
		log.WithField("product_id", id).Info("[Admin] Product deleted")
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func requestConfirmation(r *http.Request) catalog.Confirmer {
	return catalog.ConfirmFunc(func(_ context.Context, prompt string) bool {
		ok := confirmed(r)
		log.WithFields(log.Fields{"prompt": prompt, "confirmed": ok}).Debug("[Admin] Delete confirmation")
		return ok
	})
}

func confirmed(r *http.Request) bool {
	if v, err := strconv.ParseBool(r.URL.Query().Get("confirm")); err == nil && v {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(r.Header.Get("X-Confirm"))) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// UploadImage turns a multipart image upload into a data URI
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	limit := h.opts.MaxImageBytes
	if limit > 0 {
		// headroom for the multipart envelope
		r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, r, media.ErrTooLarge)
			return
		}
		respondJSONError(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	reader := io.Reader(file)
	if limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if limit > 0 && int64(len(data)) > limit {
		respondError(w, r, media.ErrTooLarge)
		return
	}

	uri, err := media.EncodeDataURI(header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"uri": uri})
}

type resolveImageRequest struct {
	URL    string `json:"url"`
	Inline bool   `json:"inline"`
}

// ResolveImage follows a pasted link to its image, optionally inlining it
func (h *Handlers) ResolveImage(w http.ResponseWriter, r *http.Request) {
	var req resolveImageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	uri, err := h.resolver.Resolve(r.Context(), req.URL, req.Inline)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"uri": uri})
}
