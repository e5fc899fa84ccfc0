package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/starford/burnote/internal/noteservice"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// decode reads a JSON body into v and runs its Validate method.
func decode(w http.ResponseWriter, r *http.Request, v interface{ Validate() error }) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	if err := v.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return false
	}
	return true
}

// Save handles POST /api/save.
//
//	@Summary		Save a private note or create a read-once share
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SaveRequest	true	"Note to save"
//	@Success		200		{object}	SaveResponse
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		ApiKeyAuth
//	@Router			/save [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !decode(w, r, &req) {
		return
	}

	in := noteservice.SaveRequest{Content: *req.Content, IsShare: req.IsShare}
	if req.IsShare {
		if req.PublicID != nil {
			in.PublicID = *req.PublicID
		} else {
			in.PublicID = uuid.NewString()
		}
	}

	if err := h.svc.SaveNote(r.Context(), tenantFrom(r.Context()), in); err != nil {
		writeError(w, "save note", err)
		return
	}
	writeJSON(w, http.StatusOK, SaveResponse{Success: true, PublicID: in.PublicID})
}

// List handles GET /api/list.
//
//	@Summary		List private notes, newest first
//	@Tags			notes
//	@Produce		json
//	@Success		200	{array}		NoteListItem
//	@Failure		401	{object}	errResponse
//	@Security		ApiKeyAuth
//	@Router			/list [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListNotes(r.Context(), tenantFrom(r.Context()))
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Delete handles POST /api/delete.
//
//	@Summary		Delete a private note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DeleteRequest	true	"Note id"
//	@Success		200		{object}	SuccessResponse
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		ApiKeyAuth
//	@Router			/delete [post]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.DeleteNote(r.Context(), tenantFrom(r.Context()), *req.ID); err != nil {
		writeError(w, "delete note", err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Summarize handles POST /api/ai-sum.
//
//	@Summary		Summarize text with the configured model
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SummaryRequest	true	"Text to summarize"
//	@Success		200		{object}	SummaryResponse
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		ApiKeyAuth
//	@Router			/ai-sum [post]
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !decode(w, r, &req) {
		return
	}
	res := h.svc.Summarize(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, SummaryResponse{Summary: res.Summary})
}

// ReadShare handles GET /api/share/{publicID}. The share is destroyed on
// the first successful read.
//
//	@Summary		Read and destroy a shared note
//	@Tags			share
//	@Produce		json
//	@Param			publicID	path		string	true	"Share token"
//	@Success		200			{object}	ShareResponse
//	@Failure		404			{object}	errResponse
//	@Router			/share/{publicID} [get]
func (h *Handler) ReadShare(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")
	if publicID == "" {
		NotFound(w, r)
		return
	}
	content, err := h.svc.ReadShare(r.Context(), publicID)
	if err != nil {
		writeError(w, "read share", err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, ShareResponse{Content: content})
}
