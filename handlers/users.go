package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/bookshelf/backend/middleware"
	"github.com/kevinaaaquil/bookshelf/backend/models"
	"github.com/kevinaaaquil/bookshelf/backend/service"
	"github.com/sirupsen/logrus"
)

// UsersHandler serves the authenticated caller's own account. The account id
// always comes from the session, never from the request.
type UsersHandler struct {
	Accounts   *service.AccountService
	Collection *service.CollectionService
	Log        logrus.FieldLogger
}

// SaveBookRequest accepts either a saved-book entry or a catalog search record.
type SaveBookRequest struct {
	models.BookEntry
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnailUrl"`
	InfoLink     string `json:"infoLink"`
}

func (req SaveBookRequest) entry() models.BookEntry {
	e := req.BookEntry
	if e.BookID == "" {
		e.BookID = req.ID
	}
	if e.Image == "" {
		e.Image = req.ThumbnailURL
	}
	if e.Link == "" {
		e.Link = req.InfoLink
	}
	return e
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r)
	if !ok {
		writeError(w, h.Log, models.ErrUnauthenticated)
		return
	}
	account, err := h.Accounts.GetSelf(r.Context(), accountID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, accountToResponse(account))
}

func (h *UsersHandler) SaveBook(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r)
	if !ok {
		writeError(w, h.Log, models.ErrUnauthenticated)
		return
	}
	var req SaveBookRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.Collection.SaveBook(r.Context(), accountID, req.entry())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, accountToResponse(account))
}

func (h *UsersHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r)
	if !ok {
		writeError(w, h.Log, models.ErrUnauthenticated)
		return
	}
	account, err := h.Collection.RemoveBook(r.Context(), accountID, chi.URLParam(r, "bookId"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, accountToResponse(account))
}
