package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type createBookRequest struct {
	ISBN   string `json:"isbn" validate:"required,isbn"`
	Title  string `json:"title" validate:"required,min=1"`
	Author string `json:"author" validate:"required,min=1"`
}

type borrowRequest struct {
	Borrower string `json:"borrower" validate:"required,min=1"`
}

type importRequest struct {
	Books []createBookRequest `json:"books" validate:"required,dive"`
}

type summaryResponse struct {
	Items []AuthorCount `json:"items"`
}

// writeServiceError maps domain errors onto HTTP statuses: unknown ISBN
// is 404, business-rule conflicts are 409, everything else is 500.
func writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrDuplicateISBN):
		httpx.JSONError(r, w, http.StatusConflict, "DUPLICATE_ISBN", err.Error(), nil)
	case errors.Is(err, ErrAlreadyBorrowed):
		httpx.JSONError(r, w, http.StatusConflict, "ALREADY_BORROWED", err.Error(), nil)
	case errors.Is(err, ErrNotBorrowed):
		httpx.JSONError(r, w, http.StatusConflict, "NOT_BORROWED", err.Error(), nil)
	default:
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book payload", details)
		return
	}

	book, err := h.svc.Register(r.Context(), req.ISBN, req.Title, req.Author)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccessCreated(r, w, book)
}

// List handles GET /books. When a query is present it searches the
// given field (title, author, or both when unspecified); otherwise it
// lists the catalog, optionally filtered to available books.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if query := params.Get("query"); query != "" {
		field := params.Get("field")
		if field != "" && field != "title" && field != "author" {
			httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "field must be title or author", nil)
			return
		}
		books, err := h.svc.SearchBooks(r.Context(), query, field)
		if err != nil {
			writeServiceError(r, w, err)
			return
		}
		httpx.JSONSuccess(r, w, books, map[string]any{"total": len(books)})
		return
	}

	availableOnly := params.Get("available_only") == "true"
	books, err := h.svc.ListBooks(r.Context(), availableOnly)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccess(r, w, books, map[string]any{"total": len(books)})
}

// GetByISBN handles GET /books/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "ISBN is required", nil)
		return
	}

	book, err := h.svc.Get(r.Context(), isbn)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccess(r, w, book, nil)
}

// Delete handles DELETE /books/{isbn}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), r.PathValue("isbn")); err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// Borrow handles POST /books/{isbn}/borrow
func (h *HTTPHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid borrow payload", details)
		return
	}

	book, err := h.svc.Borrow(r.Context(), r.PathValue("isbn"), req.Borrower)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccess(r, w, book, nil)
}

// Return handles POST /books/{isbn}/return
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.Return(r.Context(), r.PathValue("isbn"))
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccess(r, w, book, nil)
}

// Summary handles GET /summary
func (h *HTTPHandler) Summary(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(r, w, summaryResponse{Items: h.svc.Summary(r.Context())}, nil)
}

// Export handles GET /export
func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	books := h.svc.Snapshot(r.Context())
	httpx.JSONSuccess(r, w, books, map[string]any{"total": len(books)})
}

// Import handles POST /import, replacing the whole catalog.
func (h *HTTPHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid import payload", details)
		return
	}

	entries := make([]BookInput, 0, len(req.Books))
	for _, b := range req.Books {
		entries = append(entries, BookInput{ISBN: b.ISBN, Title: b.Title, Author: b.Author})
	}

	books, err := h.svc.Import(r.Context(), entries)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccess(r, w, books, map[string]any{"total": len(books)})
}

// Reset handles DELETE /catalog
func (h *HTTPHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		writeServiceError(r, w, err)
		return
	}

	httpx.JSONSuccessNoContent(w)
}
