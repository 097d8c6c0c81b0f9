package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/LibraryApp/internal/dto"
	"github.com/GoArmGo/LibraryApp/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// BookHandler — обработчик HTTP-запросов для работы с книгами.
type BookHandler struct {
	bookUseCase usecase.BookUseCase
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewBookHandler создаёт новый экземпляр BookHandler.
func NewBookHandler(uc usecase.BookUseCase, validate *validator.Validate, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		bookUseCase: uc,
		validate:    validate,
		logger:      logger,
	}
}

// GetBookByID — получает книгу по ID.
func (h *BookHandler) GetBookByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	book, err := h.bookUseCase.Find(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, book, h.logger)
}

// GetAllBooks — получает список всех книг каталога.
func (h *BookHandler) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookUseCase.FindAll(r.Context())
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, books, h.logger)
}

// CreateBook — добавляет книгу в каталог.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var in dto.BookCreateDto
	if err := decodeAndValidate(r, h.validate, &in); err != nil {
		h.logger.Warn("invalid create book request", "error", err)
		respondWithAppError(w, err, h.logger)
		return
	}

	book, err := h.bookUseCase.Create(r.Context(), in)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, book, h.logger)
}

// UpdateBook — перезаписывает название и автора книги.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	var in dto.BookUpdateDto
	if err := decodeAndValidate(r, h.validate, &in); err != nil {
		h.logger.Warn("invalid update book request", "book_id", id, "error", err)
		respondWithAppError(w, err, h.logger)
		return
	}

	book, err := h.bookUseCase.Update(r.Context(), id, in)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, book, h.logger)
}

// DeleteBook — удаляет книгу по ID.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	if err := h.bookUseCase.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
