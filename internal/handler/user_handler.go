package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/LibraryApp/internal/dto"
	"github.com/GoArmGo/LibraryApp/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// UserHandler — обработчик HTTP-запросов для работы с читателями.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, validate *validator.Validate, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: uc,
		validate:    validate,
		logger:      logger,
	}
}

// GetUserByID — получает читателя по ID.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	user, err := h.userUseCase.Find(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// GetAllUsers — получает список всех читателей.
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.FindAll(r.Context())
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// CreateUser — регистрирует нового читателя.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in dto.UserCreateDto
	if err := decodeAndValidate(r, h.validate, &in); err != nil {
		h.logger.Warn("invalid create user request", "error", err)
		respondWithAppError(w, err, h.logger)
		return
	}

	user, err := h.userUseCase.Create(r.Context(), in)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, user, h.logger)
}

// UpdateUser — перезаписывает имя и email читателя.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	var in dto.UserUpdateDto
	if err := decodeAndValidate(r, h.validate, &in); err != nil {
		h.logger.Warn("invalid update user request", "user_id", id, "error", err)
		respondWithAppError(w, err, h.logger)
		return
	}

	user, err := h.userUseCase.Update(r.Context(), id, in)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// DeleteUser — удаляет читателя по ID.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	if err := h.userUseCase.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
