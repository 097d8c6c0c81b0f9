package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/LibraryApp/internal/apperror"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithAppError маппит вид ошибки приложения на HTTP-статус.
// Неклассифицированные ошибки отдаются как 500 без деталей.
func respondWithAppError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperror.KindValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message, logger)
		case apperror.KindNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message, logger)
		case apperror.KindConflict:
			respondWithError(w, http.StatusConflict, appErr.Message, logger)
		default:
			respondWithError(w, http.StatusInternalServerError, appErr.Message, logger)
		}
		return
	}

	logger.Error("unexpected error", "error", err)
	respondWithError(w, http.StatusInternalServerError, "internal server error", logger)
}

// parseIDParam извлекает числовой {id} из пути запроса.
func parseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation("invalid id")
	}
	return id, nil
}

// decodeAndValidate разбирает JSON-тело запроса и прогоняет его
// через validator до вызова бизнес-логики.
func decodeAndValidate(r *http.Request, validate *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperror.Validation(validationMessage(err))
	}
	return nil
}

// validationMessage превращает первую ошибку валидатора в короткое
// клиентское сообщение вида "email is required".
func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		switch fieldErr.Tag() {
		case "required":
			return fieldErr.Field() + " is required"
		case "email":
			return "invalid email format"
		default:
			return fieldErr.Field() + " is invalid"
		}
	}
	return "validation failed"
}
