package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/LibraryApp/internal/dto"
	"github.com/GoArmGo/LibraryApp/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// LoanHandler — обработчик HTTP-запросов для работы с одалживаниями.
type LoanHandler struct {
	loanUseCase usecase.LoanUseCase
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewLoanHandler создаёт новый экземпляр LoanHandler.
func NewLoanHandler(uc usecase.LoanUseCase, validate *validator.Validate, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{
		loanUseCase: uc,
		validate:    validate,
		logger:      logger,
	}
}

// GetLoanByID — получает одалживание по ID.
func (h *LoanHandler) GetLoanByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	loan, err := h.loanUseCase.Find(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, loan, h.logger)
}

// GetAllLoans — получает список всех одалживаний.
func (h *LoanHandler) GetAllLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanUseCase.FindAll(r.Context())
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, loans, h.logger)
}

// CreateLoan — выдает книгу читателю.
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var in dto.LoanCreateDto
	if err := decodeAndValidate(r, h.validate, &in); err != nil {
		h.logger.Warn("invalid create loan request", "error", err)
		respondWithAppError(w, err, h.logger)
		return
	}

	loan, err := h.loanUseCase.Create(r.Context(), in)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, loan, h.logger)
}

// UpdateLoan — частично обновляет одалживание.
func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	var in dto.LoanUpdateDto
	if err := decodeAndValidate(r, h.validate, &in); err != nil {
		h.logger.Warn("invalid update loan request", "loan_id", id, "error", err)
		respondWithAppError(w, err, h.logger)
		return
	}

	loan, err := h.loanUseCase.Update(r.Context(), id, in)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, loan, h.logger)
}

// ReturnLoan — фиксирует возврат книги по ID одалживания.
func (h *LoanHandler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	loan, err := h.loanUseCase.ReturnLoan(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, loan, h.logger)
}

// DeleteLoan — удаляет одалживание по ID.
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}

	if err := h.loanUseCase.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
