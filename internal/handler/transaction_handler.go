package handler

import (
	"net/http"

	"bankist/internal/service"
)

type TransactionHandler struct {
	controller *service.Controller
}

func NewTransactionHandler(controller *service.Controller) *TransactionHandler {
	return &TransactionHandler{
		controller: controller,
	}
}

type TransferRequest struct {
	To     RawText `json:"to"`
	Amount RawText `json:"amount"`
}

type LoanRequest struct {
	Amount RawText `json:"amount"`
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if appErr := decode(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	dashboard, err := h.controller.Transfer(string(req.To), string(req.Amount))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *TransactionHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if appErr := decode(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	ticket, err := h.controller.RequestLoan(string(req.Amount))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ticket)
}
