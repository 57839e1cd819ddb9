package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/txpulse/internal/adapter/http/dto"
	"github.com/iho/txpulse/internal/domain"
)

// IngestService defines the behavior needed by TransactionHandler.
type IngestService interface {
	IngestTransaction(ctx context.Context, raw map[string]any) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// TransactionHandler handles transaction ingestion requests.
type TransactionHandler struct {
	ingestUC IngestService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ingestUC IngestService) *TransactionHandler {
	return &TransactionHandler{ingestUC: ingestUC}
}

// Ingest receives and stores one transaction. Duplicate ids are rejected
// with 409 so retrying producers can tell a replay from an acceptance;
// the first-accepted record always wins.
func (h *TransactionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	// UseNumber keeps monetary amounts out of float64 on the way in.
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	_, err := h.ingestUC.IngestTransaction(r.Context(), raw)
	if err != nil {
		if domain.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, validationMessage(err), "")
			return
		}

		status := mapDomainError(err)
		if status == http.StatusConflict {
			writeError(w, status, "Transaction already exists", "")
			return
		}
		writeError(w, status, "failed to store transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Transaction stored successfully"})
}

// Get retrieves a stored transaction by id.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.ingestUC.GetTransaction(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}
