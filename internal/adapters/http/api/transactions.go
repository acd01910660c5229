package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/fflboard/internal/domain/types"
)

// TransactionDependencies defines the interface for activity summaries.
type TransactionDependencies interface {
	TransactionDays() int
	TransactionSummary(ctx context.Context, days int) (types.ActivitySummary, error)
}

// TransactionsHandler handles transaction summary requests.
type TransactionsHandler struct {
	deps TransactionDependencies
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(deps TransactionDependencies) *TransactionsHandler {
	return &TransactionsHandler{deps: deps}
}

// HandleGetTransactions handles GET /transactions?days=N requests.
func (h *TransactionsHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_transactions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	days := h.deps.TransactionDays()
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "bad_request", opError(op, fmt.Errorf("%w: days must be a positive integer", ErrBadRequest)))
			return
		}
		days = n
	}

	summary, err := h.deps.TransactionSummary(r.Context(), days)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
