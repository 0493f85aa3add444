package handler

import (
	"github.com/gin-gonic/gin"

	appledger "github.com/propledger/backend/internal/application/ledger"
	"github.com/propledger/backend/internal/domain/ledger"
	"github.com/propledger/backend/internal/interfaces/http/dto"
	"github.com/propledger/backend/internal/interfaces/http/router"
)

// TransactionHandler serves ledger transaction endpoints.
type TransactionHandler struct {
	BaseHandler
	transactions *appledger.TransactionService
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler(transactions *appledger.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// Routes returns the route group for transactions.
func (h *TransactionHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("transactions", "/transactions").
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// Create records a ledger entry. Entries linked to a document flow through
// payment application so the document balance stays consistent.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req appledger.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.transactions.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a single transaction by ID.
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.transactions.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns transactions matching the query filters.
func (h *TransactionHandler) List(c *gin.Context) {
	filter, err := h.buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	responses, listErr := h.transactions.ListTransactions(c.Request.Context(), filter)
	if listErr != nil {
		h.HandleDomainError(c, listErr)
		return
	}
	h.Success(c, responses)
}

// Update edits a transaction. Amount changes on payment entries re-apply
// against the linked document.
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req appledger.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.transactions.UpdateTransaction(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a transaction, rolling its amount back off the linked
// document when it was a payment.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactions.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// buildFilter assembles a transaction filter from query parameters.
func (h *TransactionHandler) buildFilter(c *gin.Context) (ledger.TransactionFilter, error) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		return ledger.TransactionFilter{}, err
	}
	list.Normalize()

	filter := ledger.TransactionFilter{
		Direction: ledger.TransactionDirection(c.Query("direction")),
		Page:      list.Page,
		PageSize:  list.PageSize,
	}

	var err error
	if filter.ContactID, err = parseUUIDQuery(c, "contact_id"); err != nil {
		return filter, err
	}
	if filter.BillID, err = parseUUIDQuery(c, "bill_id"); err != nil {
		return filter, err
	}
	if filter.InvoiceID, err = parseUUIDQuery(c, "invoice_id"); err != nil {
		return filter, err
	}
	if filter.BatchID, err = parseUUIDQuery(c, "batch_id"); err != nil {
		return filter, err
	}
	if filter.PostedFrom, err = parseTimeQuery(c, "posted_from"); err != nil {
		return filter, err
	}
	if filter.PostedTo, err = parseTimeQuery(c, "posted_to"); err != nil {
		return filter, err
	}
	return filter, nil
}
