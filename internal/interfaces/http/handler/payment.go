package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/propledger/backend/internal/application/billing"
	appledger "github.com/propledger/backend/internal/application/ledger"
	"github.com/propledger/backend/internal/interfaces/http/router"
)

// PaymentHandler serves single and bulk payment endpoints.
type PaymentHandler struct {
	BaseHandler
	payments *appbilling.PaymentService
	bulk     *appbilling.BulkPaymentService
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(payments *appbilling.PaymentService, bulk *appbilling.BulkPaymentService) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		bulk:     bulk,
	}
}

// Routes returns the route group for payments.
func (h *PaymentHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("payments", "/payments").
		POST("", h.Apply).
		POST("/bulk/prepare", h.BulkPrepare).
		POST("/bulk", h.BulkApply).
		GET("/document/:id", h.ListDocumentTransactions)
}

// Apply applies one payment against a document and records the ledger entry.
func (h *PaymentHandler) Apply(c *gin.Context) {
	var req appbilling.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.payments.ApplyPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// BulkPrepareRequest selects the documents for a bulk payment.
type BulkPrepareRequest struct {
	DocumentIDs []uuid.UUID `json:"document_ids" binding:"required,min=1"`
}

// BulkPrepare returns the selected documents with their balances prefilled
// as editable payment amounts.
func (h *PaymentHandler) BulkPrepare(c *gin.Context) {
	var req BulkPrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	items, err := h.bulk.Prepare(c.Request.Context(), req.DocumentIDs)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// BulkApply pays several documents as one batch. Partial failure is not an
// error at the transport level: the result lists both sides.
func (h *PaymentHandler) BulkApply(c *gin.Context) {
	var req appbilling.BulkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.bulk.Apply(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// ListDocumentTransactions returns the ledger entries applied against one
// document, newest first.
func (h *PaymentHandler) ListDocumentTransactions(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	txs, err := h.payments.ListDocumentTransactions(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]appledger.TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, *appledger.NewTransactionResponse(&txs[i]))
	}
	h.Success(c, responses)
}
