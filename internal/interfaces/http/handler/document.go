package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/propledger/backend/internal/application/billing"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/sequence"
	"github.com/propledger/backend/internal/interfaces/http/dto"
	"github.com/propledger/backend/internal/interfaces/http/router"
)

// DocumentHandler serves bill and invoice endpoints.
type DocumentHandler struct {
	BaseHandler
	documents *appbilling.DocumentService
	numbering *appbilling.NumberingService
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(documents *appbilling.DocumentService, numbering *appbilling.NumberingService) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		numbering: numbering,
	}
}

// Routes returns the route group for documents.
func (h *DocumentHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("documents", "/documents").
		GET("", h.List).
		POST("", h.Create).
		GET("/next-number", h.NextNumber).
		POST("/rental-invoices", h.GenerateRentalInvoice).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// Create records a new bill or invoice. An empty number is filled from the
// matching number series.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req appbilling.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.documents.CreateDocument(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a single document by ID.
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.documents.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns documents matching the query filters, paginated.
func (h *DocumentHandler) List(c *gin.Context) {
	filter, err := h.buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, pageErr := h.documents.ListDocuments(c.Request.Context(), filter)
	if pageErr != nil {
		h.HandleDomainError(c, pageErr)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Page, page.PageSize, page.Total)
}

// Update edits a document's mutable fields.
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req appbilling.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.documents.UpdateDocument(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a document that carries no payments.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documents.DeleteDocument(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// NextNumberResponse previews the next document number of a series.
type NextNumberResponse struct {
	Series sequence.SeriesKey `json:"series"`
	Number string             `json:"number"`
}

// NextNumber previews the next number of the series named by the "series"
// query parameter without consuming it.
func (h *DocumentHandler) NextNumber(c *gin.Context) {
	key := sequence.SeriesKey(c.Query("series"))
	if !key.IsValid() {
		h.BadRequest(c, "Invalid series parameter: must be one of BILL, RENTAL_INVOICE, PROJECT_INVOICE")
		return
	}

	number, err := h.numbering.NextNumber(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, NextNumberResponse{Series: key, Number: number})
}

// GenerateRentalInvoiceRequest asks for a periodic rental invoice.
type GenerateRentalInvoiceRequest struct {
	RentalAgreementID uuid.UUID `json:"rental_agreement_id" binding:"required"`
	PeriodStart       time.Time `json:"period_start" binding:"required"`
}

// GenerateRentalInvoice creates the invoice for one rental period.
func (h *DocumentHandler) GenerateRentalInvoice(c *gin.Context) {
	var req GenerateRentalInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.documents.GenerateRentalInvoice(c.Request.Context(), req.RentalAgreementID, req.PeriodStart)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// buildFilter assembles a document filter from query parameters.
func (h *DocumentHandler) buildFilter(c *gin.Context) (billing.DocumentFilter, error) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		return billing.DocumentFilter{}, err
	}
	list.Normalize()

	filter := billing.DocumentFilter{
		Kind:           billing.DocumentKind(c.Query("kind")),
		Status:         billing.DocumentStatus(c.Query("status")),
		AllocationKind: billing.AllocationKind(c.Query("allocation_kind")),
		Outstanding:    c.Query("outstanding") == "true",
		Page:           list.Page,
		PageSize:       list.PageSize,
		OrderBy:        list.OrderBy,
		OrderDir:       list.OrderDir,
	}

	var err error
	if filter.ContactID, err = parseUUIDQuery(c, "contact_id"); err != nil {
		return filter, err
	}
	if filter.ProjectID, err = parseUUIDQuery(c, "project_id"); err != nil {
		return filter, err
	}
	if filter.BuildingID, err = parseUUIDQuery(c, "building_id"); err != nil {
		return filter, err
	}
	if filter.StaffID, err = parseUUIDQuery(c, "staff_id"); err != nil {
		return filter, err
	}
	if filter.IssuedFrom, err = parseTimeQuery(c, "issued_from"); err != nil {
		return filter, err
	}
	if filter.IssuedTo, err = parseTimeQuery(c, "issued_to"); err != nil {
		return filter, err
	}
	return filter, nil
}
