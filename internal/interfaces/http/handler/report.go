package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/propledger/backend/internal/application/report"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/interfaces/http/router"
)

// ReportHandler serves the allocation rollup endpoints.
type ReportHandler struct {
	BaseHandler
	tree *report.TreeService
}

// NewReportHandler creates a report handler.
func NewReportHandler(tree *report.TreeService) *ReportHandler {
	return &ReportHandler{tree: tree}
}

// Routes returns the route group for reports.
func (h *ReportHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("reports", "/reports").
		GET("/allocation-tree", h.AllocationTree)
}

// AllocationTree returns the three-level rollup of documents grouped by
// allocation root and contact. The "kind" query parameter selects bills or
// invoices; "outstanding" limits the tree to unpaid balances.
func (h *ReportHandler) AllocationTree(c *gin.Context) {
	kind := billing.DocumentKind(c.Query("kind"))
	if !kind.IsValid() {
		h.BadRequest(c, "Invalid kind parameter: must be BILL or INVOICE")
		return
	}

	filter := report.TreeFilter{
		Kind:        kind,
		Outstanding: c.Query("outstanding") == "true",
	}

	var err error
	if filter.IssuedFrom, err = parseTimeQuery(c, "issued_from"); err != nil {
		h.BadRequest(c, "Invalid issued_from parameter: must be a date")
		return
	}
	if filter.IssuedTo, err = parseTimeQuery(c, "issued_to"); err != nil {
		h.BadRequest(c, "Invalid issued_to parameter: must be a date")
		return
	}

	tree, buildErr := h.tree.BuildTree(c.Request.Context(), filter)
	if buildErr != nil {
		h.HandleDomainError(c, buildErr)
		return
	}
	h.Success(c, tree)
}
