// internal/handlers/report.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockflow/stockflow-backend/internal/pdf"
	"github.com/stockflow/stockflow-backend/internal/report"
	"github.com/stockflow/stockflow-backend/internal/store"
	"github.com/stockflow/stockflow-backend/internal/utils"
)

type ReportHandler struct {
	store   *store.Store
	reports *report.Service
}

func NewReportHandler(st *store.Store, reports *report.Service) *ReportHandler {
	return &ReportHandler{store: st, reports: reports}
}

// POST /v1/reports/ai
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	text, err := h.reports.Generate(c.Request.Context(), h.store.Products(), h.store.Transactions())
	if err != nil {
		if errors.Is(err, report.ErrReportInProgress) {
			utils.ConflictResponse(c, "A report is already being generated")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"report": text})
}

type pdfRequest struct {
	Report string `json:"report"`
}

// POST /v1/reports/pdf
func (h *ReportHandler) DownloadPDF(c *gin.Context) {
	var req pdfRequest
	// Body is optional; without it the document has no AI analysis section.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid input", err.Error())
			return
		}
	}

	document, err := pdf.Export(h.store.Products(), h.store.Transactions(), req.Report)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to render PDF")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="stockflow-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", document)
}
