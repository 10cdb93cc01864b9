package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/medvalidate-backend/internal/http/response"
	"github.com/yungbote/medvalidate-backend/internal/platform/ctxutil"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/services"
)

type ReportHandler struct {
	log     *logger.Logger
	reports services.ReportService
}

func NewReportHandler(log *logger.Logger, reports services.ReportService) *ReportHandler {
	return &ReportHandler{log: log.With("handler", "ReportHandler"), reports: reports}
}

// GET /api/ideas/:id/report
func (h *ReportHandler) GetOrCreateReport(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id", "invalid_idea_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	rep, err := h.reports.GetOrCreateReport(ctx, ctxutil.UserID(ctx), ideaID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": rep})
}

// DELETE /api/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	reportID, ok := pathUUID(c, "id", "invalid_report_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.reports.DeleteReport(ctx, ctxutil.UserID(ctx), reportID); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
