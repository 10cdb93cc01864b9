package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/medvalidate-backend/internal/http/response"
	"github.com/yungbote/medvalidate-backend/internal/platform/ctxutil"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/services"
)

type IdeaHandler struct {
	log   *logger.Logger
	ideas services.IdeaService
	deep  services.DeepAnalysisService
}

func NewIdeaHandler(log *logger.Logger, ideas services.IdeaService, deep services.DeepAnalysisService) *IdeaHandler {
	return &IdeaHandler{log: log.With("handler", "IdeaHandler"), ideas: ideas, deep: deep}
}

// POST /api/ideas
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	var in services.IdeaSubmission
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ctx := c.Request.Context()
	out, err := h.ideas.CreateIdea(ctx, ctxutil.UserID(ctx), in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if !out.Success {
		c.JSON(response.FailureStatus(out.Failure), out)
		return
	}
	response.RespondCreated(c, out)
}

// GET /api/ideas
func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.ideas.ListIdeas(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ideas": list})
}

// GET /api/ideas/:id
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id", "invalid_idea_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	res, err := h.ideas.GetIdea(ctx, ctxutil.UserID(ctx), ideaID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"idea": res})
}

// POST /api/ideas/:id/reanalyze
func (h *IdeaHandler) ReanalyzeIdea(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id", "invalid_idea_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	out, err := h.ideas.ReanalyzeIdea(ctx, ctxutil.UserID(ctx), ideaID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if !out.Success {
		c.JSON(response.FailureStatus(out.Failure), out)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/ideas/:id
func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id", "invalid_idea_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.ideas.DeleteIdea(ctx, ctxutil.UserID(ctx), ideaID); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/ideas/:id/full-analysis
func (h *IdeaHandler) RunDeepAnalysis(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id", "invalid_idea_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	ran, err := h.deep.RunDeepAnalysis(ctx, ctxutil.UserID(ctx), ideaID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "ran": ran})
}

// GET /api/ideas/:id/full-analysis
func (h *IdeaHandler) GetFullAnalysis(c *gin.Context) {
	ideaID, ok := pathUUID(c, "id", "invalid_idea_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	full, err := h.deep.GetFullAnalysis(ctx, ctxutil.UserID(ctx), ideaID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, full)
}
