package controller

import (
	"net/http"

	"teacher_portal_backend/internal/service"
	"teacher_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ViewSessionController struct {
	ViewSessions *service.ViewSessionService
}

func NewViewSessionController(viewSessions *service.ViewSessionService) *ViewSessionController {
	return &ViewSessionController{ViewSessions: viewSessions}
}

// Open godoc
// @Summary Open a profile view
// @Description Snapshots the teacher profile and returns the first render with every section expanded
// @Tags profile-view
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "teacher id"
// @Success 201 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response
// @Router /teachers/{id}/view-sessions [post]
func (c *ViewSessionController) Open(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}
	teacherID := util.MustParseUint(ctx.Param("id"))
	if teacherID == 0 {
		util.BadRequest(ctx, "invalid teacher id")
		return
	}

	view, err := c.ViewSessions.Open(ctx.Request.Context(), teacherID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// Get godoc
// @Summary Render a profile view
// @Tags profile-view
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "view session id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /view-sessions/{sessionId} [get]
func (c *ViewSessionController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.ViewSessions.Render(ctx.Request.Context(), ctx.Param("sessionId"), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Toggle godoc
// @Summary Expand or collapse a section
// @Description Flips schedule, attendance or feedback. Sections without data answer 409.
// @Tags profile-view
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "view session id"
// @Param section path string true "section" Enums(schedule, attendance, feedback)
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /view-sessions/{sessionId}/sections/{section}/toggle [post]
func (c *ViewSessionController) Toggle(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.ViewSessions.Toggle(ctx.Request.Context(), ctx.Param("sessionId"), userID, ctx.Param("section"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Close godoc
// @Summary Close a profile view
// @Tags profile-view
// @Security ApiKeyAuth
// @Param sessionId path string true "view session id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /view-sessions/{sessionId} [delete]
func (c *ViewSessionController) Close(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ViewSessions.Close(ctx.Request.Context(), ctx.Param("sessionId"), userID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
