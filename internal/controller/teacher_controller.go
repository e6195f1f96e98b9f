package controller

import (
	"errors"
	"io"
	"net/http"

	"teacher_portal_backend/internal/service"
	"teacher_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	ProfileService *service.ProfileService
}

func NewTeacherController(profileService *service.ProfileService) *TeacherController {
	return &TeacherController{ProfileService: profileService}
}

// ListTeachers godoc
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]service.TeacherSummary}}
// @Failure 401 {object} util.Response
// @Router /teachers [get]
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	list, total, err := c.ProfileService.ListTeachers(ctx.Request.Context(), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Page(ctx, list, total, page, limit)
}

// GetProfile godoc
// @Summary Teacher profile
// @Description Raw profile snapshot with schedule, attendance and feedback records
// @Tags teachers
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "teacher id"
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 404 {object} util.Response
// @Router /teachers/{id} [get]
func (c *TeacherController) GetProfile(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid teacher id")
		return
	}

	profile, err := c.ProfileService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UploadPhoto godoc
// @Summary Upload teacher photo
// @Tags teachers
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "teacher id"
// @Param file formData file true "jpg, png or webp, at most 5 MiB"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 413 {object} util.Response
// @Router /teachers/{id}/photo [post]
func (c *TeacherController) UploadPhoto(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid teacher id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if file.Size > util.MaxPhotoSize {
		util.Error(ctx, http.StatusRequestEntityTooLarge, "photo exceeds 5 MiB")
		return
	}
	if !util.HasAllowedExtension(file.Filename, util.AllowedPhotoExtensions) {
		util.BadRequest(ctx, "unsupported photo type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, util.AllowedPhotoMimeTypes)
	if err != nil {
		if errors.Is(err, util.ErrInvalidFileType) {
			util.BadRequest(ctx, "unsupported photo type")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	url, err := c.ProfileService.UploadPhoto(ctx.Request.Context(), id, file.Filename, src, file.Size, mimeType)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"photoUrl": url})
}
