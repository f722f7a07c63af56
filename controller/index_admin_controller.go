package controller

import (
	"context"
	"net/http"
	"time"

	"dashboard/middleware"
	"dashboard/model"
	"dashboard/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const refreshTimeout = 5 * time.Minute

// IndexAdminController exposes the data maintenance endpoints
type IndexAdminController struct {
	uploadSvc    service.UploadService
	refreshSvc   service.RefreshService
	isProduction bool
}

func NewIndexAdminController(uploadSvc service.UploadService, refreshSvc service.RefreshService, isProduction bool) *IndexAdminController {
	return &IndexAdminController{
		uploadSvc:    uploadSvc,
		refreshSvc:   refreshSvc,
		isProduction: isProduction,
	}
}

func (ctrl *IndexAdminController) RegisterRoutes(router *gin.RouterGroup) {
	indexGroup := router.Group("/indices")
	indexGroup.Use(middleware.AuthMiddleware(ctrl.isProduction), middleware.AdminOnly())
	{
		indexGroup.POST("/load-from-csv", ctrl.loadFromCsv)
		indexGroup.POST("/refresh", ctrl.refresh)
	}
}

func (ctrl *IndexAdminController) loadFromCsv(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Response{Success: false, Error: "File is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Response{Success: false, Error: "Could not open file"})
		return
	}
	defer file.Close()

	result, err := ctrl.uploadSvc.LoadFromCsv(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("CSV upload rejected")
		c.JSON(http.StatusBadRequest, model.Response{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Message: "Index values loaded",
		Data:    result,
	})
}

func (ctrl *IndexAdminController) refresh(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), refreshTimeout)
	defer cancel()

	result, err := ctrl.refreshSvc.Refresh(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, model.Response{Success: false, Error: err.Error(), Data: result})
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Message: "Index values refreshed",
		Data:    result,
	})
}
