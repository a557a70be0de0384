package downdetect

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DowndetectController struct {
	downdetectService *DowndetectService
}

func NewDowndetectController(downdetectService *DowndetectService) *DowndetectController {
	return &DowndetectController{downdetectService: downdetectService}
}

func (c *DowndetectController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/downdetect/is-available", c.IsAvailable)
}

// IsAvailable
// @Summary Check backend availability
// @Description 200 when the database (and cache, if configured) answer
// @Tags downdetect
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /downdetect/is-available [get]
func (c *DowndetectController) IsAvailable(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := c.downdetectService.IsAvailable(checkCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "available"})
}
