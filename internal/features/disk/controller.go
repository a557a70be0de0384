package disk

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DiskController struct {
	diskService *DiskService
}

func NewDiskController(diskService *DiskService) *DiskController {
	return &DiskController{diskService: diskService}
}

func (c *DiskController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/disk/usage", c.GetDiskUsage)
}

// GetDiskUsage
// @Summary Get disk usage
// @Description Usage of the filesystem holding the service data
// @Tags disk
// @Produce json
// @Success 200 {object} DiskUsage
// @Failure 500 {object} map[string]string
// @Router /disk/usage [get]
func (c *DiskController) GetDiskUsage(ctx *gin.Context) {
	usage, err := c.diskService.GetDiskUsage()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, usage)
}
