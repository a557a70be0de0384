package logs_querying

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LogQueryController struct {
	logQueryService *LogQueryService
}

func NewLogQueryController(logQueryService *LogQueryService) *LogQueryController {
	return &LogQueryController{logQueryService: logQueryService}
}

func (c *LogQueryController) RegisterRoutes(router *gin.RouterGroup, middlewares ...gin.HandlerFunc) {
	queryRoutes := router.Group("/logs", middlewares...)

	queryRoutes.GET("/search", c.SearchLogs)
}

// SearchLogs
// @Summary Search stored syslog records
// @Description Filter records by exact hostname and log level and by message substring. Newest first.
// @Tags logs-query
// @Produce json
// @Security BearerAuth
// @Param hostname query string false "Exact hostname"
// @Param log_level query string false "Exact log level"
// @Param message query string false "Message substring"
// @Param limit query int false "Page size, 1..10000, default 1000"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} SearchLogsResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /logs/search [get]
func (c *LogQueryController) SearchLogs(ctx *gin.Context) {
	var request SearchLogsRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
			"code":  ErrorInvalidParameters,
		})
		return
	}

	response, err := c.logQueryService.SearchLogs(ctx.Request.Context(), &request)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *LogQueryController) handleError(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"code":  validationErr.Code,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search logs"})
}
