package system_healthcheck

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"syslogbull/internal/features/disk"
	test_utils "syslogbull/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAvailability struct {
	err error
}

func (s stubAvailability) IsAvailable(_ context.Context) error {
	return s.err
}

type stubDisk struct {
	usedPercent float64
	err         error
}

func (s stubDisk) GetDiskUsage() (*disk.DiskUsage, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &disk.DiskUsage{UsedPercent: s.usedPercent}, nil
}

func createHealthcheckTestRouter(availability AvailabilityChecker, diskReader DiskUsageReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := NewHealthcheckController(NewHealthcheckService(availability, diskReader))
	controller.RegisterRoutes(router.Group("/api/v1"))

	return router
}

func Test_CheckHealth_AllChecksPass_ReturnsOk(t *testing.T) {
	router := createHealthcheckTestRouter(stubAvailability{}, stubDisk{usedPercent: 40})

	test_utils.MakeGetRequest(t, router, "/api/v1/system/health", "", http.StatusOK)
}

func Test_CheckHealth_DatabaseUnavailable_ReturnsServiceUnavailable(t *testing.T) {
	router := createHealthcheckTestRouter(
		stubAvailability{err: errors.New("database check failed: connection refused")},
		stubDisk{usedPercent: 40},
	)

	response := test_utils.MakeGetRequest(t, router, "/api/v1/system/health", "", http.StatusServiceUnavailable)

	assert.Contains(t, string(response.Body), "database check failed")
}

func Test_CheckHealth_DiskAlmostFull_ReturnsServiceUnavailable(t *testing.T) {
	router := createHealthcheckTestRouter(stubAvailability{}, stubDisk{usedPercent: 97.5})

	response := test_utils.MakeGetRequest(t, router, "/api/v1/system/health", "", http.StatusServiceUnavailable)

	assert.Contains(t, string(response.Body), "97.5% full")
}

func Test_CheckHealth_DiskUnreadable_ReturnsServiceUnavailable(t *testing.T) {
	router := createHealthcheckTestRouter(stubAvailability{}, stubDisk{err: errors.New("no such device")})

	test_utils.MakeGetRequest(t, router, "/api/v1/system/health", "", http.StatusServiceUnavailable)
}
