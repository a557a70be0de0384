package logs_core_tests

import (
	"context"
	"testing"

	logs_core "syslogbull/internal/features/logs/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetLogCoreRepository_CalledTwice_ReturnsSameConnectedInstance(t *testing.T) {
	first := logs_core.GetLogCoreRepository()
	second := logs_core.GetLogCoreRepository()

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.NoError(t, first.Ping(context.Background()))
}
