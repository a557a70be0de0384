package logs_receiving_tests

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	logs_core "syslogbull/internal/features/logs/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TCPIngestion_WithValidLine_RecordStored(t *testing.T) {
	writer := NewFakeLogWriter()
	running := StartTestSupervisor(t, writer)
	conn := DialTCP(t, running)

	_, err := fmt.Fprintf(conn, "%s\n", ValidSyslogLine("web-1", "INFO", "user logged in - id=42"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return writer.Count() == 1 }, eventuallyTimeout, 10*time.Millisecond)

	record := writer.Records()[0]
	assert.Equal(t, "2024-03-05T10:00:00Z", record.Timestamp)
	assert.Equal(t, "web-1", record.Hostname)
	assert.Equal(t, "INFO", record.LogLevel)
	assert.Equal(t, "user logged in - id=42", record.Message)
}

func Test_TCPIngestion_MalformedThenValid_ConnectionStaysOpen(t *testing.T) {
	writer := NewFakeLogWriter()
	running := StartTestSupervisor(t, writer)
	conn := DialTCP(t, running)

	_, err := fmt.Fprint(conn, "this is not syslog\n")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = fmt.Fprintf(conn, "%s\n", ValidSyslogLine("db-1", "WARN", "after garbage"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return writer.Count() == 1 }, eventuallyTimeout, 10*time.Millisecond)
	assert.Equal(t, "after garbage", writer.Records()[0].Message)
}

func Test_TCPIngestion_StorageFailure_NextMessageStillStored(t *testing.T) {
	writer := NewFakeLogWriter()
	writer.FailForHostname("broken")
	running := StartTestSupervisor(t, writer)
	conn := DialTCP(t, running)

	_, err := fmt.Fprintf(conn, "%s\n%s\n",
		ValidSyslogLine("broken", "ERROR", "dropped"),
		ValidSyslogLine("healthy", "INFO", "kept"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return writer.Count() == 1 }, eventuallyTimeout, 10*time.Millisecond)
	assert.Equal(t, "healthy", writer.Records()[0].Hostname)
}

func Test_TCPIngestion_OctetCountedFrames_MessagesStored(t *testing.T) {
	writer := NewFakeLogWriter()
	running := StartTestSupervisor(t, writer)
	conn := DialTCP(t, running)

	first := ValidSyslogLine("app-1", "INFO", "first")
	second := ValidSyslogLine("app-1", "INFO", "second\nwith newline")
	_, err := fmt.Fprintf(conn, "%d %s%d %s", len(first), first, len(second), second)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return writer.Count() == 2 }, eventuallyTimeout, 10*time.Millisecond)

	records := writer.Records()
	assert.Equal(t, "first", records[0].Message)
	assert.Equal(t, "second\nwith newline", records[1].Message)
}

func Test_TCPIngestion_UnterminatedLineBeforeClose_RecordStored(t *testing.T) {
	writer := NewFakeLogWriter()
	running := StartTestSupervisor(t, writer)
	conn := DialTCP(t, running)

	_, err := fmt.Fprint(conn, ValidSyslogLine("edge-1", "DEBUG", "no trailing newline"))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return writer.Count() == 1 }, eventuallyTimeout, 10*time.Millisecond)
	assert.Equal(t, "no trailing newline", writer.Records()[0].Message)
}

func Test_TCPIngestion_ManyConcurrentConnections_AllStoredInPerConnectionOrder(t *testing.T) {
	const connectionsCount = 8
	const messagesPerConnection = 25

	writer := NewFakeLogWriter()
	running := StartTestSupervisor(t, writer)

	var wg sync.WaitGroup
	for c := range connectionsCount {
		conn := DialTCP(t, running)

		wg.Add(1)
		go func() {
			defer wg.Done()

			var payload strings.Builder
			for m := range messagesPerConnection {
				payload.WriteString(ValidSyslogLine(fmt.Sprintf("host-%d", c), "INFO", fmt.Sprintf("%d", m)))
				payload.WriteString("\n")
			}

			_, err := conn.Write([]byte(payload.String()))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return writer.Count() == connectionsCount*messagesPerConnection
	}, eventuallyTimeout, 10*time.Millisecond)

	perHost := make(map[string][]string)
	for _, record := range writer.Records() {
		perHost[record.Hostname] = append(perHost[record.Hostname], record.Message)
	}

	require.Len(t, perHost, connectionsCount)
	for hostname, messages := range perHost {
		require.Len(t, messages, messagesPerConnection, hostname)
		for m, message := range messages {
			assert.Equal(t, fmt.Sprintf("%d", m), message, hostname)
		}
	}
}

func Test_TCPIngestion_WithSqliteRepository_RowsPersisted(t *testing.T) {
	repository := logs_core.CreateTestLogCoreRepository(t)
	running := StartTestSupervisor(t, repository)
	conn := DialTCP(t, running)

	for i := range 3 {
		_, err := fmt.Fprintf(conn, "%s\n", ValidSyslogLine("persist-1", "INFO", fmt.Sprintf("row %d", i)))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		count, err := repository.CountLogs(context.Background())
		return err == nil && count == 3
	}, eventuallyTimeout, 20*time.Millisecond)

	records, err := repository.SearchLogs(context.Background(), logs_core.LogSearchFilter{Hostname: "persist-1", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
