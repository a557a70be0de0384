package logs_parsing

import (
	"strings"
	"testing"

	logs_core "syslogbull/internal/features/logs/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parser = NewSyslogParser()

func Test_Parse_WithWellFormedLine_ExtractsFourFields(t *testing.T) {
	record, err := parser.Parse("<34>1 2024-03-05T10:00:00Z host-a sshd - id123 - login failed")

	require.NoError(t, err)
	assert.Equal(t, logs_core.LogRecord{
		Timestamp: "2024-03-05T10:00:00Z",
		Hostname:  "host-a",
		LogLevel:  "sshd",
		Message:   "login failed",
	}, record)
}

func Test_Parse_WithNonSyslogText_ReturnsParseFailure(t *testing.T) {
	record, err := parser.Parse("not a syslog line")

	var failure *logs_core.ParseFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "not a syslog line", failure.Raw)
	assert.Equal(t, logs_core.LogRecord{}, record)
}

func Test_Parse_WithDelimiterLikeTextInMessage_KeepsMessageIntact(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		message string
	}{
		{
			name:    "separator inside message",
			line:    "<13>1 2024-03-05T10:00:00Z host-a app - id1 - step 1 - step 2 - done",
			message: "step 1 - step 2 - done",
		},
		{
			name:    "angle brackets and timestamps inside message",
			line:    "<13>1 2024-03-05T10:00:00Z host-a app - id1 - <34>1 2024-01-01T00:00:00Z x y - z - w",
			message: "<34>1 2024-01-01T00:00:00Z x y - z - w",
		},
		{
			name:    "quotes and sql inside message",
			line:    `<13>1 2024-03-05T10:00:00Z host-a app - id1 - '; DROP TABLE logs; --`,
			message: `'; DROP TABLE logs; --`,
		},
		{
			name:    "empty message",
			line:    "<13>1 2024-03-05T10:00:00Z host-a app - id1 - ",
			message: "",
		},
		{
			name:    "nil values in header",
			line:    "<13>1 2024-03-05T10:00:00Z host-a app - - - payload",
			message: "payload",
		},
		{
			name:    "embedded newline",
			line:    "<13>1 2024-03-05T10:00:00Z host-a app - id1 - first\nsecond",
			message: "first\nsecond",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := parser.Parse(tt.line)

			require.NoError(t, err)
			assert.Equal(t, "2024-03-05T10:00:00Z", record.Timestamp)
			assert.Equal(t, "host-a", record.Hostname)
			assert.Equal(t, "app", record.LogLevel)
			assert.Equal(t, tt.message, record.Message)
		})
	}
}

func Test_Parse_WithMissingTokenOrSeparator_ReturnsParseFailure(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"missing priority", "1 2024-03-05T10:00:00Z host-a sshd - id123 - login failed"},
		{"non numeric priority", "<ab>1 2024-03-05T10:00:00Z host-a sshd - id123 - login failed"},
		{"missing version", "<34> 2024-03-05T10:00:00Z host-a sshd - id123 - login failed"},
		{"missing timestamp", "<34>1 host-a sshd - id123 - login failed"},
		{"timestamp without zone", "<34>1 2024-03-05T10:00:00 host-a sshd - id123 - login failed"},
		{"timestamp with offset", "<34>1 2024-03-05T10:00:00+02:00 host-a sshd - id123 - login failed"},
		{"missing hostname and app", "<34>1 2024-03-05T10:00:00Z - id123 - login failed"},
		{"missing first separator", "<34>1 2024-03-05T10:00:00Z host-a sshd id123 - login failed"},
		{"missing second separator", "<34>1 2024-03-05T10:00:00Z host-a sshd - id123 login failed"},
		{"leading garbage", "xx <34>1 2024-03-05T10:00:00Z host-a sshd - id123 - login failed"},
		{"decode sentinel in header", "<34>1 2024-03-05T10:00:00Z host� sshd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.line)

			var failure *logs_core.ParseFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.line, failure.Raw)
		})
	}
}

func Test_Parse_WithFractionalSeconds_KeepsTimestampVerbatim(t *testing.T) {
	record, err := parser.Parse("<34>1 2024-03-05T10:00:00.123456Z host-a sshd - id123 - ok")

	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T10:00:00.123456Z", record.Timestamp)
}

func Test_Parse_WithTrailingLineTerminator_DropsOnlyTerminator(t *testing.T) {
	for _, suffix := range []string{"\n", "\r\n"} {
		record, err := parser.Parse("<34>1 2024-03-05T10:00:00Z host-a sshd - id123 - login failed " + suffix)

		require.NoError(t, err)
		assert.Equal(t, "login failed ", record.Message)
	}
}

func Test_Parse_SameMalformedLineTwice_ReturnsIndependentFailures(t *testing.T) {
	_, first := parser.Parse("garbage")
	_, second := parser.Parse("garbage")

	assert.Error(t, first)
	assert.Error(t, second)
	assert.NotSame(t, first, second)
}

func Test_Parse_WithLongMessage_CapturesWholePayload(t *testing.T) {
	payload := strings.Repeat("a - b ", 5_000)

	record, err := parser.Parse("<34>1 2024-03-05T10:00:00Z host-a sshd - id123 - " + payload)

	require.NoError(t, err)
	assert.Equal(t, payload, record.Message)
}

func Test_NewSyslogParser_SeparateInstances_ParseIdentically(t *testing.T) {
	line := "<34>1 2024-03-05T10:00:00Z host-a sshd - id123 - same"

	first, err := NewSyslogParser().Parse(line)
	require.NoError(t, err)
	second, err := NewSyslogParser().Parse(line)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
