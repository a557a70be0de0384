package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RequestOptions struct {
	Method         string
	URL            string
	AuthToken      string
	Headers        map[string]string
	RemoteAddr     string
	Body           any
	ExpectedStatus int
}

type TestResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	t.Helper()

	var body *bytes.Buffer
	if options.Body != nil {
		data, err := json.Marshal(options.Body)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(options.Method, options.URL, body)
	require.NoError(t, err)

	if options.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}

	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}

	if options.RemoteAddr != "" {
		req.RemoteAddr = options.RemoteAddr
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if options.ExpectedStatus != 0 {
		assert.Equal(t, options.ExpectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	}

	return &TestResponse{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
		Headers:    w.Header(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url string,
	authToken string,
	expectedStatus int,
	responseStruct any,
) {
	t.Helper()

	response := MakeGetRequest(t, router, url, authToken, expectedStatus)

	err := json.Unmarshal(response.Body, responseStruct)
	require.NoError(t, err, "failed to unmarshal response: %s", string(response.Body))
}
