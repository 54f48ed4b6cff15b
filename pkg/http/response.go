package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ReadResponseBody reads and closes HTTP response body
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	defer CloseBody(resp)
	return io.ReadAll(resp.Body)
}

// CloseBody closes the response body and logs a failure instead of returning it
func CloseBody(resp *http.Response) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		slog.Error("Failed to close response body", "error", closeErr)
	}
}

// GetContentType returns the content type of the response
func GetContentType(resp *http.Response) string {
	return resp.Header.Get("Content-Type")
}

// IsSuccess reports whether status is in the 2xx range
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// EnsureSuccess checks that the response status is 2xx
func EnsureSuccess(resp *http.Response) error {
	if !IsSuccess(resp.StatusCode) {
		return fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return nil
}
