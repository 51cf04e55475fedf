package gcs

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/common"
)

// RetryConfig configures RetryTransport.
type RetryConfig struct {
	MaxRetries int
	RetryCodes []int
	RetryDelay time.Duration
}

// RetryTransport is a RoundTripper that retries requests on network errors
// and on the configured status codes, with linear backoff.
type RetryTransport struct {
	Config RetryConfig
	http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (response *http.Response, err error) {
	// Buffer the body so it can be replayed on each attempt.
	var buffer []byte
	if req.Body != nil {
		buffer, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		_ = req.Body.Close()
	}

	for attempt := 0; attempt <= t.Config.MaxRetries; attempt++ {
		if len(buffer) > 0 {
			req.Body = io.NopCloser(bytes.NewBuffer(buffer))
		}

		response, err = t.RoundTripper.RoundTrip(req)
		if err != nil {
			common.Logger().Warn("Network error, retrying request",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt),
				zap.Error(err))

			time.Sleep(t.Config.RetryDelay * time.Duration(attempt+1))
			continue
		}

		isRetryable := false
		for _, code := range t.Config.RetryCodes {
			if response.StatusCode == code {
				isRetryable = true
				break
			}
		}

		if isRetryable {
			common.Logger().Warn("Retryable status code, retrying request",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt),
				zap.Int("status", response.StatusCode))

			_ = response.Body.Close()
			time.Sleep(t.Config.RetryDelay * time.Duration(attempt+1))
			continue
		}

		return
	}

	return
}

// acceptEncoding advertises the codings decompressBody understands.
const acceptEncoding = "gzip, deflate, br, zstd"

// decompressBody replaces resp.Body with a reader decoding the negotiated
// content encoding.
func decompressBody(resp *http.Response) error {
	var reader io.Reader
	var err error
	switch contentEncoding := strings.ToLower(resp.Header.Get("Content-Encoding")); contentEncoding {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)

	case "deflate":
		reader = flate.NewReader(resp.Body)

	case "br":
		reader = brotli.NewReader(resp.Body)

	case "zstd":
		reader, err = zstd.NewReader(resp.Body)

	case "", "identity":
		return nil

	default:
		return fmt.Errorf("unknown content encoding: %s", contentEncoding)
	}

	if err != nil {
		return err
	}

	resp.Header.Del("Content-Encoding")
	resp.Body = struct {
		io.Reader
		io.Closer
	}{reader, resp.Body}
	return nil
}
