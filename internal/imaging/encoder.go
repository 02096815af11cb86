package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Encoder turns a remote image URL into an inline base64 data URI the PDF
// renderer can embed. Remote hosts do not reliably serve the renderer
// directly, so the bytes go through the same-origin relay first; if the relay
// is unreachable a direct fetch of the original URL is attempted once.
type Encoder struct {
	relayBaseURL string
	httpClient   *http.Client
}

func NewEncoder(relayBaseURL string, timeout time.Duration) *Encoder {
	return &Encoder{
		relayBaseURL: relayBaseURL,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// DataURI returns "data:{type};base64,{payload}" or "" on any failure. It
// never returns an error: a missing image degrades to no-image rendering.
// Every call re-fetches; nothing is cached here.
func (e *Encoder) DataURI(ctx context.Context, imageURL string) string {
	if imageURL == "" {
		return ""
	}

	relayURL := fmt.Sprintf("%s/api/proxy-image?url=%s", e.relayBaseURL, url.QueryEscape(imageURL))
	if uri, err := e.fetch(ctx, relayURL); err == nil {
		return uri
	} else {
		slog.Warn("image relay fetch failed, trying direct", "url", imageURL, "error", err)
	}

	uri, err := e.fetch(ctx, imageURL)
	if err != nil {
		slog.Warn("image fetch failed", "url", imageURL, "error", err)
		return ""
	}
	return uri
}

func (e *Encoder) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
