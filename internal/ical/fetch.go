package ical

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/logger"
)

// Fetcher retrieves a raw feed document. The sync reconciler depends on this
// indirection so tests (and alternate transports) can substitute the source.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (string, error)
}

// HTTPFetcher fetches feeds over plain HTTP(S) with a bounded timeout. A hung
// upstream aborts the whole sync with a FETCH_TIMEOUT error rather than
// stalling the caller.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher whose requests give up after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeUpstreamHTTP, "invalid feed URL", http.StatusBadGateway)
	}
	req.Header.Set("Accept", "text/calendar, text/plain")

	logger.ExternalServiceCall("feed", "fetch", "url", redactURL(feedURL))

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", apperrors.FetchTimeout(err, redactURL(feedURL))
		}
		return "", apperrors.Wrap(err, apperrors.CodeUpstreamHTTP, "feed unreachable", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.UpstreamHTTP(errors.New(resp.Status), resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", apperrors.FetchTimeout(err, redactURL(feedURL))
		}
		return "", apperrors.Wrap(err, apperrors.CodeUpstreamHTTP, "failed reading feed body", http.StatusBadGateway)
	}

	logger.ExternalServiceResult("feed", "fetch", nil, "url", redactURL(feedURL), "bytes", len(body))
	return string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Timeout()
	}
	return false
}

// redactURL trims a feed URL to its host for logging. Feed URLs routinely
// embed access tokens in path or query.
func redactURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return "feed://...(redacted)"
	}
	return parsed.Scheme + "://" + parsed.Host + "/...(redacted)"
}
