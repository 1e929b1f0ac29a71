package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// IMDbTitleBase is the prefix of every IMDb title page.
const IMDbTitleBase = "https://www.imdb.com/title/"

// UserAgent is sent with every request. IMDb answers 403 to clients without a browser UA.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Fetcher struct {
	client *http.Client
	logger *slog.Logger

	// BaseURL is joined with the escaped identifier and "/parentalguide".
	BaseURL string
}

// NewFetcher returns a Fetcher pointed at IMDb. The client has no timeout;
// callers bound a fetch through its context.
func NewFetcher(logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:  &http.Client{},
		logger:  logger,
		BaseURL: IMDbTitleBase,
	}
}

// GuideURL returns the IMDb parental guide address for id.
func GuideURL(id string) string {
	return guideURL(IMDbTitleBase, id)
}

func guideURL(base, id string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(id) + "/parentalguide"
}

// FetchGuide downloads the parental guide page for id. Any failure is logged
// and reported as ok=false; an empty page with a 2xx status is ok=true.
func (f *Fetcher) FetchGuide(ctx context.Context, id string) (string, bool) {
	target := guideURL(f.BaseURL, id)
	f.logger.Info("fetching parental guide", "url", target)

	body, err := f.GetHtmlBytes(ctx, target)
	if err != nil {
		f.logger.Error("error fetching parental guide", "url", target, "error", err)
		return "", false
	}
	return string(body), true
}

func (f *Fetcher) GetHtmlBytes(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch data: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}
