package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dtnitsch/family-night/models"
	"github.com/dtnitsch/family-night/pkg/fetcher"
)

const shawshankGuide = `<html><body>
<ul><li class="ipc-metadata-list__item"><div class="ipc-html-content-inner-div">Rated R for language and prison violence</div></li></ul>
<div data-testid="rating-item"><span class="ipc-metadata-list-item__label">Sex &amp; Nudity:</span><div class="ipc-html-content-inner-div">Mild</div></div>
<div data-testid="rating-item"><span class="ipc-metadata-list-item__label">Violence &amp; Gore:</span><div class="ipc-html-content-inner-div">Severe</div></div>
</body></html>`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubFetcher serves fixed pages by id; unknown ids are no data.
type stubFetcher struct {
	pages map[string]string
	calls []string
}

func (f *stubFetcher) FetchGuide(_ context.Context, id string) (string, bool) {
	f.calls = append(f.calls, id)
	html, ok := f.pages[id]
	return html, ok
}

type panicFetcher struct{}

func (panicFetcher) FetchGuide(context.Context, string) (string, bool) {
	panic("boom")
}

func newTestServer(f GuideFetcher, opts ...Option) http.Handler {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New(f, opts...).Handler()
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestManifest(t *testing.T) {
	h := newTestServer(&stubFetcher{})

	rec := do(h, http.MethodGet, "/manifest.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var m models.Manifest
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if m.ID != "com.mhdev.family-night" {
		t.Errorf("id = %q, want %q", m.ID, "com.mhdev.family-night")
	}

	second := do(h, http.MethodGet, "/manifest.json")
	if second.Body.String() != rec.Body.String() {
		t.Errorf("manifest body changed between requests:\n%s\n%s", rec.Body.String(), second.Body.String())
	}
}

func TestManifestError(t *testing.T) {
	h := newTestServer(&stubFetcher{}, WithManifest(func() (models.Manifest, error) {
		return models.Manifest{}, errors.New("broken")
	}))

	rec := do(h, http.MethodGet, "/manifest.json")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Failed to serve manifest" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestCORSHeaders(t *testing.T) {
	f := &stubFetcher{}
	h := newTestServer(f)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "manifest", method: http.MethodGet, path: "/manifest.json", wantStatus: http.StatusOK},
		{name: "stream", method: http.MethodGet, path: "/stream/movie/tt0111161.json", wantStatus: http.StatusOK},
		{name: "test route", method: http.MethodGet, path: "/test", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "preflight", method: http.MethodOptions, path: "/stream/movie/tt0111161.json", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, tt.method, tt.path)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods"); got != corsAllowMethods {
				t.Errorf("Access-Control-Allow-Methods = %q", got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Headers"); got != corsAllowHeaders {
				t.Errorf("Access-Control-Allow-Headers = %q", got)
			}
		})
	}
}

func TestOptionsShortCircuits(t *testing.T) {
	f := &stubFetcher{}
	h := newTestServer(f)

	for _, path := range []string{"/stream/movie/tt0111161.json", "/test", "/anything"} {
		rec := do(h, http.MethodOptions, path)
		if rec.Code != http.StatusOK {
			t.Errorf("OPTIONS %s status = %d, want 200", path, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("OPTIONS %s body = %q, want empty", path, rec.Body.String())
		}
	}
	if len(f.calls) != 0 {
		t.Errorf("fetcher called %v during preflight", f.calls)
	}
}

func TestStreamEndToEnd(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/title/tt0111161/parentalguide" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, shawshankGuide)
	}))
	defer remote.Close()

	f := fetcher.NewFetcher(quietLogger())
	f.BaseURL = remote.URL + "/title/"
	h := newTestServer(f)

	rec := do(h, http.MethodGet, "/stream/movie/tt0111161.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.StreamsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode streams: %v", err)
	}
	if len(resp.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(resp.Streams))
	}

	s := resp.Streams[0]
	if s.ExternalURL != "https://www.imdb.com/title/tt0111161/parentalguide" {
		t.Errorf("externalUrl = %q", s.ExternalURL)
	}
	if s.Name != StreamName {
		t.Errorf("name = %q, want %q", s.Name, StreamName)
	}
	want := "Rated R for language and prison violence\n🟢 Sex & Nudity: Mild\n🔴 Violence & Gore: Severe"
	if s.Title != want {
		t.Errorf("title = %q, want %q", s.Title, want)
	}
}

func TestStreamTypesShareBehavior(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{"tt0903747": shawshankGuide}}
	h := newTestServer(f)

	movie := do(h, http.MethodGet, "/stream/movie/tt0903747.json")
	series := do(h, http.MethodGet, "/stream/series/tt0903747.json")

	if movie.Body.String() != series.Body.String() {
		t.Errorf("movie and series responses differ:\n%s\n%s", movie.Body.String(), series.Body.String())
	}
	if len(f.calls) != 2 || f.calls[0] != "tt0903747" || f.calls[1] != "tt0903747" {
		t.Errorf("fetch calls = %v, want bare id twice", f.calls)
	}
}

func TestStreamFetchFailureDegrades(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := remote.URL
	remote.Close()

	f := fetcher.NewFetcher(quietLogger())
	f.BaseURL = base
	h := newTestServer(f)

	rec := do(h, http.MethodGet, "/stream/series/tt0944947.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.StreamsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode streams: %v", err)
	}
	if len(resp.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(resp.Streams))
	}
	if resp.Streams[0].Title != "" {
		t.Errorf("title = %q, want empty", resp.Streams[0].Title)
	}
	if resp.Streams[0].ExternalURL != "https://www.imdb.com/title/tt0944947/parentalguide" {
		t.Errorf("externalUrl = %q", resp.Streams[0].ExternalURL)
	}
}

func TestStreamWithoutJSONSuffix(t *testing.T) {
	h := newTestServer(&stubFetcher{})

	rec := do(h, http.MethodGet, "/stream/movie/tt0111161")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTestRoute(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{SampleID: shawshankGuide}}
	h := newTestServer(f)

	rec := do(h, http.MethodGet, "/test")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	want := "Rated R for language and prison violence\n🟢 Sex & Nudity: Mild\n🔴 Violence & Gore: Severe"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
	if len(f.calls) != 1 || f.calls[0] != SampleID {
		t.Errorf("fetch calls = %v, want [%s]", f.calls, SampleID)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	h := newTestServer(panicFetcher{})

	rec := do(h, http.MethodGet, "/stream/movie/tt0111161.json")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

type abortFetcher struct{}

func (abortFetcher) FetchGuide(context.Context, string) (string, bool) {
	panic(http.ErrAbortHandler)
}

func TestAbortHandlerIsNotSwallowed(t *testing.T) {
	h := newTestServer(abortFetcher{})

	defer func() {
		if got := recover(); got != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", got)
		}
	}()
	do(h, http.MethodGet, "/stream/movie/tt0111161.json")
	t.Error("request completed, want http.ErrAbortHandler to propagate")
}
