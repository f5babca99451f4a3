package sources

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// VideoMeta is best-effort descriptive metadata for a loaded document.
type VideoMeta struct {
	Title   string
	Channel string
}

// FetchVideoMeta scrapes the watch page for the video title and channel
// name. Callers treat failure as non-fatal — a document without metadata is
// still fully readable.
func FetchVideoMeta(ctx context.Context, videoID string) (VideoMeta, error) {
	engine.IncrMetadataRequests()
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	body, err := fetchWatchPage(ctx, watchURL)
	if err != nil {
		return VideoMeta{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return VideoMeta{}, err
	}

	var meta VideoMeta
	if title, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		meta.Title = strings.TrimSpace(title)
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
		meta.Title = strings.TrimSuffix(meta.Title, " - YouTube")
	}
	if channel, ok := doc.Find(`link[itemprop="name"]`).First().Attr("content"); ok {
		meta.Channel = strings.TrimSpace(channel)
	}
	if meta.Channel == "" {
		if channel, ok := doc.Find(`span[itemprop="author"] link[itemprop="name"]`).First().Attr("content"); ok {
			meta.Channel = strings.TrimSpace(channel)
		}
	}

	meta.Title = engine.TruncateRunes(meta.Title, 300, "")
	meta.Channel = engine.TruncateRunes(meta.Channel, 120, "")
	if meta.Title == "" && meta.Channel == "" {
		return VideoMeta{}, errors.New("no metadata in watch page")
	}
	return meta, nil
}

// fetchWatchPage prefers the browser-grade client when one was configured:
// the watch page is behind TLS fingerprinting on some egress paths.
func fetchWatchPage(ctx context.Context, watchURL string) ([]byte, error) {
	if err := waitTurn(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	if bc := engine.Cfg.BrowserClient; bc != nil {
		body, _, status, err := bc.Do(http.MethodGet, watchURL, engine.ChromeHeaders(), nil)
		if err == nil && status == http.StatusOK {
			return body, nil
		}
		// fall through to the plain client
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
}
