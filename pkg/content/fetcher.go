// Package content fetches published pages and turns them into analysis
// inputs: trafilatura extracts the article body, goquery scrapes the SEO
// metadata from the page head.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/seoscope/seoscope/pkg/domain"
)

const maxBodySize = 10 * 1024 * 1024 // 10MB

// Page is a fetched article ready for analysis
type Page struct {
	URL      string
	Content  string // extracted article markup
	Metadata domain.SEOMetadata
}

// Fetcher retrieves live pages for analysis
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves the page and extracts article content plus metadata
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Page, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SEOScope/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", urlStr, err)
	}

	content, err := extractArticle(body, parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extract content from %s: %w", urlStr, err)
	}

	md, err := scrapeMetadata(body, parsedURL)
	if err != nil {
		return nil, fmt.Errorf("scrape metadata from %s: %w", urlStr, err)
	}

	return &Page{URL: urlStr, Content: content, Metadata: md}, nil
}

// extractArticle pulls the article body out of the page. The rendered
// content node is preferred over plain text so heading and image structure
// survives for the analyzers.
func extractArticle(body []byte, pageURL *url.URL) (string, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   true,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted")
	}

	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err == nil {
			return strings.TrimSpace(buf.String()), nil
		}
	}

	content := strings.TrimSpace(result.ContentText)
	if content == "" {
		return "", fmt.Errorf("no text content extracted")
	}
	return content, nil
}

// scrapeMetadata reads SEO metadata from the page head. Open Graph values
// win over plain tags when both are present.
func scrapeMetadata(body []byte, pageURL *url.URL) (domain.SEOMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.SEOMetadata{}, fmt.Errorf("parse page: %w", err)
	}

	md := domain.SEOMetadata{Slug: slugFromPath(pageURL.Path)}

	md.Title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if md.Title == "" {
		md.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	md.MetaDescription = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if md.MetaDescription == "" {
		md.MetaDescription = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}

	if keywords := doc.Find(`meta[name="keywords"]`).AttrOr("content", ""); keywords != "" {
		terms := strings.Split(keywords, ",")
		md.FocusKeyword = strings.TrimSpace(terms[0])
		for _, term := range terms[1:] {
			if t := strings.TrimSpace(term); t != "" {
				md.SecondaryKeywords = append(md.SecondaryKeywords, t)
			}
		}
	}

	md.HeroImageURL = strings.TrimSpace(doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))
	if first := doc.Find("img[alt]").First(); first.Length() > 0 {
		md.HeroImageAlt = strings.TrimSpace(first.AttrOr("alt", ""))
	}

	return md, nil
}

// slugFromPath takes the last path segment, without extension
func slugFromPath(p string) string {
	seg := path.Base(strings.TrimSuffix(p, "/"))
	if seg == "." || seg == "/" {
		return ""
	}
	if ext := path.Ext(seg); ext != "" {
		seg = strings.TrimSuffix(seg, ext)
	}
	return seg
}
