// Package scraper extracts product metadata from marketplace product pages.
package scraper

import (
	"DealScout-Backend/internal/domain"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	maxPageSize   = 5 << 20
	titleNotFound = "Title not found"
	priceNotFound = "Price not found"
)

var (
	ErrInvalidURL    = errors.New("a valid http(s) product URL is required")
	ErrNoProductData = errors.New("could not extract product data from page")
)

var (
	priceNumber = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	// Embedded image gallery JSON, highest resolution first.
	imagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"hiRes":"(https://[^"]+)"`),
		regexp.MustCompile(`"large":"(https://[^"]+)"`),
	}
	whitespace = regexp.MustCompile(`\s+`)
)

// Fetcher downloads product pages and pulls out title, price and image.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

func NewFetcher(timeout time.Duration, userAgent string, log *zap.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		log:       log,
	}
}

// Fetch returns ErrNoProductData when none of title, price or image could be found.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.ProductMetadata, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	f.log.Info("fetching product page", zap.String("host", u.Host))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch product page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read product page: %w", err)
	}

	meta, err := Parse(body)
	if err != nil {
		return nil, err
	}

	f.log.Info("extracted product data",
		zap.String("host", u.Host),
		zap.String("title", meta.Title),
		zap.String("price", meta.Price))
	return meta, nil
}

// Parse extracts product metadata from a product page body.
func Parse(body []byte) (*domain.ProductMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := whitespace.ReplaceAllString(strings.TrimSpace(doc.Find("#productTitle").First().Text()), " ")
	price := extractPrice(doc)
	image := extractImage(doc, body)

	if title == "" && price == "" && image == "" {
		return nil, ErrNoProductData
	}

	meta := &domain.ProductMetadata{Title: title, Price: price, ImageURL: image}
	if meta.Title == "" {
		meta.Title = titleNotFound
	}
	if meta.Price == "" {
		meta.Price = priceNotFound
	}
	return meta, nil
}

func extractPrice(doc *goquery.Document) string {
	for _, sel := range []string{".a-price .a-offscreen", "span.a-offscreen", "span.a-price-whole"} {
		var price string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := priceNumber.FindString(s.Text()); m != "" {
				price = "$" + strings.TrimSuffix(strings.ReplaceAll(m, ",", ""), ".")
				return false
			}
			return true
		})
		if price != "" {
			return price
		}
	}
	return ""
}

func extractImage(doc *goquery.Document, body []byte) string {
	for _, re := range imagePatterns {
		if m := re.FindSubmatch(body); m != nil {
			return string(m[1])
		}
	}
	if src, ok := doc.Find("#landingImage").First().Attr("src"); ok {
		return src
	}
	return ""
}
