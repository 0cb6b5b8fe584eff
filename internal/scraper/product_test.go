package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const productPage = `<html><body>
<span id="productTitle" class="a-size-large">
    Wireless   Earbuds,
    Bluetooth 5.3
</span>
<div id="corePrice_feature_div"><span class="a-price"><span class="a-offscreen">$1,299.99</span></span></div>
<img id="landingImage" src="https://m.media-amazon.com/images/I/small.jpg">
<script>var data = {"colorImages":{"initial":[{"hiRes":"https://m.media-amazon.com/images/I/hires.jpg","large":"https://m.media-amazon.com/images/I/large.jpg"}]}};</script>
</body></html>`

func TestParse(t *testing.T) {
	t.Run("full product page", func(t *testing.T) {
		meta, err := Parse([]byte(productPage))
		require.NoError(t, err)
		assert.Equal(t, "Wireless Earbuds, Bluetooth 5.3", meta.Title)
		assert.Equal(t, "$1299.99", meta.Price)
		assert.Equal(t, "https://m.media-amazon.com/images/I/hires.jpg", meta.ImageURL)
	})

	t.Run("landing image and whole price fallback", func(t *testing.T) {
		page := `<html><body><span class="a-price-whole">49.</span>
<img id="landingImage" src="https://m.media-amazon.com/images/I/landing.jpg"></body></html>`
		meta, err := Parse([]byte(page))
		require.NoError(t, err)
		assert.Equal(t, titleNotFound, meta.Title)
		assert.Equal(t, "$49", meta.Price)
		assert.Equal(t, "https://m.media-amazon.com/images/I/landing.jpg", meta.ImageURL)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := Parse([]byte(`<html><body><p>Robot check</p></body></html>`))
		assert.ErrorIs(t, err, ErrNoProductData)
	})
}

func TestFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "DealScoutTest/1.0", zap.NewNop())
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		meta, err := f.Fetch(ctx, srv.URL+"/dp/B000")
		require.NoError(t, err)
		assert.Equal(t, "Wireless Earbuds, Bluetooth 5.3", meta.Title)
		assert.Equal(t, "DealScoutTest/1.0", gotUA)
	})

	t.Run("upstream error", func(t *testing.T) {
		_, err := f.Fetch(ctx, srv.URL+"/missing")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoProductData)
	})

	t.Run("invalid url", func(t *testing.T) {
		for _, u := range []string{"", "ftp://example.com/x", "not a url", "https://"} {
			_, err := f.Fetch(ctx, u)
			assert.ErrorIs(t, err, ErrInvalidURL, u)
		}
	})
}
