package http

import (
	"DealScout-Backend/internal/auth"
	"DealScout-Backend/internal/cache"
	"DealScout-Backend/internal/config"
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/export"
	"DealScout-Backend/internal/repository/memory"
	"DealScout-Backend/internal/scraper"
	"DealScout-Backend/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type failingClickStore struct {
	*memory.MemStorage
}

func (failingClickStore) SaveClick(context.Context, *domain.ClickEvent) error {
	return errors.New("connection refused")
}

// growingClickStore records one more click after every listing, as a
// concurrent storefront request would.
type growingClickStore struct {
	*memory.MemStorage
}

func (s growingClickStore) ListClicks(ctx context.Context, filter domain.ClickFilter) ([]*domain.ClickEvent, error) {
	clicks, err := s.MemStorage.ListClicks(ctx, filter)
	if err != nil {
		return nil, err
	}
	late := &domain.ClickEvent{ID: uuid.New(), ProductTitle: "Late Click", Platform: domain.PlatformEbay, ClickedAt: time.Now()}
	return clicks, s.MemStorage.SaveClick(ctx, late)
}

type stubFetcher struct {
	meta *domain.ProductMetadata
	err  error
}

func (f stubFetcher) Fetch(context.Context, string) (*domain.ProductMetadata, error) {
	return f.meta, f.err
}

type testEnv struct {
	store   *memory.MemStorage
	jwt     *auth.JWTService
	roles   *service.RoleService
	handler http.Handler
}

func newTestEnv(t *testing.T, fetcher ProductFetcher) *testEnv {
	t.Helper()
	log := zap.NewNop()
	store := memory.New()

	activity := service.NewActivityService(store, 100, log)
	roles := service.NewRoleService(store, activity, log)
	tracking := service.NewTrackingService(store, activity, nil, nil, config.Tracking{ListCap: 200, RecentDefault: 20}, log)
	settings := service.NewSettingsService(store, cache.Noop{}, time.Minute, activity, log)
	jwtSvc := auth.NewJWTService(&auth.JWTConfig{SecretKey: []byte("test-secret")})

	if fetcher == nil {
		fetcher = stubFetcher{err: scraper.ErrNoProductData}
	}

	ctx := context.Background()
	for user, role := range map[string]domain.Role{
		"admin":  domain.RoleSuperAdmin,
		"editor": domain.RoleAffiliateEditor,
		"writer": domain.RoleContentManager,
	} {
		_, err := store.SetUserRole(ctx, user, role)
		require.NoError(t, err)
	}

	srv := NewServer(Dependencies{
		Storage:        store,
		Tracking:       tracking,
		Settings:       settings,
		Roles:          roles,
		Activity:       activity,
		Products:       fetcher,
		JWT:            jwtSvc,
		AllowedOrigins: []string{"https://admin.example"},
		Version:        "test",
	}, log)

	return &testEnv{store: store, jwt: jwtSvc, roles: roles, handler: srv.SetupRoutes()}
}

func (e *testEnv) do(t *testing.T, method, target, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		token, err := e.jwt.GenerateAccessToken(user, user+"@example.com", time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestTrackClick(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("records click with request metadata", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/track-click",
			bytes.NewBufferString(`{"productId":"p-1","productTitle":"Wireless Earbuds","platform":"amazon","affiliateLink":"https://amzn.to/x"}`))
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		req.Header.Set("User-Agent", "Mozilla/5.0")
		req.Header.Set("Referer", "https://shop.example/deals")
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

		clicks, err := env.store.ListClicks(context.Background(), domain.ClickFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, clicks, 1)
		c := clicks[0]
		assert.Equal(t, "Wireless Earbuds", c.ProductTitle)
		assert.Equal(t, domain.PlatformAmazon, c.Platform)
		assert.Equal(t, "203.0.113.7", *c.IPAddress)
		assert.Equal(t, "Mozilla/5.0", *c.UserAgent)
		assert.Equal(t, "https://shop.example/deals", *c.Referrer)
		assert.False(t, c.Converted)
		assert.Nil(t, c.ConvertedAt)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/track-click", "", map[string]string{"platform": "amazon"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Product title and platform are required"}`, rec.Body.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/track-click", "", `{"productTitle":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid request format"}`, rec.Body.String())
	})

	t.Run("garbage forwarded header still records the click", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/track-click",
			bytes.NewBufferString(`{"productTitle":"USB Hub","platform":"ebay"}`))
		req.Header.Set("X-Forwarded-For", strings.Repeat("x", 300)+", 10.0.0.1")
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		clicks, err := env.store.ListClicks(context.Background(), domain.ClickFilter{Search: "usb hub", Limit: 1})
		require.NoError(t, err)
		require.Len(t, clicks, 1)
		assert.Equal(t, "unknown", *clicks[0].IPAddress)
	})

	t.Run("preflight", func(t *testing.T) {
		rec := env.do(t, http.MethodOptions, "/api/track-click", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		log := zap.NewNop()
		store := memory.New()
		tracking := service.NewTrackingService(failingClickStore{store}, service.NewActivityService(store, 10, log), nil, nil, config.Tracking{}, log)
		h := NewTrackHandler(tracking, log)

		req := httptest.NewRequest(http.MethodPost, "/api/track-click", bytes.NewBufferString(`{"productTitle":"X","platform":"temu"}`))
		rec := httptest.NewRecorder()
		h.TrackClick(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to track click"}`, rec.Body.String())
	})
}

func TestExtractIPAddress(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded for first hop", map[string]string{"X-Forwarded-For": " 198.51.100.1 , 10.0.0.2"}, "198.51.100.1"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "198.51.100.9"}, "198.51.100.9"},
		{"forwarded wins over cloudflare", map[string]string{"X-Forwarded-For": "198.51.100.1", "CF-Connecting-IP": "198.51.100.9"}, "198.51.100.1"},
		{"empty forwarded falls through", map[string]string{"X-Forwarded-For": " ", "CF-Connecting-IP": "198.51.100.9"}, "198.51.100.9"},
		{"nothing", nil, "unknown"},
		{"garbage forwarded falls back to cloudflare", map[string]string{"X-Forwarded-For": "not-an-ip, 10.0.0.1", "CF-Connecting-IP": "198.51.100.9"}, "198.51.100.9"},
		{"oversized forwarded token", map[string]string{"X-Forwarded-For": strings.Repeat("a", 100)}, "unknown"},
		{"forwarded with port", map[string]string{"X-Forwarded-For": "203.0.113.7:51234"}, "203.0.113.7"},
		{"ipv6", map[string]string{"X-Forwarded-For": "2001:db8::1"}, "2001:db8::1"},
		{"bracketed ipv6 with port", map[string]string{"X-Forwarded-For": "[2001:db8::1]:443"}, "2001:db8::1"},
		{"garbage cloudflare", map[string]string{"CF-Connecting-IP": "<script>"}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/track-click", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extractIPAddress(req))
		})
	}

	meta := extractClientMeta(httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Nil(t, meta.Referrer)
}

func TestAdminClicks(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, body := range []string{
		`{"productTitle":"Wireless Earbuds","platform":"amazon"}`,
		`{"productTitle":"Phone Case","platform":"temu"}`,
		`{"productTitle":"Vintage Camera","platform":"ebay"}`,
	} {
		rec := env.do(t, http.MethodPost, "/api/track-click", "", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("requires auth", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/clicks", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("requires role", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/clicks", "stranger", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("list and filter", func(t *testing.T) {
		var resp ClicksResponse
		rec := env.do(t, http.MethodGet, "/api/admin/clicks", "writer", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Clicks, 3)

		rec = env.do(t, http.MethodGet, "/api/admin/clicks?platform=temu", "writer", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Clicks, 1)
		assert.Equal(t, "Phone Case", resp.Clicks[0].ProductTitle)

		rec = env.do(t, http.MethodGet, "/api/admin/clicks?q=camera&platform=all", "writer", nil)
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Clicks, 1)
		assert.Equal(t, domain.PlatformEbay, resp.Clicks[0].Platform)

		rec = env.do(t, http.MethodGet, "/api/admin/clicks/recent?limit=2", "writer", nil)
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Clicks, 2)
	})

	t.Run("invalid filters", func(t *testing.T) {
		for _, target := range []string{
			"/api/admin/clicks?status=refunded",
			"/api/admin/clicks?platform=aliexpress",
			"/api/admin/clicks?limit=-1",
			"/api/admin/clicks/recent?limit=abc",
		} {
			rec := env.do(t, http.MethodGet, target, "writer", nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
	})

	t.Run("conversion update", func(t *testing.T) {
		clicks, err := env.store.ListClicks(context.Background(), domain.ClickFilter{Search: "earbuds", Limit: 1})
		require.NoError(t, err)
		require.Len(t, clicks, 1)
		target := "/api/admin/clicks/" + clicks[0].ID.String()

		rec := env.do(t, http.MethodPatch, target, "writer", map[string]bool{"converted": true})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.do(t, http.MethodPatch, target, "editor", map[string]bool{"converted": true})
		require.Equal(t, http.StatusOK, rec.Code)
		var updated domain.ClickEvent
		decodeBody(t, rec, &updated)
		assert.True(t, updated.Converted)
		require.NotNil(t, updated.ConvertedAt)
		assert.False(t, updated.ConvertedAt.Before(updated.ClickedAt))

		var summary struct {
			TotalClicks      int64   `json:"total_clicks"`
			TotalConversions int64   `json:"total_conversions"`
			ConversionRate   float64 `json:"conversion_rate"`
		}
		rec = env.do(t, http.MethodGet, "/api/admin/clicks/summary?platform=amazon", "editor", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeBody(t, rec, &summary)
		assert.Equal(t, int64(1), summary.TotalClicks)
		assert.Equal(t, int64(1), summary.TotalConversions)
		assert.Equal(t, 100.0, summary.ConversionRate)

		var resp ClicksResponse
		rec = env.do(t, http.MethodGet, "/api/admin/clicks?status=pending", "editor", nil)
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Clicks, 2)
	})

	t.Run("update errors", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/admin/clicks/not-a-uuid", "editor", map[string]bool{"converted": true})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodPatch, "/api/admin/clicks/7b0e5c4e-6f5e-4c55-9d0c-3f1c2b9b2a11", "editor", map[string]bool{"converted": true})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodPatch, "/api/admin/clicks/7b0e5c4e-6f5e-4c55-9d0c-3f1c2b9b2a11", "editor", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("export", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/clicks/export", "writer", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=\"click_events_")
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
	})

	t.Run("admin preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/admin/clicks", nil)
		req.Header.Set("Origin", "https://admin.example")
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://admin.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestExport_SummaryMatchesRows(t *testing.T) {
	log := zap.NewNop()
	store := memory.New()
	ctx := context.Background()
	for _, title := range []string{"Wireless Earbuds", "Phone Case"} {
		require.NoError(t, store.SaveClick(ctx, &domain.ClickEvent{ID: uuid.New(), ProductTitle: title, Platform: domain.PlatformAmazon, ClickedAt: time.Now()}))
	}
	tracking := service.NewTrackingService(growingClickStore{store}, service.NewActivityService(store, 10, log), nil, nil, config.Tracking{}, log)
	h := NewClicksHandler(tracking, log)

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/api/admin/clicks/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	xl, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = xl.Close() }()

	clickRows, err := xl.GetRows(export.ClicksSheet)
	require.NoError(t, err)
	summaryRows, err := xl.GetRows(export.SummarySheet)
	require.NoError(t, err)

	total := summaryRows[len(summaryRows)-1]
	assert.Equal(t, "total", total[0])
	assert.Equal(t, strconv.Itoa(len(clickRows)-1), total[1])
	assert.Equal(t, "2", total[1])
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPut, "/api/admin/settings", "editor",
		map[string]interface{}{"settings": map[string]string{"site_name": "DealScout"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/admin/settings", "admin",
		map[string]interface{}{"settings": map[string]interface{}{"site_name": "DealScout", "footer_text": nil}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SettingsPayload
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.Settings["site_name"])
	assert.Equal(t, "DealScout", *resp.Settings["site_name"])
	assert.Contains(t, resp.Settings, "footer_text")
	assert.Nil(t, resp.Settings["footer_text"])

	rec = env.do(t, http.MethodPut, "/api/admin/settings", "admin", map[string]interface{}{"settings": map[string]string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRolesEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("me", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/me", "editor", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var me MeResponse
		decodeBody(t, rec, &me)
		assert.Equal(t, "editor", me.UserID)
		assert.Equal(t, "editor@example.com", me.Email)
		assert.Equal(t, domain.RoleAffiliateEditor, me.Role)
		assert.Contains(t, me.Permissions, domain.PermTrackingUpdate)

		rec = env.do(t, http.MethodGet, "/api/admin/me", "stranger", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("assign and revoke", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/admin/roles/new-user", "editor", AssignRoleRequest{Role: domain.RoleContentManager})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.do(t, http.MethodPut, "/api/admin/roles/new-user", "admin", AssignRoleRequest{Role: domain.RoleContentManager})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodPut, "/api/admin/roles/new-user", "admin", AssignRoleRequest{Role: "owner"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var roles RolesResponse
		rec = env.do(t, http.MethodGet, "/api/admin/roles", "admin", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeBody(t, rec, &roles)
		assert.Len(t, roles.Roles, 4)

		rec = env.do(t, http.MethodDelete, "/api/admin/roles/new-user", "admin", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/admin/roles/new-user", "admin", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodDelete, "/api/admin/roles/admin", "admin", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("activity reflects role changes", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/activity?limit=2", "admin", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp ActivityResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, domain.ActionRoleRevoked, resp.Entries[0].Action)

		rec = env.do(t, http.MethodGet, "/api/admin/activity", "writer", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestBootstrapAdmins(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/admin/roles", "founder", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	require.NoError(t, env.roles.Bootstrap(context.Background(), []string{" founder ", ""}))

	t.Run("bootstrapped subject manages roles", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/roles", "founder", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var roles RolesResponse
		decodeBody(t, rec, &roles)
		assert.Len(t, roles.Roles, 4)

		rec = env.do(t, http.MethodPut, "/api/admin/roles/new-editor", "founder", AssignRoleRequest{Role: domain.RoleAffiliateEditor})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other subjects stay forbidden", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/roles", "stranger", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestFetchProduct(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    stubFetcher
		body       interface{}
		wantStatus int
	}{
		{"ok", stubFetcher{meta: &domain.ProductMetadata{Title: "Earbuds", Price: "$19.99"}}, FetchProductRequest{URL: "https://www.amazon.com/dp/B0"}, http.StatusOK},
		{"missing url", stubFetcher{}, FetchProductRequest{}, http.StatusBadRequest},
		{"invalid url", stubFetcher{err: scraper.ErrInvalidURL}, FetchProductRequest{URL: "ftp://x"}, http.StatusBadRequest},
		{"no data", stubFetcher{err: scraper.ErrNoProductData}, FetchProductRequest{URL: "https://example.com"}, http.StatusBadRequest},
		{"upstream failure", stubFetcher{err: errors.New("timeout")}, FetchProductRequest{URL: "https://example.com"}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.fetcher)
			rec := env.do(t, http.MethodPost, "/api/admin/products/fetch", "writer", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var meta domain.ProductMetadata
				decodeBody(t, rec, &meta)
				assert.Equal(t, "Earbuds", meta.Title)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)

	rec = env.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = env.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
