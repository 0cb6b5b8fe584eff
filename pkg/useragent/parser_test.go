package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParser_Parse(t *testing.T) {
	p, err := New("", zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name       string
		ua         string
		wantDevice string
		wantOS     string
	}{
		{
			name:       "desktop chrome on windows",
			ua:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			wantDevice: DeviceDesktop,
			wantOS:     "Windows",
		},
		{
			name:       "iphone safari",
			ua:         "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
			wantDevice: DeviceMobile,
			wantOS:     "iOS",
		},
		{
			name:       "ipad",
			ua:         "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
			wantDevice: DeviceTablet,
			wantOS:     "iOS",
		},
		{
			name:       "googlebot",
			ua:         "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			wantDevice: DeviceBot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := p.Parse(tt.ua)
			require.NotNil(t, info)
			assert.Equal(t, tt.wantDevice, info.DeviceType)
			if tt.wantOS != "" {
				assert.Equal(t, tt.wantOS, info.OS)
			}
		})
	}

	t.Run("empty user agent", func(t *testing.T) {
		assert.Nil(t, p.Parse("  "))
	})

	t.Run("missing regexes file", func(t *testing.T) {
		_, err := New("/nonexistent/regexes.yaml", zap.NewNop())
		assert.Error(t, err)
	})
}
