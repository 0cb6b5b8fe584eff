package useragent

import (
	"fmt"
	"os"
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

const Unknown = "unknown"

// Device types reported by Parse.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// Parser classifies User-Agent strings into device type, browser and OS.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// DeviceInfo represents parsed device information
type DeviceInfo struct {
	DeviceType string
	Browser    string
	OS         string
}

var (
	botMarkers = []string{
		"googlebot", "bingbot", "slurp", "duckduckbot", "baiduspider",
		"yandexbot", "facebookexternalhit", "twitterbot", "linkedinbot",
		"whatsapp", "telegram", "skypeuripreview", "bot", "crawler",
		"spider", "scraper", "headless",
	}
	tabletDevices = []string{"ipad", "tablet", "kindle", "surface"}
	mobileDevices = []string{"iphone", "android", "blackberry", "windows phone", "mobile", "phone"}
	mobileOS      = []string{"ios", "android", "windows phone", "blackberry os", "firefox os", "sailfish os"}
	desktopOS     = []string{
		"windows", "mac os x", "macos", "linux", "ubuntu",
		"chrome os", "freebsd", "openbsd", "netbsd",
	}
)

// New creates a parser from a uap-core regexes.yaml file. An empty path
// uses the definitions bundled with uap-go.
func New(regexFilePath string, log *zap.Logger) (*Parser, error) {
	if regexFilePath == "" {
		log.Info("User-Agent parser initialized with bundled definitions")
		return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
	}

	regexBytes, err := os.ReadFile(regexFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regexes file: %w", err)
	}

	parser, err := uaparser.NewFromBytes(regexBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create User-Agent parser: %w", err)
	}

	log.Info("User-Agent parser initialized", zap.String("regexes_file", regexFilePath))
	return &Parser{parser: parser, log: log}, nil
}

// Parse returns nil for an empty user agent.
func (p *Parser) Parse(userAgent string) *DeviceInfo {
	if strings.TrimSpace(userAgent) == "" {
		return nil
	}

	client := p.parser.Parse(userAgent)
	info := &DeviceInfo{
		DeviceType: deviceType(client, strings.ToLower(userAgent)),
		Browser:    family(client.UserAgent.Family),
		OS:         family(client.Os.Family),
	}

	p.log.Debug("parsed User-Agent",
		zap.String("device_type", info.DeviceType),
		zap.String("browser", info.Browser),
		zap.String("os", info.OS),
	)

	return info
}

func deviceType(client *uaparser.Client, ua string) string {
	uaFamily := strings.ToLower(client.UserAgent.Family)
	if containsAny(uaFamily, botMarkers) || containsAny(ua, botMarkers) ||
		strings.EqualFold(client.Device.Family, "Spider") {
		return DeviceBot
	}

	if device := strings.ToLower(client.Device.Family); device != "" && device != "other" {
		if containsAny(device, tabletDevices) {
			return DeviceTablet
		}
		if containsAny(device, mobileDevices) {
			return DeviceMobile
		}
	}

	osFamily := strings.ToLower(client.Os.Family)
	switch {
	case containsAny(osFamily, mobileOS):
		// iPads report iOS, Android tablets omit "Mobile".
		if strings.Contains(osFamily, "ios") && strings.Contains(ua, "ipad") {
			return DeviceTablet
		}
		if strings.Contains(osFamily, "android") && !strings.Contains(ua, "mobile") {
			return DeviceTablet
		}
		return DeviceMobile
	case containsAny(osFamily, desktopOS):
		return DeviceDesktop
	}
	return Unknown
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func family(s string) string {
	if s == "" || s == "Other" {
		return Unknown
	}
	return s
}
