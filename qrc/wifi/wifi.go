package wifi

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jamedeus/qrgen/qrc/common"
)

const (
	label = "wifi-qr"
	desc  = "Wifi network credentials (WPA)"

	maxFontSize = 64
	ssidLabel   = "SSID: "
	passLabel   = "PASS: "
)

// GetTypeInfo returns the info needed to fit into the generator
func GetTypeInfo() (string, string, common.FuncParseRequest) {
	return label, desc, parseRequest
}

// Qr is a wifi network QR code
type Qr struct {
	Ssid     string
	Password string
}

// New trims the credentials and returns a wifi QR code
func New(ssid, password string) *Qr {
	return &Qr{
		Ssid:     strings.TrimSpace(ssid),
		Password: strings.TrimSpace(password),
	}
}

type request struct {
	Ssid     string `json:"ssid"`
	Password string `json:"password"`
}

func parseRequest(body []byte) (common.QrVariant, error) {
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("parse %s request: %w", label, err)
	}
	return New(req.Ssid, req.Password), nil
}

// Payload returns the WIFI string
func (q *Qr) Payload() string {
	return fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;;", q.Ssid, q.Password)
}

// CaptionText returns the two caption strings with the shorter value padded
// so it sits centered against the longer one:
//   SSID:      short
//   PASS: loooooooooooong
func (q *Qr) CaptionText() (ssid string, password string) {
	ssidLen := utf8.RuneCountInString(q.Ssid)
	passLen := utf8.RuneCountInString(q.Password)
	if ssidLen > passLen {
		return ssidLabel + q.Ssid, passLabel + centerPad(q.Password, ssidLen-passLen)
	}
	return ssidLabel + centerPad(q.Ssid, passLen-ssidLen), passLabel + q.Password
}

// Adds padding spaces around text, the odd one goes after
func centerPad(text string, padding int) string {
	front := padding / 2
	return strings.Repeat(" ", front) + text + strings.Repeat(" ", padding-front)
}

// Caption returns both lines in monospace at one shared size
func (q *Qr) Caption(fitter *common.Fitter) ([]common.CaptionLine, error) {
	ssid, password := q.CaptionText()
	longer := password
	if utf8.RuneCountInString(q.Ssid) > utf8.RuneCountInString(q.Password) {
		longer = ssid
	}
	fitted, err := fitter.Fit(longer, common.FontMono, maxFontSize)
	if err != nil {
		return nil, err
	}
	return []common.CaptionLine{
		{Text: ssid, FontSize: fitted.FontSize, Family: common.FontMono},
		{Text: password, FontSize: fitted.FontSize, Family: common.FontMono},
	}, nil
}

// Filename returns ssid_Wifi_QR
func (q *Qr) Filename() string {
	return fmt.Sprintf("%s_Wifi_QR", q.Ssid)
}
