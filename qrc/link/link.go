package link

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jamedeus/qrgen/qrc/common"
)

const (
	label = "link-qr"
	desc  = "Link to any URL with an optional title"

	titleMaxFontSize = 72
	urlMaxFontSize   = 42
)

// GetTypeInfo returns the info needed to fit into the generator
func GetTypeInfo() (string, string, common.FuncParseRequest) {
	return label, desc, parseRequest
}

// Qr is a link QR code
type Qr struct {
	URL   string
	Title string
}

// New trims the url and title and returns a link QR code
func New(url, title string) *Qr {
	return &Qr{
		URL:   strings.TrimSpace(url),
		Title: strings.TrimSpace(title),
	}
}

type request struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

func parseRequest(body []byte) (common.QrVariant, error) {
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("parse %s request: %w", label, err)
	}
	return New(req.URL, req.Text), nil
}

// Payload returns the url unchanged
func (q *Qr) Payload() string {
	return q.URL
}

// Caption returns the url without protocol, with the title above it in a
// larger bold font when one was given
func (q *Qr) Caption(fitter *common.Fitter) ([]common.CaptionLine, error) {
	url, err := fitter.Fit(common.StripProtocol(q.URL), common.FontMono, urlMaxFontSize)
	if err != nil {
		return nil, err
	}
	if len(q.Title) == 0 {
		return []common.CaptionLine{url}, nil
	}
	title, err := fitter.Fit(q.Title, common.FontMonoBold, titleMaxFontSize)
	if err != nil {
		return nil, err
	}
	return []common.CaptionLine{title, url}, nil
}

// Filename returns the url without protocol followed by _QR
func (q *Qr) Filename() string {
	return fmt.Sprintf("%s_QR", common.StripProtocol(q.URL))
}
