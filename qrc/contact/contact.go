package contact

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jamedeus/qrgen/qrc/common"
)

const (
	label = "contact-qr"
	desc  = "Contact card (MECARD) with name, phone and email"

	nameMaxFontSize = 42
	// The info line is always at least this much smaller than the name
	infoSizeGap = 6
)

// GetTypeInfo returns the info needed to fit into the generator
// Returns:
//   * QR type label used in requests
//   * User friendly description
//   * Func that builds the variant from a request body
func GetTypeInfo() (string, string, common.FuncParseRequest) {
	return label, desc, parseRequest
}

// Qr is a contact card QR code
type Qr struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// New normalizes the fields and returns a contact QR code
func New(firstName, lastName, phone, email string) *Qr {
	return &Qr{
		FirstName: common.Capitalize(strings.TrimSpace(firstName)),
		LastName:  common.Capitalize(strings.TrimSpace(lastName)),
		Phone:     strings.TrimSpace(phone),
		Email:     common.Lower(strings.TrimSpace(email)),
	}
}

type request struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func parseRequest(body []byte) (common.QrVariant, error) {
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("parse %s request: %w", label, err)
	}
	return New(req.FirstName, req.LastName, req.Phone, req.Email), nil
}

// Payload returns the MECARD string
func (q *Qr) Payload() string {
	return fmt.Sprintf("MECARD:N:%s,%s;TEL:%s;EMAIL:%s;", q.LastName, q.FirstName,
		common.DigitsOnly(q.Phone), q.Email)
}

// Caption returns the name in bold with email and phone underneath
func (q *Qr) Caption(fitter *common.Fitter) ([]common.CaptionLine, error) {
	name, err := fitter.Fit(fmt.Sprintf("%s %s", q.FirstName, q.LastName),
		common.FontSansBold, nameMaxFontSize)
	if err != nil {
		return nil, err
	}
	info, err := fitter.Fit(fmt.Sprintf("%s\n%s", q.Email, q.Phone),
		common.FontSans, name.FontSize-infoSizeGap)
	if err != nil {
		return nil, err
	}
	return []common.CaptionLine{name, info}, nil
}

// Filename returns First-Last_contact
func (q *Qr) Filename() string {
	return fmt.Sprintf("%s-%s_contact", q.FirstName, q.LastName)
}
