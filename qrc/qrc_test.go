package qrc

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jamedeus/qrgen/qrc/common"
	"github.com/jamedeus/qrgen/qrc/contact"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	dir := t.TempDir()
	index := `<html><title>{{ .Title }}</title>{{ range .Types }}{{ .Label }} {{ end }}</html>`
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}
	config := common.DefaultConfig()
	config.AppName = "TestApp"
	config.TemplatesDir = dir
	return config
}

func testServer(t *testing.T) *gin.Engine {
	router, _ := GetServer(false, testConfig(t))
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodePng(t *testing.T, encoded string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("Invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Invalid png: %v", err)
	}
	return img
}

func TestGetServer(t *testing.T) {
	router, port := GetServer(true, testConfig(t))
	if router == nil {
		t.Error("Router is nil")
	}
	if port != ":8080" {
		t.Errorf("Port mismatch %s", port)
	}
}

func TestGetServer_WithPORTEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	_, port := GetServer(false, testConfig(t))
	if port != ":9090" {
		t.Errorf("Expected port :9090, got %s", port)
	}
}

func TestIndex(t *testing.T) {
	router := testServer(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, expected := range []string{"TestApp", "contact-qr", "wifi-qr", "link-qr"} {
		if !strings.Contains(body, expected) {
			t.Errorf("Index missing %q: %s", expected, body)
		}
	}
}

func TestGenerate(t *testing.T) {
	payloads := map[string]string{
		"contact":         `{"type": "contact-qr", "firstName": "John", "lastName": "Doe", "phone": "212-555-1234", "email": "john.doe@hotmail.com"}`,
		"wifi":            `{"type": "wifi-qr", "ssid": "AzureDiamond", "password": "hunter2"}`,
		"link":            `{"type": "link-qr", "url": "https://jamedeus.com", "text": ""}`,
		"link with title": `{"type": "link-qr", "url": "https://jamedeus.com", "text": "Homepage"}`,
	}
	router := testServer(t)
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			w := post(router, payload)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
			}

			// Keys in the order the frontend expects
			if !strings.HasPrefix(w.Body.String(), `{"caption":`) {
				t.Errorf("Unexpected body %.40s", w.Body.String())
			}
			var data map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
				t.Fatal(err)
			}
			if len(data) != 2 {
				t.Errorf("Expected 2 keys, got %v", len(data))
			}
			caption := decodePng(t, data["caption"])
			noCaption := decodePng(t, data["no_caption"])
			if caption.Bounds().Dx() != noCaption.Bounds().Dx() {
				t.Error("Expected equal widths")
			}
			if caption.Bounds().Dy() <= noCaption.Bounds().Dy() {
				t.Error("Expected caption image to be taller")
			}
		})
	}
}

func TestGenerate_UnsupportedType(t *testing.T) {
	w := post(testServer(t), `{"lat": "-77.8473197", "lon": "166.6752747", "type": "geo-qr"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	if w.Body.String() != "Unsupported QR code type" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestGenerate_BadJSON(t *testing.T) {
	router := testServer(t)
	for _, body := range []string{`not json`, `{"type": "wifi-qr", "ssid": 5}`} {
		w := post(router, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestGenerate_FontTooSmall(t *testing.T) {
	config := testConfig(t)
	config.MinFontSize = 60
	router, _ := GetServer(false, config)
	w := post(router, `{"type": "link-qr", "url": "https://jamedeus.com"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "font too small") {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestGenerate_PayloadTooLong(t *testing.T) {
	body := `{"type": "link-qr", "url": "https://` + strings.Repeat("a", 5000) + `.com"}`
	w := post(testServer(t), body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), common.ErrPayloadTooLong.Error()) {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	router := testServer(t)
	var wg sync.WaitGroup
	codes := make([]int, 10)
	for n := range codes {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			codes[n] = post(router, `{"type": "wifi-qr", "ssid": "mywifi", "password": "hunter2"}`).Code
		}(n)
	}
	wg.Wait()
	for n, code := range codes {
		if code != http.StatusOK {
			t.Errorf("Request %d returned %d", n, code)
		}
	}
}

func TestGenerator_Parse(t *testing.T) {
	generator := NewGenerator(common.DefaultConfig(), common.EmbeddedFonts{})
	variant, err := generator.Parse([]byte(`{"type": "contact-qr", "firstName": "john",
		"lastName": "DOE", "phone": "  (212) 555-1234 ", "email": "JoHnAtHaN.dOEth@hOtmAiL.cOm"}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := variant.(*contact.Qr); !ok {
		t.Fatalf("Expected contact, got %T", variant)
	}

	rendered, err := generator.Render(variant)
	if err != nil {
		t.Fatal(err)
	}
	if rendered.Filename != "John-Doe_contact" {
		t.Errorf("Unexpected filename %s", rendered.Filename)
	}
	if rendered.Lines[0].Text != "John Doe" ||
		rendered.Lines[1].Text != "johnathan.doeth@hotmail.com\n(212) 555-1234" {
		t.Errorf("Unexpected caption %+v", rendered.Lines)
	}

	if _, err := generator.Parse([]byte(`{"type": "nope"}`)); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", err)
	}
	if _, err := generator.Parse([]byte(`{`)); !errors.Is(err, ErrBadRequest) {
		t.Errorf("Expected ErrBadRequest, got %v", err)
	}
}

func TestTypesInfo(t *testing.T) {
	labels := make(map[string]bool)
	for _, getTypeInfo := range TypesInfo {
		label, desc, parse := getTypeInfo()
		if len(desc) == 0 || parse == nil {
			t.Errorf("Incomplete type info for %s", label)
		}
		labels[label] = true
	}
	for _, label := range []string{"contact-qr", "wifi-qr", "link-qr"} {
		if !labels[label] {
			t.Errorf("Missing %s", label)
		}
	}
}
