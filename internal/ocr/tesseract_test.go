package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claimmate/go-claims-backend/internal/config"
)

func tesseractServer(t *testing.T, handler http.HandlerFunc) *TesseractClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTesseractClient(config.OCRConfig{
		Endpoint: srv.URL,
		Language: "eng",
		Timeout:  5 * time.Second,
	})
}

func TestTesseract_Extract_Success(t *testing.T) {
	client := tesseractServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tesseract" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		var opts struct {
			Languages []string `json:"languages"`
		}
		if err := json.Unmarshal([]byte(r.FormValue("options")), &opts); err != nil {
			t.Fatalf("parse options: %v", err)
		}
		if len(opts.Languages) != 1 || opts.Languages[0] != "eng" {
			t.Fatalf("unexpected languages: %v", opts.Languages)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatalf("file part missing: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"exit":{"code":0},"stdout":"recognized text","stderr":""}}`))
	})

	got, err := client.Extract(context.Background(), []byte{0xFF, 0xD8, 0xFF}, "image/jpeg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "recognized text" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTesseract_Extract_NonZeroExit(t *testing.T) {
	client := tesseractServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"exit":{"code":1},"stdout":"","stderr":"no text found"}}`))
	})

	_, err := client.Extract(context.Background(), []byte{0x00}, "image/png")
	if err == nil || !strings.Contains(err.Error(), "exit code 1") {
		t.Fatalf("expected exit-code error, got %v", err)
	}
}

func TestTesseract_Extract_HTTPError(t *testing.T) {
	client := tesseractServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.Extract(context.Background(), []byte{0x00}, "image/png")
	if err == nil || !strings.Contains(err.Error(), "ocr status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestTesseract_Extract_BadJSON(t *testing.T) {
	client := tesseractServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Extract(context.Background(), []byte{0x00}, "image/png")
	if err == nil || !strings.Contains(err.Error(), "parse ocr response") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestNewTesseractClient_DefaultLanguage(t *testing.T) {
	c := NewTesseractClient(config.OCRConfig{Endpoint: "http://ocr:8884/", Timeout: time.Second})
	if c.language != "eng" {
		t.Fatalf("default language: %q", c.language)
	}
	if c.endpoint != "http://ocr:8884" {
		t.Fatalf("trailing slash not trimmed: %q", c.endpoint)
	}
}
