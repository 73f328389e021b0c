// Tesseract HTTP extractor.
//
// Talks to a tesseract-server style endpoint: the file is posted as multipart
// form data together with an options JSON selecting the language, and the
// recognized text comes back in the response envelope's stdout field.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/claimmate/go-claims-backend/internal/config"
)

// TesseractClient implements Extractor against a Tesseract HTTP service.
type TesseractClient struct {
	endpoint string
	language string
	httpc    *http.Client
}

// NewTesseractClient constructs a client for the given OCR configuration.
func NewTesseractClient(cfg config.OCRConfig) *TesseractClient {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	return &TesseractClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		language: lang,
		httpc:    &http.Client{Timeout: cfg.Timeout},
	}
}

type tesseractEnvelope struct {
	Data struct {
		Exit struct {
			Code int `json:"code"`
		} `json:"exit"`
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
	} `json:"data"`
}

// Extract posts the file for recognition and returns the extracted text.
func (t *TesseractClient) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	opts, err := json.Marshal(map[string]any{"languages": []string{t.language}})
	if err != nil {
		return "", err
	}
	if err := mw.WriteField("options", string(opts)); err != nil {
		return "", err
	}
	fw, err := mw.CreateFormFile("file", "document")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"/tesseract", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var env tesseractEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("parse ocr response: %w", err)
	}
	if env.Data.Exit.Code != 0 {
		return "", fmt.Errorf("ocr failed with exit code %d: %s", env.Data.Exit.Code, strings.TrimSpace(env.Data.Stderr))
	}
	return env.Data.Stdout, nil
}
