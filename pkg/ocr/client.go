package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

type (
	// Client calls the external OCR service. Recognition has no automatic
	// retry; failed files are retried manually by the user.
	Client interface {
		Recognize(ctx context.Context, fileName string, data []byte, mimeType string) (*RawResponse, error)
	}

	httpClient struct {
		endpoint string
		apiKey   string
		client   *http.Client
	}
)

func NewClient(endpoint, apiKey string) Client {
	return &httpClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpClient) Recognize(ctx context.Context, fileName string, data []byte, mimeType string) (*RawResponse, error) {
	if strings.HasPrefix(mimeType, "image/") {
		if enhanced, err := enhanceImage(data); err == nil {
			data = enhanced
			fileName = strings.TrimSuffix(fileName, extension(fileName)) + ".jpg"
			mimeType = "image/jpeg"
		}
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OCR API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var raw RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// enhanceImage applies contrast and sharpening so printed invoice text
// survives phone-camera noise. PDFs skip this path entirely.
func enhanceImage(data []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)

	out := &bytes.Buffer{}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func extension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return fileName[idx:]
}
