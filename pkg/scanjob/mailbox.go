package scanjob

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type (
	// Mailbox lists invoice attachments found in a user's mailbox. The
	// production implementation talks to the mail bridge service; tests
	// substitute their own.
	Mailbox interface {
		FetchInvoiceAttachments(ctx context.Context, address string, from, to time.Time) ([]Attachment, error)
	}

	Attachment struct {
		FileName string
		MimeType string
		Data     []byte
	}

	httpMailbox struct {
		endpoint string
		apiKey   string
		client   *http.Client
	}
)

func NewHTTPMailbox(endpoint, apiKey string) Mailbox {
	return &httpMailbox{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (m *httpMailbox) FetchInvoiceAttachments(ctx context.Context, address string, from, to time.Time) ([]Attachment, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("from", from.Format("2006-01-02"))
	query.Set("to", to.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mail bridge error: %s - %s", resp.Status, string(bodyBytes))
	}

	var payload struct {
		Attachments []struct {
			FileName string `json:"file_name"`
			MimeType string `json:"mime_type"`
			Content  string `json:"content"` // base64
		} `json:"attachments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	attachments := make([]Attachment, 0, len(payload.Attachments))
	for _, a := range payload.Attachments {
		data, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			continue
		}
		attachments = append(attachments, Attachment{
			FileName: a.FileName,
			MimeType: a.MimeType,
			Data:     data,
		})
	}
	return attachments, nil
}
