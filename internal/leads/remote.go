package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"travelbuddies/internal/domain/models"
)

const (
	BookingPath = "/api/send-booking"
	EnquiryPath = "/api/send-enquiry"

	DefaultRemoteTimeout = 8 * time.Second
)

// HTTPSubmitter posts leads as JSON to BaseURL. Any 2xx is success; the
// response body is ignored. There is no retry.
type HTTPSubmitter struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSubmitter(baseURL string, timeout time.Duration) HTTPSubmitter {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return HTTPSubmitter{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s HTTPSubmitter) SendBooking(ctx context.Context, p models.BookingPayload) error {
	return s.post(ctx, BookingPath, p)
}

func (s HTTPSubmitter) SendEnquiry(ctx context.Context, p models.EnquiryPayload) error {
	return s.post(ctx, EnquiryPath, p)
}

func (s HTTPSubmitter) post(ctx context.Context, path string, body any) error {
	if s.BaseURL == "" {
		return remoteError("no endpoint configured")
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return remoteError("encode payload: %v", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return remoteError("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultRemoteTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return remoteError("%v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError("status %d", resp.StatusCode)
	}
	return nil
}
