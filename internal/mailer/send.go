package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Alixocracy/jast/internal/summary"
)

// EndpointSender posts the payload to a summary relay, such as a deployed
// `jast serve`.
type EndpointSender struct {
	URL      string
	HTTP     *http.Client
	Observer Observer
}

type endpointResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *EndpointSender) Send(ctx context.Context, p Payload) (*Result, error) {
	start := time.Now()
	res, err := s.send(ctx, p)
	notify(s.Observer, SendEvent{Mode: ModeEndpoint, Start: start, Err: err})
	return res, err
}

func (s *EndpointSender) send(ctx context.Context, p Payload) (*Result, error) {
	if err := ValidateEmail(p.Email); err != nil {
		return nil, err
	}
	status, body, err := postJSON(ctx, s.HTTP, s.URL, "", p)
	if err != nil {
		return nil, err
	}

	var resp endpointResponse
	_ = json.Unmarshal(body, &resp)
	if status < 200 || status > 299 || resp.Error != "" {
		msg := resp.Error
		if msg == "" {
			msg = string(bytes.TrimSpace(body))
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrSend, status, msg)
	}
	r := &Result{Raw: resp.Data}
	var data struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(resp.Data, &data) == nil {
		r.ID = data.ID
	}
	return r, nil
}

// ResendSender renders the HTML summary and submits it to the Resend API.
type ResendSender struct {
	APIKey   string
	From     string
	URL      string
	HTTP     *http.Client
	Observer Observer
	Now      func() time.Time
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *ResendSender) Send(ctx context.Context, p Payload) (*Result, error) {
	start := time.Now()
	res, err := s.send(ctx, p)
	notify(s.Observer, SendEvent{Mode: ModeResend, Start: start, Err: err})
	return res, err
}

func (s *ResendSender) send(ctx context.Context, p Payload) (*Result, error) {
	if err := ValidateEmail(p.Email); err != nil {
		return nil, err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	day := p.Day(now())
	html, err := summary.HTML(day)
	if err != nil {
		return nil, err
	}
	req := resendRequest{
		From:    s.From,
		To:      []string{p.Email},
		Subject: summary.Subject(day),
		HTML:    html,
	}

	status, body, err := postJSON(ctx, s.HTTP, s.URL, s.APIKey, req)
	if err != nil {
		return nil, err
	}
	var resp resendResponse
	_ = json.Unmarshal(body, &resp)
	if status < 200 || status > 299 {
		msg := resp.Message
		if msg == "" {
			msg = "Failed to send email"
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrSend, status, msg)
	}
	return &Result{ID: resp.ID, Raw: json.RawMessage(bytes.TrimSpace(body))}, nil
}

func postJSON(ctx context.Context, client *http.Client, url, bearer string, v any) (int, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrSend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}
