package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client delivers templated mail through an external provider. Callers treat
// delivery as best effort: a failed send never rolls back the operation that
// triggered it.
type Client interface {
	SendCredentials(ctx context.Context, recipient string, data CredentialsData) error
}

type CredentialsData struct {
	Name     string `json:"to_name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type HTTPClient struct {
	baseURL    string
	serviceID  string
	templateID string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, serviceID, templateID, apiKey string, httpClient *http.Client) *HTTPClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    trimmed,
		serviceID:  strings.TrimSpace(serviceID),
		templateID: strings.TrimSpace(templateID),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	ToEmail string `json:"to_email"`
	CredentialsData
}

func (c *HTTPClient) SendCredentials(ctx context.Context, recipient string, data CredentialsData) error {
	if c.baseURL == "" {
		return fmt.Errorf("mailer not configured")
	}
	payload := sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.apiKey,
		TemplateParams: templateParams{ToEmail: recipient, CredentialsData: data},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode mail request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider responded %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
