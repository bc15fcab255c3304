package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Notification template ids understood by the email service
const (
	TemplateAnalysisComplete = "analysis_complete"
	TemplatePerformanceAlert = "performance_alert"
	TemplateSurveyInvite     = "survey_invite"
)

// Notifier is the outbound notification sink. Fire-and-forget from the
// pipeline's perspective; a failed notification never fails the operation
// that triggered it.
type Notifier interface {
	Notify(ctx context.Context, templateID, recipient string, payload map[string]interface{}) (string, error)
}

// Broadcaster pushes events to connected dashboard clients
type Broadcaster interface {
	BroadcastToTeam(teamID string, event string, payload interface{})
}

// EmailNotifier sends templated email through the hosted email service
type EmailNotifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(endpoint, apiKey string, timeout time.Duration) *EmailNotifier {
	return &EmailNotifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Notify sends one templated message and returns the provider's message id
func (n *EmailNotifier) Notify(ctx context.Context, templateID, recipient string, payload map[string]interface{}) (string, error) {
	reqBody := map[string]interface{}{
		"templateId": templateID,
		"to":         recipient,
		"payload":    payload,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	var result struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	return result.MessageID, nil
}
