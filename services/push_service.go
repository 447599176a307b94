package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kesher_server/metrics"
	"kesher_server/models"
	"kesher_server/repositories"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// PushNotification is one multicast delivery request.
type PushNotification struct {
	Tokens []string          `json:"tokens"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// PushResult reports per-token delivery outcomes.
type PushResult struct {
	SuccessCount int      `json:"successCount"`
	FailedTokens []string `json:"failedTokens"`
}

// Sender delivers push notifications. Delivery infrastructure is an
// external collaborator; this interface is the whole contract.
type Sender interface {
	Send(ctx context.Context, notification PushNotification) (PushResult, error)
}

// HTTPSender posts notifications to a push gateway.
type HTTPSender struct {
	URL    string
	Client *http.Client
}

func NewHTTPSender(url string) *HTTPSender {
	return &HTTPSender{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *HTTPSender) Send(ctx context.Context, notification PushNotification) (PushResult, error) {
	payload, err := json.Marshal(notification)
	if err != nil {
		return PushResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return PushResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return PushResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return PushResult{}, fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	var result PushResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return PushResult{}, err
	}
	return result, nil
}

// PushService dispatches new-message notifications to the other
// participant. Delivery is best-effort: failures are reported as ok=false,
// never as errors, and tokens that fail are pruned from the recipient's
// device list.
type PushService struct {
	Sender   Sender
	Profiles repositories.ProfileRepository
	breaker  *gobreaker.CircuitBreaker
}

func NewPushService(sender Sender, profiles repositories.ProfileRepository) *PushService {
	return &PushService{
		Sender:   sender,
		Profiles: profiles,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "push-gateway",
			Timeout: 30 * time.Second,
		}),
	}
}

// NotifyNewMessage pushes a preview of msg to every device of the match's
// other participant. Returns false on any delivery problem.
func (s *PushService) NotifyNewMessage(ctx context.Context, match models.Match, msg models.Message) bool {
	recipientID := match.OtherParticipant(msg.SenderID)
	if recipientID == "" {
		zap.S().Warnf("⚠️ no recipient for message %s in match %s", msg.MessageID, msg.MatchID)
		return false
	}

	sender, err := s.Profiles.Get(ctx, msg.SenderID)
	if err != nil {
		zap.S().Warnf("⚠️ sender profile missing for push: %v", err)
		return false
	}
	recipient, err := s.Profiles.Get(ctx, recipientID)
	if err != nil {
		zap.S().Warnf("⚠️ recipient profile missing for push: %v", err)
		return false
	}

	tokens := make([]string, 0, len(recipient.Devices))
	for _, device := range recipient.Devices {
		if device.Token != "" {
			tokens = append(tokens, device.Token)
		}
	}
	if len(tokens) == 0 {
		return true
	}

	senderName := sender.Name
	if senderName == "" {
		senderName = "Someone"
	}

	notification := PushNotification{
		Tokens: tokens,
		Title:  fmt.Sprintf("New message from %s", senderName),
		Body:   previewText(msg.Text),
		Data: map[string]string{
			"type":      "new_message",
			"matchId":   msg.MatchID,
			"messageId": msg.MessageID,
			"senderId":  msg.SenderID,
		},
	}

	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.Sender.Send(ctx, notification)
	})
	if err != nil {
		metrics.PushFailed.Inc()
		zap.S().Warnf("⚠️ push dispatch failed for match %s: %v", msg.MatchID, err)
		return false
	}

	result := res.(PushResult)
	metrics.PushSent.Add(float64(result.SuccessCount))
	zap.S().Infof("✅ sent %d of %d push notifications to %s", result.SuccessCount, len(tokens), recipientID)

	if len(result.FailedTokens) > 0 {
		s.pruneTokens(ctx, recipientID, recipient.Devices, result.FailedTokens)
	}
	return true
}

// pruneTokens removes devices whose tokens were rejected by the gateway.
func (s *PushService) pruneTokens(ctx context.Context, userID string, devices []models.Device, failed []string) {
	failedSet := make(map[string]struct{}, len(failed))
	for _, t := range failed {
		failedSet[t] = struct{}{}
	}

	kept := make([]models.Device, 0, len(devices))
	for _, device := range devices {
		if _, bad := failedSet[device.Token]; !bad {
			kept = append(kept, device)
		}
	}

	if err := s.Profiles.SetDevices(ctx, userID, kept); err != nil {
		zap.S().Warnf("⚠️ failed to prune device tokens for %s: %v", userID, err)
		return
	}
	metrics.TokensPruned.Add(float64(len(failed)))
	zap.S().Infof("🧹 removed %d invalid device tokens for %s", len(failed), userID)
}

// previewText truncates the message to 100 characters for the notification.
func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= 100 {
		return text
	}
	return string(runes[:97]) + "..."
}
