package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/SherClockHolmes/webpush-go"
)

// PushMessage is one notification addressed to one device token.
type PushMessage struct {
	DeviceID string
	Token    string
	Title    string
	Body     string
	Sound    string
}

// Gateway delivers a push message. Implementations report failure only; the
// response body is not interpreted.
type Gateway interface {
	Send(ctx context.Context, msg PushMessage) error
}

// expoRequest is the fixed payload shape accepted by the push gateway.
type expoRequest struct {
	To    string `json:"to"`
	Sound string `json:"sound"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ExpoGateway posts JSON messages to an Expo-compatible push endpoint.
type ExpoGateway struct {
	url    string
	client *http.Client
}

// NewExpoGateway creates a gateway posting to url.
func NewExpoGateway(url string, timeout time.Duration) *ExpoGateway {
	return &ExpoGateway{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Send posts msg to the gateway.
func (g *ExpoGateway) Send(ctx context.Context, msg PushMessage) error {
	body, err := json.Marshal(expoRequest{
		To:    msg.Token,
		Sound: msg.Sound,
		Title: msg.Title,
		Body:  msg.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WebPushGateway delivers to browser registrations whose token is a
// serialized push subscription.
type WebPushGateway struct {
	options *webpush.Options
	sender  NotificationSender
}

// NewWebPushGateway creates a gateway signing with the given VAPID options.
func NewWebPushGateway(options *webpush.Options) *WebPushGateway {
	return &WebPushGateway{options: options, sender: &WebPushSender{}}
}

type webPushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

// Send decodes the subscription from the token and pushes msg to it.
func (g *WebPushGateway) Send(_ context.Context, msg PushMessage) error {
	sub, err := decodeSubscription(msg.Token)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(webPushPayload{Title: msg.Title, Body: msg.Body, Sound: msg.Sound})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	resp, err := g.sender.Send(payload, sub, g.options)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Expired subscriptions stay registered; removing them is an admin decision.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for device %s is expired (endpoint %s)", msg.DeviceID, sub.Endpoint)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("web push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// IsWebPushToken reports whether token holds a serialized browser subscription.
func IsWebPushToken(token string) bool {
	return strings.HasPrefix(strings.TrimSpace(token), "{")
}

func decodeSubscription(token string) (*webpush.Subscription, error) {
	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(token), &sub); err != nil {
		return nil, fmt.Errorf("invalid web push subscription: %w", err)
	}
	if sub.Endpoint == "" {
		return nil, fmt.Errorf("invalid web push subscription: missing endpoint")
	}
	return &sub, nil
}

// RoutingGateway sends browser subscriptions through WebPush (when
// configured) and everything else through the mobile gateway.
type RoutingGateway struct {
	Mobile  Gateway
	WebPush Gateway
}

// Send picks a gateway for msg.Token.
func (g *RoutingGateway) Send(ctx context.Context, msg PushMessage) error {
	if IsWebPushToken(msg.Token) {
		if g.WebPush == nil {
			return fmt.Errorf("web push is not configured")
		}
		return g.WebPush.Send(ctx, msg)
	}
	return g.Mobile.Send(ctx, msg)
}
