package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// gatewayFunc adapts a function to Gateway.
type gatewayFunc func(ctx context.Context, msg PushMessage) error

func (f gatewayFunc) Send(ctx context.Context, msg PushMessage) error { return f(ctx, msg) }

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, nil)

	wp.Dispatch(PushMessage{DeviceID: "d1"})

	select {
	case job := <-wp.jobs:
		assert.Equal(t, "d1", job.DeviceID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchNeverBlocks(t *testing.T) {
	wp := NewWorkerPool(1, nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(wp.jobs)+5; i++ {
			wp.Dispatch(PushMessage{DeviceID: "d1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
	assert.Len(t, wp.jobs, cap(wp.jobs))
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("delivers dispatched messages", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		wp := NewWorkerPool(1, gatewayFunc(func(_ context.Context, msg PushMessage) error {
			assert.Equal(t, "ExponentPushToken[abc]", msg.Token)
			assert.Equal(t, "sube a la 204", msg.Body)
			wg.Done()
			return nil
		}))
		wp.Start(ctx)

		wp.Dispatch(PushMessage{DeviceID: "d1", Token: "ExponentPushToken[abc]", Body: "sube a la 204"})
		wg.Wait()
	})

	t.Run("swallows gateway failures and keeps working", func(t *testing.T) {
		var mu sync.Mutex
		var calls []string
		done := make(chan struct{})

		wp := NewWorkerPool(1, gatewayFunc(func(_ context.Context, msg PushMessage) error {
			mu.Lock()
			calls = append(calls, msg.DeviceID)
			n := len(calls)
			mu.Unlock()
			if n == 2 {
				close(done)
			}
			if msg.DeviceID == "bad" {
				return errors.New("gateway down")
			}
			return nil
		}))
		wp.Start(ctx)

		wp.Dispatch(PushMessage{DeviceID: "bad"})
		wp.Dispatch(PushMessage{DeviceID: "good"})

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after a gateway failure")
		}
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"bad", "good"}, calls)
	})
}

func TestExpoGateway_Send(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"status":"ok"}}`))
	}))
	defer server.Close()

	g := NewExpoGateway(server.URL, time.Second)
	err := g.Send(context.Background(), PushMessage{Token: "ExponentPushToken[x]", Title: "📩 Nuevo mensaje", Body: "hola", Sound: "default"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"to":    "ExponentPushToken[x]",
		"sound": "default",
		"title": "📩 Nuevo mensaje",
		"body":  "hola",
	}, got)
}

func TestExpoGateway_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	g := NewExpoGateway(server.URL, time.Second)
	assert.Error(t, g.Send(context.Background(), PushMessage{Token: "t", Body: "b"}))
}

func TestWebPushGateway_Send(t *testing.T) {
	token := `{"endpoint":"https://push.example.com/abc","keys":{"p256dh":"key","auth":"secret"}}`

	g := NewWebPushGateway(&webpush.Options{})
	g.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://push.example.com/abc", sub.Endpoint)
			assert.Equal(t, "key", sub.Keys.P256dh)
			assert.JSONEq(t, `{"title":"t","body":"b","sound":"default"}`, string(payload))
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}
	require.NoError(t, g.Send(context.Background(), PushMessage{Token: token, Title: "t", Body: "b", Sound: "default"}))

	g.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}
	assert.Error(t, g.Send(context.Background(), PushMessage{DeviceID: "d1", Token: token}))

	assert.Error(t, g.Send(context.Background(), PushMessage{Token: `{"keys":{}}`}), "endpoint is required")
}

func TestRoutingGateway(t *testing.T) {
	var mobile, web int
	g := &RoutingGateway{
		Mobile:  gatewayFunc(func(context.Context, PushMessage) error { mobile++; return nil }),
		WebPush: gatewayFunc(func(context.Context, PushMessage) error { web++; return nil }),
	}

	require.NoError(t, g.Send(context.Background(), PushMessage{Token: "ExponentPushToken[x]"}))
	require.NoError(t, g.Send(context.Background(), PushMessage{Token: ` {"endpoint":"https://e"}`}))
	assert.Equal(t, 1, mobile)
	assert.Equal(t, 1, web)

	g.WebPush = nil
	assert.Error(t, g.Send(context.Background(), PushMessage{Token: `{"endpoint":"https://e"}`}))
}
