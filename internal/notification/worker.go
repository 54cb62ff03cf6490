package notification

import (
	"context"
	"log"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
)

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan PushMessage
	gateway Gateway
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, gateway Gateway) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan PushMessage, size*16),
		gateway: gateway,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case msg := <-wp.jobs:
			wp.deliver(ctx, msg)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues msg for delivery. It never blocks the writer: when the
// queue is full the message is dropped.
func (wp *WorkerPool) Dispatch(msg PushMessage) {
	select {
	case wp.jobs <- msg:
	default:
		pushFailed.Inc()
		log.Printf("Notification queue full; dropping push to device %s", msg.DeviceID)
	}
}

// deliver sends one message. Failures are logged and dropped: nothing is
// retried and nothing reaches the writer of the message.
func (wp *WorkerPool) deliver(ctx context.Context, msg PushMessage) {
	if err := wp.gateway.Send(ctx, msg); err != nil {
		pushFailed.Inc()
		log.Printf("Error sending notification: %v", apperr.NewGatewayDeliveryError(msg.DeviceID, err))
		return
	}
	pushSent.Inc()
	log.Printf("Notification sent to device %s", msg.DeviceID)
}
