// Package feed pushes full listing snapshots to live subscribers whenever the
// underlying collections change.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var subscribersGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "hotel_feed_subscribers",
	Help: "Number of live snapshot subscribers.",
})

var (
	// ErrUnknownTopic is returned when subscribing to a topic with no loader.
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrClosed is returned when subscribing after the hub stopped.
	ErrClosed = errors.New("feed hub is closed")
)

// Loader produces the current snapshot of a topic.
type Loader func(ctx context.Context) (any, error)

// Snapshot is the envelope written to subscribers.
type Snapshot struct {
	Topic string    `json:"topic"`
	At    time.Time `json:"at"`
	Data  any       `json:"data"`
}

// Subscriber receives encoded snapshots of one topic.
type Subscriber struct {
	topic string
	send  chan []byte
}

// Topic returns the subscribed topic.
func (s *Subscriber) Topic() string { return s.topic }

// C delivers encoded snapshots. It is closed when the subscription ends.
func (s *Subscriber) C() <-chan []byte { return s.send }

// Relay carries change notifications between instances.
type Relay interface {
	Publish(ctx context.Context, collection string) error
}

// Hub owns the subscriptions. All subscriber bookkeeping happens on the Run
// goroutine.
type Hub struct {
	loaders map[string]Loader
	relay   Relay

	registerCh   chan *Subscriber
	unregisterCh chan *Subscriber
	wake         chan struct{}
	done         chan struct{}

	mu      sync.Mutex
	pending map[string]struct{}

	subs map[string]map[*Subscriber]struct{}
}

// NewHub creates a hub serving the given topics. More can be added with
// Handle before Run starts.
func NewHub(loaders map[string]Loader) *Hub {
	if loaders == nil {
		loaders = make(map[string]Loader)
	}
	return &Hub{
		loaders:      loaders,
		registerCh:   make(chan *Subscriber),
		unregisterCh: make(chan *Subscriber),
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		pending:      make(map[string]struct{}),
		subs:         make(map[string]map[*Subscriber]struct{}),
	}
}

// Handle registers the loader of topic. It must not be called once Run has
// started.
func (h *Hub) Handle(topic string, loader Loader) {
	h.loaders[topic] = loader
}

// SetRelay routes changes through r so that every instance sees them.
func (h *Hub) SetRelay(r Relay) {
	h.relay = r
}

// Changed implements store.ChangeListener.
func (h *Hub) Changed(collection string) {
	if h.relay != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := h.relay.Publish(ctx, collection)
		if err == nil {
			return
		}
		log.Printf("feed: relay publish failed, notifying locally: %v", err)
	}
	h.Notify(collection)
}

// Notify marks collection as changed. It never blocks; repeated changes
// before the hub wakes up are coalesced into one snapshot.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	h.pending[collection] = struct{}{}
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Subscribe registers a subscriber for topic. The current snapshot is
// delivered first. Run must be active.
func (h *Hub) Subscribe(topic string) (*Subscriber, error) {
	if _, ok := h.loaders[topic]; !ok {
		return nil, ErrUnknownTopic
	}
	s := &Subscriber{topic: topic, send: make(chan []byte, 8)}
	select {
	case h.registerCh <- s:
		return s, nil
	case <-h.done:
		return nil, ErrClosed
	}
}

// Unsubscribe ends a subscription and closes its channel.
func (h *Hub) Unsubscribe(s *Subscriber) {
	select {
	case h.unregisterCh <- s:
	case <-h.done:
	}
}

// Run processes subscriptions and changes until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	log.Println("feed: hub started")
	defer close(h.done)
	for {
		select {
		case s := <-h.registerCh:
			if h.subs[s.topic] == nil {
				h.subs[s.topic] = make(map[*Subscriber]struct{})
			}
			h.subs[s.topic][s] = struct{}{}
			subscribersGauge.Inc()
			if msg, ok := h.load(ctx, s.topic); ok {
				h.deliver(s, msg)
			}

		case s := <-h.unregisterCh:
			h.remove(s)

		case <-h.wake:
			h.broadcast(ctx, h.drain())

		case <-ctx.Done():
			for _, set := range h.subs {
				for s := range set {
					h.remove(s)
				}
			}
			log.Println("feed: hub shutting down")
			return
		}
	}
}

func (h *Hub) drain() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	seen := make(map[string]bool)
	var topics []string
	for collection := range h.pending {
		for _, t := range TopicsFor(collection) {
			if !seen[t] {
				seen[t] = true
				topics = append(topics, t)
			}
		}
	}
	h.pending = make(map[string]struct{})
	return topics
}

func (h *Hub) broadcast(ctx context.Context, topics []string) {
	for _, topic := range topics {
		if len(h.subs[topic]) == 0 {
			continue
		}
		msg, ok := h.load(ctx, topic)
		if !ok {
			continue
		}
		for s := range h.subs[topic] {
			h.deliver(s, msg)
		}
	}
}

func (h *Hub) load(ctx context.Context, topic string) ([]byte, bool) {
	loader, ok := h.loaders[topic]
	if !ok {
		return nil, false
	}
	data, err := loader(ctx)
	if err != nil {
		log.Printf("feed: failed to load %s snapshot: %v", topic, err)
		return nil, false
	}
	msg, err := json.Marshal(Snapshot{Topic: topic, At: time.Now(), Data: data})
	if err != nil {
		log.Printf("feed: failed to encode %s snapshot: %v", topic, err)
		return nil, false
	}
	return msg, true
}

// deliver drops a subscriber that cannot keep up rather than stall the hub.
func (h *Hub) deliver(s *Subscriber, msg []byte) {
	select {
	case s.send <- msg:
	default:
		log.Printf("feed: subscriber to %s is too slow, dropping it", s.topic)
		h.remove(s)
	}
}

func (h *Hub) remove(s *Subscriber) {
	set := h.subs[s.topic]
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	close(s.send)
	subscribersGauge.Dec()
}
