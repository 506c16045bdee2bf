package mqtt

import (
	"net/url"
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback invoked for messages received on a subscription.
type Handler func(topic string, payload []byte)

// ConnectHandler observes queue connect and disconnect events.
type ConnectHandler func(*Queue)

// Queue wraps an MQTT client with a shared topic prefix and local handler
// fanout. Handlers receive topics with the prefix stripped.
type Queue struct {
	Client       paho.Client
	TopicPrefix  string
	OnConnect    ConnectHandler
	OnDisconnect ConnectHandler

	lock sync.RWMutex
	subs map[string][]*Subscription
}

// Subscription is one registered handler.
type Subscription struct {
	Token paho.Token

	queue   *Queue
	pattern string
	handler Handler
}

// MatchTopic reports whether topic matches a subscription pattern, with
// "+" matching one level and a trailing "#" matching any remainder.
func MatchTopic(topic, pattern string) bool {
	levels := strings.Split(topic, "/")
	tokens := strings.Split(pattern, "/")
	for i, token := range tokens {
		if token == "#" && i+1 == len(tokens) {
			return true
		}
		if i >= len(levels) || (token != "+" && token != levels[i]) {
			return false
		}
	}
	return len(levels) == len(tokens)
}

// ClientOptionsFromURL creates ClientOptions from URL. The URL path
// becomes the topic prefix, and a client-id query parameter sets the
// client ID.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	server := u.Scheme
	if server == "" || server == "mqtt" {
		server = "tcp"
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, topicPrefix, nil
}

// NewQueue creates Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix}
	options.SetOnConnectHandler(q.onConnected)
	options.SetConnectionLostHandler(q.onConnectionLost)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates Queue from URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Sub registers a handler for a topic pattern.
func (q *Queue) Sub(pattern string, handler Handler) *Subscription {
	sub := &Subscription{queue: q, pattern: pattern, handler: handler}
	q.lock.Lock()
	if q.subs == nil {
		q.subs = make(map[string][]*Subscription)
	}
	newSub := len(q.subs[pattern]) == 0
	q.subs[pattern] = append(q.subs[pattern], sub)
	q.lock.Unlock()
	if newSub {
		glog.V(2).Infof("SUB %q", q.TopicPrefix+pattern)
		sub.Token = q.Client.Subscribe(q.TopicPrefix+pattern, 0, q.dispatch)
	}
	return sub
}

// Pub publishes to a topic.
func (q *Queue) Pub(topic string, payload []byte) paho.Token {
	return q.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (q *Queue) PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token {
	return q.Client.Publish(q.TopicPrefix+topic, qos, retain, payload)
}

// Resubscribe restores every registered pattern, for use after the broker
// connection is (re)established.
func (q *Queue) Resubscribe() paho.Token {
	filters := make(map[string]byte)
	q.lock.RLock()
	for pattern := range q.subs {
		filters[q.TopicPrefix+pattern] = 0
	}
	q.lock.RUnlock()
	if len(filters) == 0 {
		return &paho.DummyToken{}
	}
	if glog.V(2) {
		for key := range filters {
			glog.Infof("SUB %q", key)
		}
	}
	return q.Client.SubscribeMultiple(filters, q.dispatch)
}

func (q *Queue) onConnected(paho.Client) {
	glog.Info("broker connected")
	q.Resubscribe()
	if h := q.OnConnect; h != nil {
		h(q)
	}
}

func (q *Queue) onConnectionLost(_ paho.Client, err error) {
	glog.Warningf("broker connection lost: %v", err)
	if h := q.OnDisconnect; h != nil {
		h(q)
	}
}

func (q *Queue) dispatch(_ paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, q.TopicPrefix) {
		return
	}
	topic = topic[len(q.TopicPrefix):]
	glog.V(2).Infof("RCV %q", topic)
	payload := msg.Payload()
	for _, h := range q.handlersFor(topic) {
		h(topic, payload)
	}
}

func (q *Queue) handlersFor(topic string) []Handler {
	var handlers []Handler
	q.lock.RLock()
	for pattern, subs := range q.subs {
		if !MatchTopic(topic, pattern) {
			continue
		}
		for _, sub := range subs {
			handlers = append(handlers, sub.handler)
		}
	}
	q.lock.RUnlock()
	return handlers
}

// Close removes the handler, unsubscribing the pattern when it was the
// last one registered.
func (s *Subscription) Close() error {
	q := s.queue
	var unsub bool
	q.lock.Lock()
	subs := q.subs[s.pattern]
	for i, sub := range subs {
		if sub == s {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(q.subs, s.pattern)
		unsub = true
	} else {
		q.subs[s.pattern] = subs
	}
	q.lock.Unlock()
	if unsub {
		glog.V(2).Infof("UNSUB %q", s.pattern)
		token := q.Client.Unsubscribe(q.TopicPrefix + s.pattern)
		token.Wait()
		return token.Error()
	}
	return nil
}
