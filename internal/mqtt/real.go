package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/button-led/internal/logic"
)

// backlogCapacity bounds how many messages are held while disconnected.
// The panel produces at most a handful of edges plus lifecycle events,
// so 64 is generous.
const backlogCapacity = 64

// RealPublisher publishes to an actual MQTT broker. Connection is
// established in the background with retry; messages sent while
// disconnected are buffered and replayed on (re)connect.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	pending *backlog
}

// NewRealPublisher creates a publisher for the given broker and starts
// connecting. It never blocks waiting for the broker: the panel's
// console protocol must start on time whether or not MQTT is up.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{pending: newBacklog(backlogCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("button-led").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect)

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

// Publish sends an edge event to the broker (QoS 0, not retained).
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.publish(Topic, 0, false, payload)
}

// PublishSystem sends a lifecycle event to the broker.
// QoS 1 (at-least-once): we want STARTUP/SHUTDOWN to be delivered.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.pending.push(message{topic: topic, payload: payload, qos: qos, retained: retained})
		n := p.pending.len()
		p.mu.Unlock()
		log.Printf("mqtt: not connected, buffered message (%d pending)", n)
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// onConnect replays the backlog once a connection is established.
func (p *RealPublisher) onConnect(c paho.Client) {
	p.mu.Lock()
	msgs := p.pending.drain()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	for _, m := range msgs {
		c.Publish(m.topic, m.qos, m.retained, m.payload)
	}
	log.Printf("mqtt: connected, replayed %d buffered messages", len(msgs))
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker, allowing in-flight messages 1s to
// complete.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
