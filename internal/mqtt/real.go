package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/grow-light/internal/logic"
)

const (
	bufferCapacity  = 100
	commandCapacity = 8
)

// RealPublisher publishes to an actual MQTT broker and listens for commands.
// Messages published while disconnected are buffered and replayed on reconnect.
// Publishes made during a replay join the buffer so delivery order is kept.
type RealPublisher struct {
	client   paho.Client
	commands chan Command

	mu            sync.Mutex
	connected     bool
	everConnected bool
	replaying     bool
	buf           *ringBuffer
}

// NewRealPublisher creates a publisher for the given broker. If the broker is
// not reachable within the connect timeout the client keeps retrying in the
// background and messages are buffered meanwhile.
func NewRealPublisher(broker, clientID string) (*RealPublisher, error) {
	p := &RealPublisher{
		commands: make(chan Command, commandCapacity),
		buf:      newRingBuffer(bufferCapacity),
	}

	will, err := FormatSystemPayload(SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    "MQTT_DISCONNECT",
	})
	if err != nil {
		return nil, fmt.Errorf("format will payload: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetBinaryWill(TopicSystem, will, 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(p.onConnectionLost)

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		log.Printf("mqtt: broker %s not reachable yet, retrying in background", broker)
		return p, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

func (p *RealPublisher) onConnect(c paho.Client) {
	p.mu.Lock()
	p.connected = true
	p.replaying = true
	reconnect := p.everConnected
	p.everConnected = true
	pending, dropped := p.buf.drainAll()
	p.mu.Unlock()

	token := c.Subscribe(TopicCommand, 1, p.handleCommand)
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		log.Printf("mqtt: subscribe %s: %v", TopicCommand, token.Error())
	}

	if reconnect {
		log.Printf("mqtt: reconnected, replaying %d buffered messages (%d dropped)", len(pending), dropped)
		payload, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "RECONNECTED"})
		pending = append(pending, bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: true})
	}

	// Drain until nothing new arrived during the last batch
	for {
		replay(c, pending)

		p.mu.Lock()
		if !p.connected {
			// Lost again; the next onConnect replays what is left
			p.replaying = false
			p.mu.Unlock()
			return
		}
		pending, dropped = p.buf.drainAll()
		if len(pending) == 0 {
			p.replaying = false
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
		if dropped > 0 {
			log.Printf("mqtt: %d messages dropped during replay", dropped)
		}
	}
}

func replay(c paho.Client, msgs []bufferedMsg) {
	for _, m := range msgs {
		t := c.Publish(m.topic, m.qos, m.retained, m.payload)
		if !t.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay to %s timed out", m.topic)
			continue
		}
		if err := t.Error(); err != nil {
			log.Printf("mqtt: replay to %s: %v", m.topic, err)
		}
	}
}

func (p *RealPublisher) onConnectionLost(_ paho.Client, err error) {
	p.mu.Lock()
	p.connected = false
	p.mu.Unlock()
	log.Printf("mqtt: connection lost: %v", err)
}

func (p *RealPublisher) handleCommand(_ paho.Client, m paho.Message) {
	cmd, err := ParseCommand(m.Payload())
	if err != nil {
		log.Printf("mqtt: ignoring command on %s: %v", m.Topic(), err)
		return
	}
	select {
	case p.commands <- cmd:
	default:
		log.Printf("mqtt: command queue full, dropping %s", cmd)
	}
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	p.mu.Lock()
	if !p.connected || p.replaying {
		p.buf.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Publish sends a light event to the MQTT broker.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	// QoS 0 (at-most-once), not retained
	return p.publish(Topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

// Commands returns the channel of commands received on TopicCommand.
func (p *RealPublisher) Commands() <-chan Command {
	return p.commands
}

// IsConnected reports whether the client currently has a broker connection.
func (p *RealPublisher) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
