// events.go - Publishes command lifecycle events over MQTT
//
// Publication is optional: with no broker configured a Nop publisher is used
// and nothing leaves the process.

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Action names what happened to a command.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is the JSON payload sent for every change.
type Event struct {
	Action     Action    `json:"action"`
	CommandID  uint      `json:"commandId"`
	UserID     uint      `json:"userId"`
	Technology string    `json:"technology"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close()
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close()                               {}

// MQTTPublisher sends events to <prefix>/<userID>/<action>.
type MQTTPublisher struct {
	client  paho.Client
	prefix  string
	timeout time.Duration
}

// Connect dials the broker. An empty broker returns Nop.
func Connect(broker, clientID, topicPrefix string) (Publisher, error) {
	if broker == "" {
		return Nop{}, nil
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("[events] connection lost: %v", err)
		})

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}
	log.Printf("[events] connected to %s", broker)
	return NewMQTTPublisher(client, topicPrefix), nil
}

// NewMQTTPublisher wraps an already configured client.
func NewMQTTPublisher(client paho.Client, topicPrefix string) *MQTTPublisher {
	return &MQTTPublisher{
		client:  client,
		prefix:  strings.TrimSuffix(topicPrefix, "/"),
		timeout: 2 * time.Second,
	}
}

// Topic returns the topic an event is published on.
func (p *MQTTPublisher) Topic(ev Event) string {
	return fmt.Sprintf("%s/%d/%s", p.prefix, ev.UserID, ev.Action)
}

func (p *MQTTPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	token := p.client.Publish(p.Topic(ev), 0, false, payload)

	wait := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < wait {
			wait = d
		}
	}
	if !token.WaitTimeout(wait) {
		return fmt.Errorf("publish %s: timed out", p.Topic(ev))
	}
	return token.Error()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
