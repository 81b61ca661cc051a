package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"esp_panel/internal/config"
	"esp_panel/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher pushes device state to an external sink.
type Publisher interface {
	Publish(ctx context.Context, st models.DeviceState) error
	Close()
}

// NopPublisher drops everything; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.DeviceState) error { return nil }
func (NopPublisher) Close()                                            {}

const (
	mqttConnectTimeout = 10 * time.Second
	mqttQoS            = 0
	mqttDisconnectMs   = 250
)

var errPublishTimeout = errors.New("mqtt publish timed out")

// statePayload is the JSON document published on <topic>/state.
type statePayload struct {
	Temp1     float64  `json:"temp1"`
	Temp2     float64  `json:"temp2"`
	Temp3     float64  `json:"temp3"`
	Led       bool     `json:"led"`
	Faults    []string `json:"faults,omitempty"`
	Timestamp int64    `json:"ts"`
}

func encodeState(st models.DeviceState) ([]byte, error) {
	return json.Marshal(statePayload{
		Temp1:     st.Temp1C,
		Temp2:     st.Temp2C,
		Temp3:     st.Temp3C,
		Led:       st.LedOn,
		Faults:    st.FaultCodes,
		Timestamp: st.UpdatedAt.Unix(),
	})
}

func stateTopic(prefix string) string {
	return strings.TrimRight(prefix, "/") + "/state"
}

// MQTTPublisher publishes retained state snapshots to a broker.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewPublisher returns an MQTT publisher, or a NopPublisher when cfg.Broker is empty.
func NewPublisher(cfg config.MQTTConfig) (Publisher, error) {
	if strings.TrimSpace(cfg.Broker) == "" {
		return NopPublisher{}, nil
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(mqttConnectTimeout)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(mqttConnectTimeout) && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}
	return &MQTTPublisher{client: client, topic: stateTopic(cfg.Topic)}, nil
}

func (p *MQTTPublisher) Publish(ctx context.Context, st models.DeviceState) error {
	payload, err := encodeState(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	token := p.client.Publish(p.topic, mqttQoS, true, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish %s: %w", p.topic, err)
		}
		return nil
	case <-ctx.Done():
		return errPublishTimeout
	}
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(mqttDisconnectMs)
}
