package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/meterreport/internal/aggregate"
	"github.com/jgoulah/meterreport/internal/config"
	"github.com/jgoulah/meterreport/pkg/models"
)

const publishTimeout = 10 * time.Second

// Publisher sends building summaries to an MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New connects to the broker described by cfg
func New(cfg config.MQTTConfig) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Configure MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("meterreport")
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return NewWithClient(client, cfg.GetTopicPrefix()), nil
}

// NewWithClient wraps an already connected client
func NewWithClient(client mqtt.Client, topicPrefix string) *Publisher {
	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
	}
}

// SummaryPayload is the JSON body published for one building
type SummaryPayload struct {
	Building      string  `json:"building"`
	TotalReadings int     `json:"total_readings"`
	TotalKWh      float64 `json:"total_kwh"`
	AvgKWh        float64 `json:"avg_kwh"`
	PeakKWh       float64 `json:"peak_kwh"`
	PeakTimestamp string  `json:"peak_timestamp"`
}

// CampusPayload is the JSON body of the campus rollup
type CampusPayload struct {
	Buildings     int     `json:"buildings"`
	TotalReadings int     `json:"total_readings"`
	TotalKWh      float64 `json:"total_kwh"`
}

// Slug turns a building name into a topic segment, e.g. "North Hall" -> "north_hall"
func Slug(building string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(building)), " ", "_")
}

// SummaryTopic is the retained topic for one building
func (p *Publisher) SummaryTopic(building string) string {
	return fmt.Sprintf("%s/%s/summary", p.topicPrefix, Slug(building))
}

// CampusTopic is the retained topic for the campus rollup
func (p *Publisher) CampusTopic() string {
	return p.topicPrefix + "/campus/summary"
}

// PublishSummary sends one building summary as a retained message
func (p *Publisher) PublishSummary(s models.Summary) error {
	return p.publish(p.SummaryTopic(s.Building), SummaryPayload{
		Building:      s.Building,
		TotalReadings: s.TotalReadings,
		TotalKWh:      s.TotalKWh,
		AvgKWh:        s.AvgKWh,
		PeakKWh:       s.PeakKWh,
		PeakTimestamp: s.PeakTime(),
	})
}

// PublishCampus sends the campus rollup as a retained message
func (p *Publisher) PublishCampus(t aggregate.Totals) error {
	return p.publish(p.CampusTopic(), CampusPayload{
		Buildings:     t.Buildings,
		TotalReadings: t.Readings,
		TotalKWh:      t.KWh,
	})
}

func (p *Publisher) publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	token := p.client.Publish(topic, 1, true, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
