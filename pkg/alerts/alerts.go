package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// Alert is the message published when a zone reaches critical drought risk.
type Alert struct {
	ZoneID           string    `json:"zone_id"`
	ZoneName         string    `json:"zone_name"`
	RiskLevel        string    `json:"risk_level"`
	SPI              float64   `json:"spi"`
	DaysToCritical   int       `json:"days_to_critical"`
	ProjectedCostUSD float64   `json:"projected_cost_usd,omitempty"`
	Message          string    `json:"message"`
	Timestamp        time.Time `json:"timestamp"`
}

// messageWriter is the slice of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends zone alerts to a Kafka topic. With no brokers configured
// it stays disabled and every call is a no-op.
type Publisher struct {
	writer messageWriter
	topic  string
	log    *slog.Logger
}

// New creates a Publisher for the given brokers and topic. Passing an empty
// broker list returns a disabled publisher, callers never need to branch.
func New(brokers []string, topic string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	p := &Publisher{topic: topic, log: log}
	if len(brokers) == 0 || topic == "" {
		log.Info("alert publisher disabled", "reason", "no brokers configured")
		return p
	}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	log.Info("alert publisher ready", "topic", topic, "brokers", len(brokers))
	return p
}

// Enabled reports whether alerts will actually be written anywhere.
func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Publish writes one alert, keyed by zone so a zone's alerts stay ordered
// on a single partition.
func (p *Publisher) Publish(ctx context.Context, alert Alert) error {
	if !p.Enabled() {
		return nil
	}
	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now().UTC()
	}
	b, err := json.Marshal(alert)
	if err != nil {
		p.log.Error("alert marshal failed", "zone", alert.ZoneID, "err", err)
		return fmt.Errorf("marshal alert: %w", err)
	}
	msg := kafka.Message{Key: []byte(alert.ZoneID), Value: b, Time: alert.Timestamp}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("alert write failed", "zone", alert.ZoneID, "topic", p.topic, "err", err)
		return fmt.Errorf("write alert: %w", err)
	}
	p.log.Info("alert published", "zone", alert.ZoneID, "level", alert.RiskLevel, "topic", p.topic)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}

// FromSnapshot builds the alert payload for a critical risk snapshot.
func FromSnapshot(zone models.Zone, snap models.RiskSnapshot, projectedCostUSD float64) Alert {
	return Alert{
		ZoneID:           zone.ID,
		ZoneName:         zone.Name,
		RiskLevel:        string(snap.RiskLevel),
		SPI:              snap.SPI6M,
		DaysToCritical:   snap.DaysToCritical,
		ProjectedCostUSD: projectedCostUSD,
		Message: fmt.Sprintf("zone %s at %s drought risk (SPI %.2f, trend %s)",
			zone.Name, snap.RiskLevel, snap.SPI6M, snap.Trend),
		Timestamp: snap.CalculatedAt,
	}
}
