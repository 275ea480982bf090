package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
)

// Kafka publishes verification traces to a Kafka topic. It implements
// audit.Store so it can sit behind the same worker as the database stores;
// downstream consumers (SIEM, HR reporting) read the topic.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects to the given brokers. Records are keyed by employee ID
// so one employee's traces stay ordered within a partition.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka publisher: topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

// wireTrace is the topic payload. Field names are part of the consumer
// contract; do not rename without versioning the topic.
type wireTrace struct {
	AttemptID        string   `json:"attempt_id"`
	Direction        string   `json:"direction"`
	EmployeeID       string   `json:"employee_id,omitempty"`
	DeviceID         string   `json:"device_id,omitempty"`
	RequestID        string   `json:"request_id,omitempty"`
	ClientIP         string   `json:"client_ip,omitempty"`
	UserAgent        string   `json:"user_agent,omitempty"`
	StartedAt        string   `json:"started_at"`
	CompletedAt      string   `json:"completed_at"`
	StepsRun         []string `json:"steps_run"`
	SpoofProbability *float64 `json:"spoof_probability,omitempty"`
	MatchConfidence  *float64 `json:"match_confidence,omitempty"`
	GeoVerdict       string   `json:"geo_verdict,omitempty"`
	WithinSite       *bool    `json:"within_site,omitempty"`
	DistanceMeters   *float64 `json:"distance_meters,omitempty"`
	FraudFlags       []string `json:"fraud_flags,omitempty"`
	Outcome          string   `json:"outcome"`
	Accepted         bool     `json:"accepted"`
}

func (k *Kafka) Append(ctx context.Context, trace audit.Trace) error {
	steps := make([]string, len(trace.StepsRun))
	for i, step := range trace.StepsRun {
		steps[i] = string(step)
	}

	payload := wireTrace{
		AttemptID:        trace.AttemptID.String(),
		Direction:        trace.Direction,
		DeviceID:         trace.DeviceID,
		RequestID:        trace.RequestID,
		ClientIP:         trace.ClientIP,
		UserAgent:        trace.UserAgent,
		StartedAt:        trace.StartedAt.Format(time.RFC3339Nano),
		CompletedAt:      trace.CompletedAt.Format(time.RFC3339Nano),
		StepsRun:         steps,
		SpoofProbability: trace.SpoofProbability,
		MatchConfidence:  trace.MatchConfidence,
		GeoVerdict:       trace.GeoVerdict,
		WithinSite:       trace.WithinSite,
		DistanceMeters:   trace.DistanceMeters,
		FraudFlags:       trace.FraudFlags,
		Outcome:          trace.Outcome,
		Accepted:         trace.Accepted,
	}
	var key []byte
	if !trace.EmployeeID.IsNil() {
		payload.EmployeeID = trace.EmployeeID.String()
		key = []byte(payload.EmployeeID)
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}

	record := &kgo.Record{Topic: k.topic, Key: key, Value: value}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce trace: %w", err)
	}
	return nil
}

func (k *Kafka) Close() {
	k.client.Close()
}
