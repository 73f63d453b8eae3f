package bootstrap

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// KafkaAuditLogger publishes audit events as JSON to one topic, keyed by
// action. Publishing failures fall back to the process log.
type KafkaAuditLogger struct {
	writer  messageWriter
	topic   string
	service string
	logger  *zap.Logger
}

func NewKafkaAuditLogger(writer messageWriter, topic, service string, logger ...*zap.Logger) *KafkaAuditLogger {
	l := zap.L().Named("audit.kafka")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.kafka")
	}
	return &KafkaAuditLogger{
		writer:  writer,
		topic:   topic,
		service: service,
		logger:  l,
	}
}

func (l *KafkaAuditLogger) Log(ctx context.Context, entry AuditLog) {
	entry = stamp(entry)

	payload, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error("marshal audit event failed", zap.String("action", entry.Action), zap.Error(err))
		return
	}

	msg := kafkago.Message{
		Topic: l.topic,
		Key:   []byte(entry.Action),
		Value: payload,
		Time:  entry.Timestamp,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(entry.Action)},
			{Key: "service", Value: []byte(l.service)},
		},
	}

	if err := l.writer.WriteMessages(ctx, msg); err != nil {
		l.logger.Warn("publish audit event failed",
			zap.String("action", entry.Action),
			zap.String("message", entry.Message),
			zap.Any("meta", entry.Meta),
			zap.Error(err),
		)
	}
}
