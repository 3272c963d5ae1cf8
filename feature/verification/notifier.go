package verification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"megasena-monitor/core/events"
	"megasena-monitor/core/reconcile"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventOutcome       = "outcome"
	EventPassCompleted = "pass_completed"
)

// OutcomeEvent announces one newly merged outcome.
type OutcomeEvent struct {
	Type         string              `json:"type"`
	PassID       string              `json:"pass_id"`
	BetID        int64               `json:"bet_id"`
	Draw         int                 `json:"draw"`
	Hits         int                 `json:"hits"`
	Tier         reconcile.PrizeTier `json:"tier"`
	Winning      bool                `json:"winning"`
	DrawnNumbers []int               `json:"drawn_numbers"`
	ResolvedAt   time.Time           `json:"resolved_at"`
}

// PassEvent summarizes a finished pass.
type PassEvent struct {
	Type           string    `json:"type"`
	PassID         string    `json:"pass_id"`
	Trigger        string    `json:"trigger"`
	LatestDraw     int       `json:"latest_draw"`
	Resolved       int       `json:"resolved"`
	Pending        int       `json:"pending"`
	Failed         int       `json:"failed"`
	Deferred       int       `json:"deferred"`
	Skipped        int       `json:"skipped"`
	OutcomesMerged int       `json:"outcomes_merged"`
	BetFailures    int       `json:"bet_failures"`
	Complete       bool      `json:"complete"`
	StartedAt      time.Time `json:"started_at"`
	DurationMs     int64     `json:"duration_ms"`
}

// KafkaNotifier publishes pass results to the outcomes topic.
// Outcome messages are keyed by bet id so a bet's events stay ordered.
type KafkaNotifier struct {
	writer events.MessageWriter
	logger *zap.Logger
}

// NewKafkaNotifier creates a notifier on writer.
func NewKafkaNotifier(writer events.MessageWriter, logger *zap.Logger) *KafkaNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaNotifier{writer: writer, logger: logger}
}

// PassCompleted writes one message per merged outcome and one pass summary.
func (n *KafkaNotifier) PassCompleted(ctx context.Context, report *reconcile.Report, merged []reconcile.Outcome) error {
	passID := uuid.NewString()
	msgs := make([]kafka.Message, 0, len(merged)+1)

	for _, o := range merged {
		msg, err := events.Message(strconv.FormatInt(o.BetID, 10), OutcomeEvent{
			Type:         EventOutcome,
			PassID:       passID,
			BetID:        o.BetID,
			Draw:         o.Draw,
			Hits:         o.Hits,
			Tier:         o.Tier,
			Winning:      o.Tier.IsWinning(),
			DrawnNumbers: o.DrawnNumbers,
			ResolvedAt:   o.ResolvedAt,
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	summary, err := events.Message(EventPassCompleted, PassEvent{
		Type:           EventPassCompleted,
		PassID:         passID,
		Trigger:        report.Trigger,
		LatestDraw:     report.LatestDraw,
		Resolved:       report.Resolved,
		Pending:        report.Pending,
		Failed:         report.Failed,
		Deferred:       report.Deferred,
		Skipped:        report.Skipped,
		OutcomesMerged: report.OutcomesMerged,
		BetFailures:    len(report.BetFailures),
		Complete:       report.Complete(),
		StartedAt:      report.StartedAt,
		DurationMs:     report.Duration().Milliseconds(),
	})
	if err != nil {
		return err
	}
	msgs = append(msgs, summary)

	if err := n.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish %d events: %w", len(msgs), err)
	}
	n.logger.Debug("Published pass events", zap.String("pass_id", passID), zap.Int("outcomes", len(merged)))
	return nil
}

// Close closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
