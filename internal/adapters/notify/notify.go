// Package notify tells account holders about accepted withdrawal requests.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/go-redis/redis/v8"
)

// Message is the payload pushed for each accepted withdrawal.
type Message struct {
	Kind        string    `json:"kind"`
	CashInOutID string    `json:"cashInOutID"`
	AccountID   string    `json:"accountID"`
	Currency    string    `json:"currency"`
	AbsAmount   string    `json:"absAmount"`
	EventDay    string    `json:"eventDay"`
	ValueDay    string    `json:"valueDay"`
	RequestedAt time.Time `json:"requestedAt"`
}

const kindWithdrawalAccepted = "withdrawal.accepted"

func newMessage(cio domain.CashInOut) Message {
	return Message{
		Kind:        kindWithdrawalAccepted,
		CashInOutID: cio.CashInOutID,
		AccountID:   cio.AccountID,
		Currency:    cio.Currency,
		AbsAmount:   cio.AbsAmount.String(),
		EventDay:    cio.EventDay.Format(domain.DayLayout),
		ValueDay:    cio.ValueDay.Format(domain.DayLayout),
		RequestedAt: cio.RequestDate,
	}
}

// RedisNotifier pushes notifications onto a Redis list consumed by the mailer.
type RedisNotifier struct {
	client redis.Cmdable
	queue  string
}

var _ portssvc.Notifier = (*RedisNotifier)(nil)

// NewRedisNotifier creates a notifier writing to queue.
func NewRedisNotifier(client redis.Cmdable, queue string) *RedisNotifier {
	return &RedisNotifier{client: client, queue: queue}
}

func (n *RedisNotifier) NotifyWithdrawal(ctx context.Context, cio domain.CashInOut) error {
	payload, err := json.Marshal(newMessage(cio))
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := n.client.LPush(ctx, n.queue, payload).Err(); err != nil {
		return fmt.Errorf("failed to push notification to %s: %w", n.queue, err)
	}
	return nil
}

// LogNotifier only logs. It is used when Redis is not configured.
type LogNotifier struct{}

var _ portssvc.Notifier = LogNotifier{}

func (LogNotifier) NotifyWithdrawal(ctx context.Context, cio domain.CashInOut) error {
	middleware.GetLoggerFromCtx(ctx).Info("Withdrawal accepted",
		slog.String("cash_in_out_id", cio.CashInOutID),
		slog.String("account_id", cio.AccountID),
		slog.String("amount", cio.AbsAmount.String()),
		slog.String("value_day", cio.ValueDay.Format(domain.DayLayout)))
	return nil
}

// NewRedisClient connects to addr and pings it. A nil client with an error is
// returned when the server is unreachable.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
