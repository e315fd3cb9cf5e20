package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/jitter"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	notifyWaitTimeout = 30 * time.Second
	reconnectBase     = 2 * time.Second
	reconnectMax      = 30 * time.Second
	staleAfter        = 5 * time.Minute
	defaultBatchSize  = 10
)

// OutboxWorker публикует события outbox в Kafka. При старте вычитывает таблицу,
// затем просыпается по NOTIFY на канале channel и по периодическому опросу,
// если уведомление было потеряно.
type OutboxWorker struct {
	repo         usecase.OutboxRepository
	logger       logger.Logger
	producer     usecase.MessageProducer
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	dbConnStr    string
	channel      string
	batchSize    int
	pollInterval time.Duration
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	channel string,
	batchSize int,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &OutboxWorker{
		repo:         repo,
		logger:       logger,
		producer:     producer,
		dbConnStr:    dbConnStr,
		channel:      channel,
		batchSize:    batchSize,
		pollInterval: time.Minute,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	if n, err := w.repo.ReclaimStale(ctx, staleAfter); err != nil {
		w.logger.Warnf("reclaim stale outbox events failed: %v", err)
	} else if n > 0 {
		w.logger.Infof("returned %d stale outbox events to pending", n)
	}

	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain обрабатывает пачки, пока outbox не опустеет или пачка не упадет.
func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err := c.Exec(ctx, "LISTEN "+pgx.Identifier{w.channel}.Sanitize()); err != nil {
			_ = c.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", w.channel)
		return nil
	}

	for attempt := 0; conn == nil; attempt++ {
		if err := connect(); err != nil {
			w.logger.Warnf("LISTEN connect failed: %v", err)
			if !w.sleep(ctx, attempt) {
				return
			}
		}
	}
	defer func() { _ = conn.Close(context.WithoutCancel(ctx)) }()

	for {
		if ctx.Err() != nil {
			return
		}

		waitCtx, cancel := context.WithTimeout(ctx, notifyWaitTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}

			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(context.WithoutCancel(ctx))
			conn = nil
			for attempt := 0; conn == nil; attempt++ {
				if !w.sleep(ctx, attempt) {
					return
				}
				if err := connect(); err != nil {
					w.logger.Warnf("Reconnect failed: %v", err)
				}
			}
			continue
		}

		if w.isOutboxNotification(notif) {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) isOutboxNotification(notif *pgconn.Notification) bool {
	return notif != nil && notif.Channel == w.channel
}

// sleep ждет backoff перед переподключением. Возвращает false, если воркер останавливается.
func (w *OutboxWorker) sleep(ctx context.Context, attempt int) bool {
	return jitter.Sleep(ctx.Done(), reconnectBase, reconnectMax, attempt)
}

// processBatch забирает одну пачку и публикует ее. Возвращает true, если пачка
// была полной и в очереди могут остаться события.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	// После первой ошибки остаток пачки возвращается нетронутым,
	// чтобы порядок событий сохранился при следующей попытке
	var sendErr error
	for _, event := range events {
		if sendErr == nil {
			sendErr = w.processEvent(ctx, event)
			if sendErr == nil {
				if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
					w.logger.Warnf("mark processed failed: %v", err)
				}
				continue
			}
			w.logger.Warnf("publish event %s failed: %v", event.EventID, sendErr)
		}

		if err := w.repo.ReturnToPending(context.WithoutCancel(ctx), event.ID); err != nil {
			w.logger.Warnf("return event %d to pending failed: %v", event.ID, err)
		}
	}

	if sendErr != nil {
		return false, sendErr
	}

	return len(events) == w.batchSize, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.AggregateID, event.EventType, event.Payload))
	if err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}
	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
