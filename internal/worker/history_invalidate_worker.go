package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"studymate/internal/app"
)

// HistoryInvalidateWorker consumes history-change events and drops the
// cached merged history for the affected user. History writes themselves
// are synchronous; only cache invalidation flows through the queue.
type HistoryInvalidateWorker struct {
	conn      *amqp.Connection
	cache     app.HistoryCache
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHistoryInvalidateWorker(conn *amqp.Connection, cache app.HistoryCache, queueName string) *HistoryInvalidateWorker {
	return &HistoryInvalidateWorker{
		conn:      conn,
		cache:     cache,
		queueName: queueName,
	}
}

func (w *HistoryInvalidateWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event app.HistoryEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode history event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.cache.DeleteHistory(workerCtx, event.Username); err != nil {
					log.Printf("worker invalidate history failed: %v", err)
					_ = d.Nack(false, true)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *HistoryInvalidateWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
