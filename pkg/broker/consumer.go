package broker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sethvargo/go-retry"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

const (
	handleAttempts = 3
	handleBackoff  = time.Second
)

type Handler func(ctx context.Context, m kafka.Message) error

// Consumer reads a consumer group and commits a message once its handler is
// done with it. Handler errors are retried with backoff unless they are
// validation errors; the message is committed either way so a poison message
// does not block the partition.
type Consumer struct {
	l        *slog.Logger
	r        *kafka.Reader
	wg       *sync.WaitGroup
	handlers map[string]Handler
	backoff  time.Duration
}

func NewConsumer(brokers []string, groupID string, topics ...string) *Consumer {
	l := slog.Default().WithGroup("kafka").With("group_id", groupID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		GroupTopics: topics,
		Logger:      &infoLogger{l: l},
		ErrorLogger: &errorLogger{l: l},
	})

	return &Consumer{
		l:        l,
		r:        r,
		wg:       &sync.WaitGroup{},
		handlers: make(map[string]Handler),
		backoff:  handleBackoff,
	}
}

func (c *Consumer) Handle(topic string, h Handler) *Consumer {
	c.handlers[topic] = h
	return c
}

func (c *Consumer) Consume(ctx context.Context) *Consumer {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		for {
			m, err := c.r.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					c.l.Info("consumer stopped")
					return
				}

				c.l.Error(fmt.Sprintf("fetch kafka message: %s", err))

				continue
			}

			err = c.dispatch(ctx, m)
			if err != nil {
				c.l.Error(fmt.Sprintf("handle kafka msg: %s", err),
					"topic", m.Topic, "partition", m.Partition, "offset", m.Offset)
			}

			if ctx.Err() != nil {
				// Not committed, the message is redelivered after a restart.
				return
			}

			err = c.r.CommitMessages(ctx, m)
			if err != nil {
				c.l.Error(fmt.Sprintf("commit kafka msg: %s", err), "topic", m.Topic, "offset", m.Offset)
			}
		}
	}()

	return c
}

func (c *Consumer) dispatch(ctx context.Context, m kafka.Message) error {
	h, ok := c.handlers[m.Topic]
	if !ok {
		c.l.Warn("kafka handler not found", "topic", m.Topic)
		return nil
	}

	return Dispatch(ctx, h, m, c.backoff)
}

// Dispatch runs h, retrying failures other than validation errors.
func Dispatch(ctx context.Context, h Handler, m kafka.Message, backoff time.Duration) error {
	b := retry.WithMaxRetries(handleAttempts-1, retry.NewExponential(backoff))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := h(ctx, m)
		if err == nil || errors.Is(err, entity.ErrValidation) {
			return err
		}

		return retry.RetryableError(err)
	})
}

func (c *Consumer) Close() {
	err := c.r.Close()
	if err != nil {
		c.l.Error(fmt.Sprintf("close kafka reader: %s", err))
	}

	c.wg.Wait()
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Debug(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
