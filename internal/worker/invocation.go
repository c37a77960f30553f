package worker

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/internal/queue"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

// * Consumer is satisfied by queue.RabbitMQ
type Consumer interface {
	ConsumeInvocations(ctx context.Context, handler queue.InvocationHandler) error
}

// * Handler is satisfied by service.Dispatcher
type Handler interface {
	Handle(ctx context.Context, source models.Source, event models.Event) models.Response
}

type InvocationWorker struct {
	consumer Consumer
	handler  Handler
	timeout  time.Duration
}

// * NewInvocationWorker bounds each invocation by timeout, standing in for the
// * host-enforced limit a Lambda runtime would apply. Zero means no bound.
func NewInvocationWorker(consumer Consumer, handler Handler, timeout time.Duration) *InvocationWorker {
	return &InvocationWorker{
		consumer: consumer,
		handler:  handler,
		timeout:  timeout,
	}
}

func (w *InvocationWorker) handle(ctx context.Context, event models.Event) models.Response {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	return w.handler.Handle(ctx, models.SourceQueue, event)
}

func (w *InvocationWorker) Run(ctx context.Context) error {
	logger.Info("starting invocation worker")

	err := w.consumer.ConsumeInvocations(ctx, w.handle)
	if err != nil {
		logger.Error("invocation worker stopped: %v", err)
		return err
	}

	logger.Info("stopping invocation worker")
	return nil
}
