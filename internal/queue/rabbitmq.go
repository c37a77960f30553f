package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// * InvocationHandler answers one invocation event
type InvocationHandler func(ctx context.Context, event models.Event) models.Response

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQ struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
}

func NewRabbitMQ(url, queueName string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{
		conn:      conn,
		channel:   channel,
		queueName: queueName,
	}, nil
}

func (r *RabbitMQ) declare() (amqp.Queue, error) {
	return r.channel.QueueDeclare(
		r.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
}

// * ConsumeInvocations blocks, answering each delivery with a reply to its
// * ReplyTo queue, until ctx is done or the channel closes
func (r *RabbitMQ) ConsumeInvocations(ctx context.Context, handler InvocationHandler) error {
	queue, err := r.declare()
	if err != nil {
		return err
	}

	// * One in-flight invocation per consumer
	if err := r.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := r.channel.Consume(
		queue.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	logger.Info("Consuming invocations from %s", queue.Name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", queue.Name)
			}
			process(ctx, r.channel, d, handler)
		}
	}
}

func process(ctx context.Context, pub publisher, d amqp.Delivery, handler InvocationHandler) {
	resp := handleDelivery(ctx, d.Body, handler)

	if d.ReplyTo == "" {
		logger.Warn("Invocation %s has no reply queue; response dropped (status %d)", d.CorrelationId, resp.StatusCode)
	} else if err := reply(pub, d, resp); err != nil {
		logger.Error("Failed to reply to %s: %v", d.ReplyTo, err)
		if nackErr := d.Nack(false, true); nackErr != nil {
			logger.Error("Failed to requeue invocation %s: %v", d.CorrelationId, nackErr)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		logger.Error("Failed to ack invocation %s: %v", d.CorrelationId, err)
	}
}

func handleDelivery(ctx context.Context, body []byte, handler InvocationHandler) models.Response {
	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		appErr := errors.New(errors.RefInvalidEvent, "Invalid event", "Invalid event: "+err.Error(), err, errors.LevelWarning)
		logger.Warn("%v", appErr)
		b, _ := json.Marshal(errors.Message(appErr))
		return models.Response{StatusCode: errors.StatusCode(appErr), Body: string(b)}
	}

	return handler(ctx, event)
}

func reply(pub publisher, d amqp.Delivery, resp models.Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	return pub.Publish(
		"",
		d.ReplyTo,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			Body:          body,
		},
	)
}

// * Invoke publishes one event and waits for its correlated reply
func (r *RabbitMQ) Invoke(ctx context.Context, event models.Event) (models.Response, error) {
	if _, err := r.declare(); err != nil {
		return models.Response{}, err
	}

	replyQueue, err := r.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return models.Response{}, err
	}

	replies, err := r.channel.Consume(replyQueue.Name, "", true, true, false, false, nil)
	if err != nil {
		return models.Response{}, err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return models.Response{}, err
	}

	correlationID := uuid.NewString()
	err = r.channel.Publish(
		"",
		r.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			ReplyTo:       replyQueue.Name,
			Body:          body,
		},
	)
	if err != nil {
		return models.Response{}, err
	}

	for {
		select {
		case <-ctx.Done():
			return models.Response{}, ctx.Err()
		case d, ok := <-replies:
			if !ok {
				return models.Response{}, fmt.Errorf("reply channel closed before %s was answered", correlationID)
			}
			if d.CorrelationId != correlationID {
				continue
			}
			var resp models.Response
			if err := json.Unmarshal(d.Body, &resp); err != nil {
				return models.Response{}, err
			}
			return resp, nil
		}
	}
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
