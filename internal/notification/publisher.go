package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/pkg/logger"
	"internport-backend/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the durable queue mail is published to.
const DefaultQueue = "internport.mail"

// Publisher queues mail on RabbitMQ. The connection is opened lazily and
// re-dialed after the broker drops it.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{url: url, queue: queue}
}

// Connect dials the broker and declares the queue. It is safe to call again
// after a failure.
func (p *Publisher) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connectLocked()
}

func (p *Publisher) connectLocked() error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) Send(ctx context.Context, mail domain.Mail) error {
	err := p.publish(ctx, mail)
	metrics.MailsSent.WithLabelValues("amqp", metrics.Result(err)).Inc()
	if err != nil {
		logger.Log.Warn("mail publish failed", "queue", p.queue, "error", err)
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, mail domain.Mail) error {
	msg, err := encodeMail(mail, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return err
	}
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.closeLocked()
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func encodeMail(mail domain.Mail, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(mail)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal mail: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
