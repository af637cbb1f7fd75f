package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends GreetingServedEvents to RabbitMQ.  The connection is
// dialed lazily on first use and re-dialed after any failure.  It is safe
// for concurrent use.
type Publisher struct {
    url string

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

// NewPublisher returns a Publisher for the broker at url.  No connection is
// made until the first publish.
func NewPublisher(url string) *Publisher {
    return &Publisher{url: url}
}

// PublishGreetingServed publishes ev as a persistent JSON message on the
// greeting.served queue.  Errors are logged and returned so the caller can
// choose to ignore them.
func (p *Publisher) PublishGreetingServed(ctx context.Context, ev GreetingServedEvent) error {
    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }

    p.mu.Lock()
    defer p.mu.Unlock()

    ch, err := p.channel()
    if err != nil {
        log.Printf("rabbitmq: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        MessageId:    ev.EventID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",                  // default exchange
        GreetingServedQueue, // routing key = queue name
        false,               // mandatory
        false,               // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        p.reset()
        return err
    }
    return nil
}

// Close tears down the broker connection, if any.
func (p *Publisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.reset()
    return nil
}

// channel returns the open channel, dialing and declaring the queue first if
// needed.  p.mu must be held.
func (p *Publisher) channel() (*amqp.Channel, error) {
    if p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.reset()

    conn, err := amqp.Dial(p.url)
    if err != nil {
        return nil, fmt.Errorf("dial: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, fmt.Errorf("channel open: %w", err)
    }
    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(GreetingServedQueue, true, false, false, false, nil); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        return nil, fmt.Errorf("queue declare: %w", err)
    }
    p.conn, p.ch = conn, ch
    return ch, nil
}

// reset drops the current connection.  p.mu must be held.
func (p *Publisher) reset() {
    if p.ch != nil {
        _ = p.ch.Close()
        p.ch = nil
    }
    if p.conn != nil {
        _ = p.conn.Close()
        p.conn = nil
    }
}
