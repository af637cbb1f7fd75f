package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const maxBackoff = 30 * time.Second

// StartGreetingConsumer connects to RabbitMQ, declares the greeting.served
// queue and appends each event to <logDir>/greeting.log.  It reconnects with
// exponential backoff until ctx is cancelled, then returns ctx.Err().  Bad
// payloads are rejected without requeue so the loop keeps running.
func StartGreetingConsumer(ctx context.Context, url, logDir string) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("greeting-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < maxBackoff {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = consumeLoop(ctx, conn, logDir)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Printf("greeting-consumer: consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("greeting-consumer: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(GreetingServedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(GreetingServedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := handleMessage(logDir, d.Body); err != nil {
                log.Printf("greeting-consumer: handle message failed: %v", err)
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func handleMessage(logDir string, body []byte) error {
    var ev GreetingServedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(logDir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", logDir, err)
    }
    f, err := os.OpenFile(filepath.Join(logDir, "greeting.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func formatLine(ev GreetingServedEvent) string {
    return fmt.Sprintf("[%s] Greeting served | event_id=%s | time_of_day=%q | language=%q | tone=%q | message=%q\n",
        ev.ServedAt, ev.EventID, ev.TimeOfDay, ev.Language, ev.Tone, ev.GreetingMessage)
}

// sleep waits for d or until ctx is done; it reports false in the latter case.
func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
