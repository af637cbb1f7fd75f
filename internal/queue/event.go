// Package queue defines message payloads exchanged over the message broker
// and the publisher and consumer for them.
package queue

// GreetingServedQueue is the durable queue greeting events are routed to.
const GreetingServedQueue = "greeting.served"

// GreetingServedEvent is published each time POST /api/greet answers with a
// greeting.  It carries everything downstream consumers need for logging or
// analytics without querying the greetings table.
type GreetingServedEvent struct {
    EventID         string `json:"event_id"`
    TimeOfDay       string `json:"time_of_day"`
    Language        string `json:"language"`
    Tone            string `json:"tone"`
    GreetingMessage string `json:"greeting_message"`
    ServedAt        string `json:"served_at"`
}
