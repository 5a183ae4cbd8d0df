package messaging

import (
	"encoding/json"
	"time"
)

// envelope carries key and headers through brokers whose frames are a bare
// body, such as NSQ.
type envelope struct {
	Key       string            `json:"key,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	Body      []byte            `json:"body"`
	Timestamp time.Time         `json:"ts"`
}

func wrap(msg Message, now time.Time) ([]byte, error) {
	return json.Marshal(envelope{Key: msg.Key, Headers: msg.Headers, Body: msg.Body, Timestamp: now})
}

// unwrap decodes an envelope, falling back to treating raw as the body so
// producers outside this package stay readable.
func unwrap(topic, id string, raw []byte) Message {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Body == nil {
		return Message{ID: id, Topic: topic, Body: raw}
	}

	return Message{
		ID:        id,
		Topic:     topic,
		Key:       env.Key,
		Headers:   env.Headers,
		Body:      env.Body,
		Timestamp: env.Timestamp,
	}
}
