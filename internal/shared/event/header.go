package event

// HeaderCorrelationID carries the request correlation id from publisher to
// consumer.
const HeaderCorrelationID string = "correlation_id"
