package instrument

import "context"

type correlationKey struct{}

// InvalidCorrelationID is returned by GetCorrelationID when ctx carries none.
const InvalidCorrelationID = "[invalid_chain_id]"

// SetCorrelationID returns a copy of ctx carrying the request correlation id.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationKey{}, cID)
}

// GetCorrelationID returns the correlation id stored in ctx.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return InvalidCorrelationID
	}
	if cID, ok := ctx.Value(correlationKey{}).(string); ok && cID != "" {
		return cID
	}

	return InvalidCorrelationID
}
