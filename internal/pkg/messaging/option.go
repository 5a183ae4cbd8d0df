package messaging

type options struct {
	group       string
	concurrency int
}

// Option configures a subscription.
type Option func(*options)

func newOptions(opts ...Option) options {
	o := options{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.concurrency <= 0 {
		o.concurrency = 1
	}
	return o
}

// WithGroup names the consumer group. Deliveries are load balanced inside a
// group and fanned out across groups. Drivers map it to their own concept:
// NSQ channel, NATS queue group, Kafka group id, Pub/Sub subscription.
func WithGroup(group string) Option {
	return func(o *options) { o.group = group }
}

// WithConcurrency sets how many handler goroutines run in parallel.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}
