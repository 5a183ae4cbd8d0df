package messaging

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

// KafkaConfig configures the Kafka driver.
type KafkaConfig struct {
	Brokers []string
	Dialer  *kafka.Dialer
}

// Kafka is a Messaging backed by kafka-go. Offsets are committed after the
// handler returns, whatever the outcome, so one poison message cannot stall
// a partition.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	closed  bool
}

// NewKafka constructs a Kafka client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: cfg.Brokers,
		dialer:  cfg.Dialer,
		writers: make(map[string]*kafka.Writer),
	}, nil
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, ErrClosed
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(k.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	if k.dialer != nil {
		w.Transport = &kafka.Transport{TLS: k.dialer.TLS, SASL: k.dialer.SASLMechanism}
	}
	k.writers[topic] = w
	return w, nil
}

// Publish writes msg to topic. Key drives partitioning.
func (k *Kafka) Publish(ctx context.Context, topic string, msg Message) error {
	if topic == "" {
		return ErrTopicRequired
	}
	w, err := k.writer(topic)
	if err != nil {
		return err
	}

	km := kafka.Message{Key: []byte(msg.Key), Value: msg.Body, Time: time.Now()}
	for key, v := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	if err := w.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}
	return nil
}

// Subscribe reads topic as the consumer group named by WithGroup.
func (k *Kafka) Subscribe(ctx context.Context, topic string, h Handler, opts ...Option) error {
	if err := validate(topic, h); err != nil {
		return err
	}
	o := newOptions(opts...)
	if o.group == "" {
		return ErrGroupRequired
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  o.group,
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	defer func() { _ = reader.Close() }()

	queue := make(chan kafka.Message)
	var wg sync.WaitGroup
	for range o.concurrency {
		wg.Go(func() {
			for km := range queue {
				_ = dispatch(ctx, DriverKafka, h, fromKafka(km))
				if err := reader.CommitMessages(ctx, km); err != nil && ctx.Err() == nil {
					_ = dispatch(ctx, DriverKafka, func(context.Context, Message) error {
						return fmt.Errorf("commit offset: %w", err)
					}, fromKafka(km))
				}
			}
		})
	}

	var fetchErr error
	for {
		km, err := reader.FetchMessage(ctx)
		if err != nil {
			fetchErr = err
			break
		}
		queue <- km
	}
	close(queue)
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("messaging: kafka fetch: %w", fetchErr)
}

func fromKafka(km kafka.Message) Message {
	msg := Message{
		ID:        km.Topic + "/" + strconv.Itoa(km.Partition) + "/" + strconv.FormatInt(km.Offset, 10),
		Topic:     km.Topic,
		Key:       string(km.Key),
		Body:      km.Value,
		Timestamp: km.Time,
	}
	if len(km.Headers) > 0 {
		msg.Headers = make(map[string]string, len(km.Headers))
		for _, hd := range km.Headers {
			msg.Headers[hd.Key] = string(hd.Value)
		}
	}
	return msg
}

// Close flushes and closes every writer.
func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true

	var err error
	for _, w := range k.writers {
		err = errors.Join(err, w.Close())
	}
	return err
}
