package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// AMQPBroker carries changes over a RabbitMQ topic exchange.
// Routing keys are "<table>.<owner>"; every subscription gets its own
// exclusive, auto-deleted queue bound to exactly its key.
type AMQPBroker struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	log          zerolog.Logger

	mu sync.Mutex // guards channel for publishing
}

func NewAMQPBroker(url, exchangeName string, log zerolog.Logger) (*AMQPBroker, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPBroker{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		log:          log,
	}, nil
}

func routingKey(table, owner string) string {
	return table + "." + owner
}

func (b *AMQPBroker) Publish(ctx context.Context, c Change) error {
	body, err := c.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	err = b.channel.PublishWithContext(
		ctx,
		b.exchangeName,                 // exchange
		routingKey(c.Table, c.OwnerID), // routing key
		false,                          // mandatory
		false,                          // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   c.At,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish change: %w", err)
	}

	b.log.Debug().
		Str("table", c.Table).
		Str("event", string(c.Event)).
		Str("record_id", c.RecordID).
		Msg("published change")
	return nil
}

func (b *AMQPBroker) Subscribe(ctx context.Context, f Filter) (Subscription, error) {
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey(f.Table, f.OwnerID), b.exchangeName, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	deliveries, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("start consuming: %w", err)
	}

	s := &amqpSub{
		channel: ch,
		filter:  f,
		out:     make(chan Change, subscriberBuffer),
		done:    make(chan struct{}),
		log:     b.log,
	}
	s.wg.Add(1)
	go s.pump(ctx, deliveries)
	return s, nil
}

func (b *AMQPBroker) Close() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

type amqpSub struct {
	channel *amqp091.Channel
	filter  Filter
	out     chan Change
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	log     zerolog.Logger
}

func (s *amqpSub) pump(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	defer s.wg.Done()
	defer close(s.out)

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			c, err := ChangeFromJSON(d.Body)
			if err != nil {
				s.log.Error().Err(err).Msg("failed to decode change")
				continue
			}
			if !s.filter.Match(c) {
				continue
			}
			select {
			case s.out <- c:
			case <-s.done:
				return
			default:
				s.log.Warn().Str("record_id", c.RecordID).Msg("subscriber behind, change dropped")
			}
		}
	}
}

func (s *amqpSub) Events() <-chan Change {
	return s.out
}

// Close stops the pump and waits for it, so Events is closed on return.
func (s *amqpSub) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.channel.Close()
		s.wg.Wait()
	})
	return err
}
