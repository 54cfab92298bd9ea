package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rabbitmq/amqp091-go"

	"github.com/pkordes/stay-planner/internal/domain"
)

// publisher is the subset of *amqp091.Channel the AMQP notifier uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQP publishes each alert as a persistent JSON message on a topic exchange.
type AMQP struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	pub      publisher
	exchange string
}

// DialAMQP connects to the broker and declares the durable topic exchange.
func DialAMQP(rawURL, exchange string) (*AMQP, error) {
	cleanURL, err := sanitizeAMQPURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("notify.DialAMQP: %w", err)
	}

	conn, err := amqp091.Dial(cleanURL)
	if err != nil {
		return nil, fmt.Errorf("notify.DialAMQP: dial: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("notify.DialAMQP: channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("notify.DialAMQP: declare exchange %q: %w", exchange, err)
	}

	return &AMQP{conn: conn, channel: channel, pub: channel, exchange: exchange}, nil
}

// newAMQP builds a notifier around an existing publisher. Tests only.
func newAMQP(pub publisher, exchange string) *AMQP {
	return &AMQP{pub: pub, exchange: exchange}
}

func (a *AMQP) Notify(ctx context.Context, alert domain.Alert) error {
	body, err := json.Marshal(NewEvent(alert))
	if err != nil {
		return fmt.Errorf("notify.AMQP.Notify: marshal: %w", err)
	}

	err = a.pub.PublishWithContext(ctx,
		a.exchange,        // exchange
		RoutingKey(alert), // routing key
		false,             // mandatory
		false,             // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    domain.AlertKey(alert.UserID, alert.Threshold, alert.Date),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("notify.AMQP.Notify: publish: %w", err)
	}
	return nil
}

// Close closes the channel and connection.
func (a *AMQP) Close() {
	if a.channel != nil {
		a.channel.Close()
	}
	if a.conn != nil {
		a.conn.Close()
	}
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	// An explicit path names the vhost and is left alone.
	if u.Path == "" {
		clean += "/"
	}
	return clean, nil
}
