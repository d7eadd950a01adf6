package messaging

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, handle func(amqp.Delivery) error) error {
	fc, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := handle(d); err != nil {
				log.Printf("Error processing message: %v", err)
				return
			}
			d.Ack(false)
		}
	}(fc)
	return nil
}

func decodeInto[V any](handle func(V)) func(amqp.Delivery) error {
	return func(d amqp.Delivery) error {
		var change V
		if err := json.Unmarshal(d.Body, &change); err != nil {
			return err
		}
		handle(change)
		return nil
	}
}

// Listen connects to rabbit and routes every change topic to the
// handler. Each topic consumes on its own channel.
func Listen(config RabbitConfig, handler ChangeHandler) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(config.Url, amqp.Config{Vhost: config.VHost})
	if err != nil {
		return nil, err
	}
	topics := []struct {
		topic  ChangeTopic
		handle func(amqp.Delivery) error
	}{
		{RowsUpsertedTopic, decodeInto(handler.OnRowsUpserted)},
		{RowsDeletedTopic, decodeInto(handler.OnRowsDeleted)},
		{DriverValueDeletedTopic, decodeInto(handler.OnDriverValueDeleted)},
		{OrderChangedTopic, decodeInto(handler.OnOrderChanged)},
	}
	for _, t := range topics {
		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, err
		}
		if err = DefineTopic(ch, config.Prefix, t.topic); err != nil {
			conn.Close()
			return nil, err
		}
		if err = ListenToTopic(ch, config.Prefix, t.topic, t.handle); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return conn, nil
}
