// Package kafka publica los movimientos del libro de stock en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/inventory"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

var _ inventory.MovementPublisher = (*Publisher)(nil)

// MovementEvent mensaje publicado por cada transacción confirmada.
type MovementEvent struct {
	ID            string    `json:"id"`
	AssociationID string    `json:"association_id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// Publisher envía los movimientos con un SyncProducer; la clave es el product_id para que
// los movimientos de un producto queden en la misma partición.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewProducerConfig configuración del productor: confirmación de todas las réplicas.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	return cfg
}

// Dial conecta con los brokers, reintentando unas veces mientras Kafka arranca.
func Dial(brokers []string, topic string, log *logger.Logger) (*Publisher, error) {
	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= 5; i++ {
		producer, err = sarama.NewSyncProducer(brokers, NewProducerConfig())
		if err == nil {
			return NewPublisher(producer, topic, log), nil
		}
		log.Warn().Err(err).Int("intento", i).Msg("esperando a Kafka")
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("kafka: crear productor: %w", err)
}

// NewPublisher envuelve un SyncProducer existente.
func NewPublisher(producer sarama.SyncProducer, topic string, log *logger.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, log: log.Component("kafka")}
}

// Publish envía un mensaje por movimiento en un solo lote.
func (p *Publisher) Publish(ctx context.Context, movements []entity.Transaction) error {
	if len(movements) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msgs := make([]*sarama.ProducerMessage, 0, len(movements))
	for _, m := range movements {
		data, err := json.Marshal(MovementEvent{
			ID:            m.ID,
			AssociationID: m.AssociationID,
			ProductID:     m.ProductID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			CreatedAt:     m.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("kafka: serializar movimiento: %w", err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(m.ProductID),
			Value: sarama.ByteEncoder(data),
		})
	}
	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("kafka: enviar %d movimientos: %w", len(msgs), err)
	}
	p.log.Debug().Str("topic", p.topic).Int("movements", len(msgs)).Msg("movimientos publicados")
	return nil
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
