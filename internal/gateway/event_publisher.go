package gateway

import "context"

// EventPublisher é o canal de eventos voltado à operação: movimentos
// concluídos, falhas de log e casos de reconciliação manual.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}
