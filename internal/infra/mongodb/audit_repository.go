package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// OperatorEvent é o documento durável do canal de operação: reconciliação
// manual, falha de append no log e transferências concluídas.
// Tags 'bson', não 'json'.
type OperatorEvent struct {
	ID         string                 `bson:"_id,omitempty"`
	RoutingKey string                 `bson:"routing_key"`
	AccountID  string                 `bson:"account_id,omitempty"`
	Amount     int64                  `bson:"amount,omitempty"`
	Detail     map[string]interface{} `bson:"detail,omitempty"`
	ReceivedAt time.Time              `bson:"received_at"`
}

type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	collection := client.Database(dbName).Collection("ledger_events")
	return &AuditRepository{collection: collection}
}

func (r *AuditRepository) Save(ctx context.Context, event OperatorEvent) error {
	event.ReceivedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert operator event: %w", err)
	}
	return nil
}
