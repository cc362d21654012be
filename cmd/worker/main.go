package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Guilherme-G-Cadilhe/Go-ATMCore-Banking-Terminal/internal/infra/mongodb"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// O worker é o lado consumidor do canal de operação: tudo que o ledger
// publica (reconciliação manual, falha de append, transferências concluídas)
// vira documento durável no MongoDB para o operador investigar.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente")
	}
	mongoUser := os.Getenv("MONGO_USER")
	mongoPass := os.Getenv("MONGO_PASS")
	mongoHost := os.Getenv("MONGO_HOST")
	if mongoHost == "" {
		mongoHost = "localhost"
	}
	mongoURI := "mongodb://" + mongoUser + ":" + mongoPass + "@" + mongoHost + ":27017"

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(clientOptions)
	if err != nil {
		log.Fatalf("Erro ao criar client MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Erro ao desconectar Mongo: %v", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatalf("Erro ao pingar MongoDB: %v", err)
	}
	log.Println("✅ Conectado ao MongoDB!")
	auditRepo := mongodb.NewAuditRepository(mongoClient, "atmcore_audit")

	rabbitUser := os.Getenv("RABBITMQ_USER")
	rabbitPass := os.Getenv("RABBITMQ_PASS")
	rabbitHost := os.Getenv("RABBITMQ_HOST")
	if rabbitHost == "" {
		rabbitHost = "localhost"
	}

	rabbitURL := "amqp://" + rabbitUser + ":" + rabbitPass + "@" + rabbitHost + ":5672/"
	conn, err := amqp.DialConfig(rabbitURL, amqp.Config{
		Properties: amqp.Table{
			"connection_name": "AuditWorker_Consumer",
		},
	})
	if err != nil {
		log.Fatalf("Erro ao conectar no RabbitMQ: %v", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Erro ao fechar conexão RabbitMQ: %v", err)
		}
	}()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Erro ao abrir canal: %v", err)
	}
	defer func() {
		if err := ch.Close(); err != nil {
			log.Printf("Erro ao fechar canal RabbitMQ: %v", err)
		}
	}()

	// Prefetch 1: uma mensagem por vez, Ack antes da próxima.
	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatalf("Erro ao configurar QoS: %v", err)
	}

	err = ch.ExchangeDeclare(
		"ledger_events", // name
		"topic",         // type
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		log.Fatalf("Erro ao declarar exchange: %v", err)
	}

	q, err := ch.QueueDeclare(
		"audit_queue", // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		log.Fatalf("Erro ao declarar fila: %v", err)
	}

	// Dois bindings: eventos de movimento e sinais de operação do ledger.
	for _, key := range []string{"transaction.#", "ledger.#"} {
		if err := ch.QueueBind(q.Name, key, "ledger_events", false, nil); err != nil {
			log.Fatalf("Erro ao fazer bind da fila (%s): %v", key, err)
		}
	}

	msgs, err := ch.Consume(
		q.Name,         // queue
		"audit_worker", // consumer tag
		false,          // auto-ack: manual, evento de operação não pode se perder
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		log.Fatalf("Erro ao registrar consumidor: %v", err)
	}

	notifyClose := make(chan *amqp.Error)
	ch.NotifyClose(notifyClose)

	log.Printf(" [*] Worker iniciado. Aguardando mensagens na fila %s...", q.Name)

	go func() {
		for {
			select {
			case err := <-notifyClose:
				if err != nil {
					log.Printf("🔴 Canal RabbitMQ fechado: %v", err)
					os.Exit(1)
				}
				return
			case d, ok := <-msgs:
				if !ok {
					log.Println("🔴 Canal de mensagens fechado.")
					os.Exit(1)
				}

				log.Printf(" [⬇️] Recebido (%s): %s", d.RoutingKey, d.Body)

				var payload map[string]interface{}
				if err := json.Unmarshal(d.Body, &payload); err != nil {
					log.Printf("Erro ao decodificar JSON: %v", err)
					if err := d.Nack(false, false); err != nil {
						log.Printf("Erro ao enviar Nack (JSON inválido): %v", err)
					}
					continue
				}

				event := mongodb.OperatorEvent{
					RoutingKey: d.RoutingKey,
					Detail:     payload,
				}
				if v, ok := payload["account_id"].(string); ok {
					event.AccountID = v
				}
				if v, ok := payload["amount"].(float64); ok {
					event.Amount = int64(v)
				}

				saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := auditRepo.Save(saveCtx, event); err != nil {
					log.Printf("Erro ao salvar no Mongo: %v", err)
					// requeue: o evento precisa acabar gravado
					if err := d.Nack(false, true); err != nil {
						log.Printf("Erro ao enviar Nack (Mongo erro): %v", err)
					}
					cancel()
					continue
				}
				cancel()

				if err := d.Ack(false); err != nil {
					log.Printf("Erro ao enviar Ack: %v", err)
				}
				log.Println(" [✅] Salvo no MongoDB e Ack enviado.")
			}
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	<-stopChan

	log.Println("Shutting down worker...")
}
