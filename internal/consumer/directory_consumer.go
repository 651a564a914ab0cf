package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const upsertTimeout = 5 * time.Second

var errBadPayload = errors.New("bad payload")

// DirectoryStore is the part of the store the consumer writes to.
type DirectoryStore interface {
	Catalog() repository.CatalogRepository
	Workers() repository.WorkerRepository
}

// DirectoryConsumer mirrors catalog items and worker profiles published by
// their owning services into the local read models.
type DirectoryConsumer struct {
	store  DirectoryStore
	logger *zap.Logger
}

func NewDirectoryConsumer(store DirectoryStore, logger *zap.Logger) *DirectoryConsumer {
	return &DirectoryConsumer{store: store, logger: logger}
}

// Start handles deliveries until msgs is closed. done is closed afterwards.
func (dc *DirectoryConsumer) Start(msgs <-chan amqp.Delivery) (done <-chan struct{}) {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		for msg := range msgs {
			dc.handleMessage(msg)
		}
		dc.logger.Info("delivery channel closed, stopping directory consumer")
	}()
	return ch
}

func (dc *DirectoryConsumer) handleMessage(msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), upsertTimeout)
	defer cancel()

	err := dc.apply(ctx, msg.RoutingKey, msg.Body)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.Is(err, errBadPayload):
		dc.logger.Warn("dropping directory message",
			zap.String("routing_key", msg.RoutingKey),
			zap.Error(err))
		_ = msg.Nack(false, false)
	default:
		dc.logger.Error("directory upsert failed",
			zap.String("routing_key", msg.RoutingKey),
			zap.Error(err))
		_ = msg.Nack(false, true) // requeue
	}
}

func (dc *DirectoryConsumer) apply(ctx context.Context, routingKey string, body []byte) error {
	switch {
	case strings.HasPrefix(routingKey, "catalog."):
		var item models.CatalogItem
		if err := json.Unmarshal(body, &item); err != nil {
			return fmt.Errorf("%w: %v", errBadPayload, err)
		}
		if item.ID == 0 || item.OwnerID == "" {
			return fmt.Errorf("%w: catalog item needs id and owner_id", errBadPayload)
		}
		if err := dc.store.Catalog().Upsert(ctx, &item); err != nil {
			return err
		}
		dc.logger.Info("synced catalog item", zap.Uint("catalog_item_id", item.ID), zap.String("owner_id", item.OwnerID))

	case strings.HasPrefix(routingKey, "worker."):
		var profile models.WorkerProfile
		if err := json.Unmarshal(body, &profile); err != nil {
			return fmt.Errorf("%w: %v", errBadPayload, err)
		}
		if profile.ID == "" {
			return fmt.Errorf("%w: worker profile needs id", errBadPayload)
		}
		if err := dc.store.Workers().Upsert(ctx, &profile); err != nil {
			return err
		}
		dc.logger.Info("synced worker profile",
			zap.String("worker_id", profile.ID),
			zap.Bool("profile_completed", profile.ProfileCompleted),
			zap.Bool("verified", profile.Verified))

	default:
		return fmt.Errorf("%w: unexpected routing key %q", errBadPayload, routingKey)
	}
	return nil
}
