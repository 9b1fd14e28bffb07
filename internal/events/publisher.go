// Package events provides NATS event publishing for stockboard-service
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/Tesseract-Nexus/go-shared/events"
	"github.com/sirupsen/logrus"
)

// StockEventPublisher handles publishing stock alert events to NATS
type StockEventPublisher struct {
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewStockEventPublisher creates a new stock event publisher
func NewStockEventPublisher(natsURL string, logger *logrus.Logger) (*StockEventPublisher, error) {
	if natsURL == "" {
		return nil, fmt.Errorf("NATS URL is required")
	}

	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "stockboard-service-publisher"

	publisher, err := events.NewPublisher(config, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	// Ensure inventory stream exists
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := publisher.EnsureStream(ctx, events.StreamInventory, []string{"inventory.>"}); err != nil {
		log.WithError(err).Warn("Failed to ensure inventory stream exists")
	}

	return &StockEventPublisher{
		publisher: publisher,
		logger:    log.WithField("component", "stock-events"),
	}, nil
}

// PublishLowStockAlert publishes an inventory.low_stock event for one SKU
// whose snapshot total dropped under the dashboard threshold.
func (p *StockEventPublisher) PublishLowStockAlert(ctx context.Context, tenantID string, sku string, externalID string, currentStock int, threshold int) error {
	event := events.NewInventoryEvent(events.InventoryLowStock, tenantID)
	event.Items = []events.InventoryItem{
		{
			ProductID:    externalID,
			Name:         sku,
			SKU:          sku,
			CurrentStock: currentStock,
			ReorderPoint: threshold,
		},
	}
	event.AlertLevel = "warning"
	event.AlertMessage = fmt.Sprintf("Low stock alert: %s has %d units remaining (threshold: %d)", sku, currentStock, threshold)
	event.CalculateSummary()

	if err := p.publisher.PublishInventory(ctx, event); err != nil {
		p.logger.WithFields(logrus.Fields{
			"sku":          sku,
			"currentStock": currentStock,
		}).WithError(err).Error("Failed to publish inventory.low_stock event")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"sku":          sku,
		"currentStock": currentStock,
		"threshold":    threshold,
	}).Info("Published inventory.low_stock event")
	return nil
}

// PublishOutOfStockAlert publishes an inventory.out_of_stock event for a SKU
// whose snapshot total reached zero.
func (p *StockEventPublisher) PublishOutOfStockAlert(ctx context.Context, tenantID string, sku string, externalID string) error {
	event := events.NewInventoryEvent(events.InventoryOutOfStock, tenantID)
	event.Items = []events.InventoryItem{
		{
			ProductID:    externalID,
			Name:         sku,
			SKU:          sku,
			CurrentStock: 0,
		},
	}
	event.AlertLevel = "critical"
	event.AlertMessage = fmt.Sprintf("Out of stock: %s is now out of stock", sku)
	event.CalculateSummary()

	if err := p.publisher.PublishInventory(ctx, event); err != nil {
		p.logger.WithField("sku", sku).WithError(err).Error("Failed to publish inventory.out_of_stock event")
		return err
	}

	p.logger.WithField("sku", sku).Info("Published inventory.out_of_stock event")
	return nil
}

// IsConnected returns true if connected to NATS
func (p *StockEventPublisher) IsConnected() bool {
	return p.publisher.IsConnected()
}

// Close closes the NATS connection
func (p *StockEventPublisher) Close() {
	p.publisher.Close()
}
