// Package repository holds the in-memory stock snapshot. The dataset is
// replaced wholesale on each successful fetch; individual records are never
// mutated after ingestion, so readers can hold the returned slice safely.
package repository

import (
	"sync"
	"time"

	"stockboard-service/internal/models"
)

// StockRepository guards the current snapshot for concurrent readers.
type StockRepository struct {
	mu        sync.RWMutex
	records   []models.StockRecord
	fetchedAt time.Time
}

// NewStockRepository returns an empty snapshot store.
func NewStockRepository() *StockRepository {
	return &StockRepository{}
}

// Replace swaps in a new dataset atomically.
func (r *StockRepository) Replace(records []models.StockRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = records
	r.fetchedAt = time.Now().UTC()
}

// Snapshot returns the current dataset and when it was fetched. The zero
// time means no fetch has succeeded yet.
func (r *StockRepository) Snapshot() ([]models.StockRecord, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records, r.fetchedAt
}

// Count returns the number of records in the current snapshot.
func (r *StockRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Clear drops the snapshot. Callers that want failure to blank the dashboard
// use this explicitly; a failed refresh never clears on its own.
func (r *StockRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
	r.fetchedAt = time.Time{}
}
