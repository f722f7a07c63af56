package service

import (
	"context"
	"dashboard/config"
	"dashboard/database"
	"dashboard/model"
	"dashboard/repository"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

type fixture struct {
	indexRepo     *repository.IndexRepository
	portfolioRepo *repository.PortfolioRepository
	manager       *config.ConfigManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := database.OpenSQL(context.Background(), database.DriverSqlite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.InitSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &fixture{
		indexRepo:     repository.NewIndexRepository(store),
		portfolioRepo: repository.NewPortfolioRepository(store),
		manager:       config.NewConfigManager(&model.RuntimeConfig{Benchmark: "NIFTY 50"}),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seed stores n consecutive daily values starting at 100 on 2023-01-01
func (f *fixture) seed(t *testing.T, name string, n int) {
	t.Helper()
	values := make([]model.IndexValue, n)
	for i := range values {
		values[i] = model.IndexValue{Name: name, Value: float64(100 + i), Date: day(2023, 1, 1).AddDate(0, 0, i)}
	}
	if _, err := f.indexRepo.SaveAll(context.Background(), values); err != nil {
		t.Fatal(err)
	}
}

// memoryStore is an in-process ReportStore
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) SetStruct(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memoryStore) GetAsStruct(_ context.Context, key string, target any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (m *memoryStore) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	return nil
}
