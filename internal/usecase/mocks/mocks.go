package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/usecase"
)

// MockEntryRepository is an in-memory mock of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.DayEntry

	InsertFunc               func(ctx context.Context, entry *domain.DayEntry) error
	GetByKeyFunc             func(ctx context.Context, counter, date string) (*domain.DayEntry, error)
	GetByKeyForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, counter, date string) (*domain.DayEntry, error)
	UpdateFunc               func(ctx context.Context, tx usecase.Transaction, entry *domain.DayEntry) error
	LatestTerminalBeforeFunc func(ctx context.Context, counter, date string) (*domain.DayEntry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.DayEntry),
	}
}

func entryKey(counter, date string) string {
	return fmt.Sprintf("%s|%s", counter, date)
}

// Seed stores an entry directly, bypassing the Insert hook.
func (m *MockEntryRepository) Seed(entry *domain.DayEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.entries[entryKey(entry.CounterName, entry.Date)] = &copied
}

func (m *MockEntryRepository) Insert(ctx context.Context, entry *domain.DayEntry) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entryKey(entry.CounterName, entry.Date)
	if _, ok := m.entries[key]; ok {
		return domain.ErrEntryExists
	}
	copied := *entry
	m.entries[key] = &copied
	return nil
}

func (m *MockEntryRepository) GetByKey(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, counter, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[entryKey(counter, date)]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByKeyForUpdate(ctx context.Context, tx usecase.Transaction, counter, date string) (*domain.DayEntry, error) {
	if m.GetByKeyForUpdateFunc != nil {
		return m.GetByKeyForUpdateFunc(ctx, tx, counter, date)
	}
	return m.GetByKey(ctx, counter, date)
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.DayEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, entry := range m.entries {
		if entry.ID == id {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.DayEntry, error) {
	return m.GetByID(ctx, id)
}

func (m *MockEntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.DayEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entryKey(entry.CounterName, entry.Date)
	if _, ok := m.entries[key]; !ok {
		return domain.ErrEntryNotFound
	}
	copied := *entry
	m.entries[key] = &copied
	return nil
}

func (m *MockEntryRepository) LatestTerminalBefore(ctx context.Context, counter, date string) (*domain.DayEntry, error) {
	if m.LatestTerminalBeforeFunc != nil {
		return m.LatestTerminalBeforeFunc(ctx, counter, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.DayEntry
	for _, entry := range m.entries {
		if entry.CounterName != counter || entry.Date >= date {
			continue
		}
		if !entry.Status.IsTerminal() {
			continue
		}
		if latest == nil || entry.Date > latest.Date {
			latest = entry
		}
	}
	if latest == nil {
		return nil, domain.ErrEntryNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *MockEntryRepository) ListByDate(ctx context.Context, date string) ([]*domain.DayEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DayEntry
	for _, entry := range m.entries {
		if entry.Date == date {
			copied := *entry
			result = append(result, &copied)
		}
	}
	return result, nil
}

// MockCounterRepository is an in-memory mock of CounterRepository.
type MockCounterRepository struct {
	mu       sync.RWMutex
	counters map[string]*domain.Counter
}

func NewMockCounterRepository(counters ...*domain.Counter) *MockCounterRepository {
	m := &MockCounterRepository{counters: make(map[string]*domain.Counter)}
	for _, c := range counters {
		m.counters[c.Name] = c
	}
	return m
}

func (m *MockCounterRepository) GetByName(ctx context.Context, name string) (*domain.Counter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.counters[name]; ok {
		return c, nil
	}
	return nil, domain.ErrCounterNotFound
}

func (m *MockCounterRepository) List(ctx context.Context) ([]*domain.Counter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Counter, 0, len(m.counters))
	for _, c := range m.counters {
		result = append(result, c)
	}
	return result, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func (m *MockIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}

// MockClock returns a pinned instant.
type MockClock struct {
	Instant time.Time
}

func (m *MockClock) Now() time.Time {
	if m.Instant.IsZero() {
		return time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC)
	}
	return m.Instant
}

func (m *MockClock) Today() string {
	return m.Now().Format("2006-01-02")
}

// MockRetrier executes the operation once, no retries.
type MockRetrier struct {
	Calls int
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	return operation()
}

// MockCache is an in-memory cache without TTL expiry.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// MockTokenIssuer returns a predictable token.
type MockTokenIssuer struct {
	GenerateFunc func(user *domain.User) (string, error)
}

func (m *MockTokenIssuer) Generate(user *domain.User) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(user)
	}
	return "token-" + user.ID, nil
}
