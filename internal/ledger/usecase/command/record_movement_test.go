package command

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

// mockProductRepo is an in-memory ProductRepository with the same
// compare-and-swap commit semantics as the real one.
type mockProductRepo struct {
	mu            sync.Mutex
	products      map[uint]domain.Product
	ledger        []domain.Transaction
	findCalls     int
	forceConflict int // fail this many commits with ErrConflict first
}

func newMockProductRepo(products ...domain.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[uint]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = uint(len(m.products) + 1)
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepo) FindByID(id uint) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) FindAll(limit, offset int) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) Update(product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepo) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) CommitMovement(ctx context.Context, updated *domain.Product, txn *domain.Transaction, expectedStock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forceConflict > 0 {
		m.forceConflict--
		return domain.ErrConflict
	}

	current, ok := m.products[updated.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if current.Stock != expectedStock {
		return domain.ErrConflict
	}

	current.Stock = updated.Stock
	m.products[updated.ID] = current
	m.ledger = append(m.ledger, *txn)
	return nil
}

func (m *mockProductRepo) stockOf(id uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Stock
}

func (m *mockProductRepo) ledgerLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ledger)
}

var (
	admin   = authz.Principal{UserID: 1, Username: "root", Role: authz.RoleAdmin}
	manager = authz.Principal{UserID: 2, Username: "mia", Role: authz.RoleManager}
	staff   = authz.Principal{UserID: 3, Username: "sam", Role: authz.RoleStaff}
)

// Scenario: stock 10, reorder point 5, manager records out/3.
func TestRecordMovement_StockOut(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Name: "Widget", Stock: 10, ReorderPoint: 5})
	h := NewRecordMovementHandler(repo, nil, nil)

	result, err := h.Handle(context.Background(), RecordMovementCommand{
		Principal: manager,
		ProductID: 1,
		Type:      domain.MovementOut,
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if result.Product.Stock != 7 {
		t.Errorf("expected stock 7, got %d", result.Product.Stock)
	}
	if repo.stockOf(1) != 7 {
		t.Errorf("expected persisted stock 7, got %d", repo.stockOf(1))
	}
	if repo.ledgerLen() != 1 {
		t.Errorf("expected 1 ledger entry, got %d", repo.ledgerLen())
	}
	if result.Transaction.Type != domain.MovementOut || result.Transaction.Quantity != 3 {
		t.Errorf("unexpected transaction: %+v", result.Transaction)
	}
}

// Scenario: a stock-out larger than current stock is rejected and mutates
// nothing.
func TestRecordMovement_InsufficientStock(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 7, ReorderPoint: 5})
	h := NewRecordMovementHandler(repo, nil, nil)

	_, err := h.Handle(context.Background(), RecordMovementCommand{
		Principal: manager,
		ProductID: 1,
		Type:      domain.MovementOut,
		Quantity:  8,
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if repo.stockOf(1) != 7 {
		t.Errorf("rejected movement changed stock: %d", repo.stockOf(1))
	}
	if repo.ledgerLen() != 0 {
		t.Errorf("rejected movement recorded a transaction")
	}
}

// Scenario: staff may not record movements; the denial happens before the
// ledger engine or the repository is touched.
func TestRecordMovement_StaffForbidden(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 10})
	h := NewRecordMovementHandler(repo, nil, nil)

	_, err := h.Handle(context.Background(), RecordMovementCommand{
		Principal: staff,
		ProductID: 1,
		Type:      domain.MovementIn,
		Quantity:  1,
	})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if repo.findCalls != 0 {
		t.Errorf("repository consulted despite denial")
	}
	if repo.stockOf(1) != 10 || repo.ledgerLen() != 0 {
		t.Errorf("denied movement left a trace")
	}
}

func TestRecordMovement_InvalidQuantity(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 10})
	h := NewRecordMovementHandler(repo, nil, nil)

	for _, quantity := range []int{0, -5} {
		_, err := h.Handle(context.Background(), RecordMovementCommand{
			Principal: admin,
			ProductID: 1,
			Type:      domain.MovementIn,
			Quantity:  quantity,
		})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}

	if repo.ledgerLen() != 0 {
		t.Errorf("invalid movement recorded a transaction")
	}
}

func TestRecordMovement_ProductNotFound(t *testing.T) {
	repo := newMockProductRepo()
	h := NewRecordMovementHandler(repo, nil, nil)

	_, err := h.Handle(context.Background(), RecordMovementCommand{
		Principal: admin,
		ProductID: 99,
		Type:      domain.MovementIn,
		Quantity:  1,
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

// A transient conflict is retried against a fresh snapshot and succeeds.
func TestRecordMovement_ConflictRetry(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 10})
	repo.forceConflict = 2
	h := NewRecordMovementHandler(repo, nil, nil)

	result, err := h.Handle(context.Background(), RecordMovementCommand{
		Principal: admin,
		ProductID: 1,
		Type:      domain.MovementOut,
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if result.Product.Stock != 6 {
		t.Errorf("expected stock 6, got %d", result.Product.Stock)
	}
}

// Conflicts beyond the retry budget surface ErrConflict unchanged.
func TestRecordMovement_ConflictExhausted(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 10})
	repo.forceConflict = maxCommitAttempts
	h := NewRecordMovementHandler(repo, nil, nil)

	_, err := h.Handle(context.Background(), RecordMovementCommand{
		Principal: admin,
		ProductID: 1,
		Type:      domain.MovementOut,
		Quantity:  4,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if repo.stockOf(1) != 10 || repo.ledgerLen() != 0 {
		t.Errorf("failed movement left partial state")
	}
}

type mockIdemStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (m *mockIdemStore) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

func TestRecordMovement_DuplicateRequest(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 10})
	h := NewRecordMovementHandler(repo, &mockIdemStore{}, nil)

	cmd := RecordMovementCommand{
		Principal: admin,
		ProductID: 1,
		Type:      domain.MovementOut,
		Quantity:  2,
		RequestID: "req-1",
	}

	if _, err := h.Handle(context.Background(), cmd); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	_, err := h.Handle(context.Background(), cmd)
	if !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}

	if repo.stockOf(1) != 8 {
		t.Errorf("expected stock decremented once to 8, got %d", repo.stockOf(1))
	}
	if repo.ledgerLen() != 1 {
		t.Errorf("expected single ledger entry, got %d", repo.ledgerLen())
	}
}

type mockPublisher struct {
	mu       sync.Mutex
	recorded []domain.Transaction
	lowStock []uint
}

func (m *mockPublisher) PublishMovementRecorded(ctx context.Context, product domain.Product, txn domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, txn)
	return nil
}

func (m *mockPublisher) PublishLowStock(ctx context.Context, product domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lowStock = append(m.lowStock, product.ID)
	return nil
}

func TestRecordMovement_PublishesEvents(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 6, ReorderPoint: 5})
	pub := &mockPublisher{}
	h := NewRecordMovementHandler(repo, nil, pub)

	// 6 -> 4 crosses the reorder point.
	_, err := h.Handle(context.Background(), RecordMovementCommand{
		Principal: manager,
		ProductID: 1,
		Type:      domain.MovementOut,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("movement failed: %v", err)
	}

	if len(pub.recorded) != 1 {
		t.Errorf("expected 1 movement event, got %d", len(pub.recorded))
	}
	if len(pub.lowStock) != 1 || pub.lowStock[0] != 1 {
		t.Errorf("expected low stock event for product 1, got %v", pub.lowStock)
	}
}

// Scenario: two concurrent stock-outs of 6 against stock 10 — exactly one
// may win; stock must never go negative.
func TestRecordMovement_ConcurrentStockOut(t *testing.T) {
	repo := newMockProductRepo(domain.Product{ID: 1, Stock: 10})
	h := NewRecordMovementHandler(repo, nil, nil)

	var wg sync.WaitGroup
	var successes, insufficient atomic.Int32

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Handle(context.Background(), RecordMovementCommand{
				Principal: manager,
				ProductID: 1,
				Type:      domain.MovementOut,
				Quantity:  6,
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrConflict):
				insufficient.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes.Load())
	}
	if repo.stockOf(1) != 4 {
		t.Errorf("expected final stock 4, got %d", repo.stockOf(1))
	}
}

// Many concurrent small stock-outs: whatever the interleaving, stock stays
// non-negative and matches the ledger.
func TestRecordMovement_ConcurrentInvariant(t *testing.T) {
	initialStock := 20
	totalRequests := 50

	repo := newMockProductRepo(domain.Product{ID: 1, Stock: initialStock})
	h := NewRecordMovementHandler(repo, nil, nil)

	var wg sync.WaitGroup
	var successes atomic.Int32

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Handle(context.Background(), RecordMovementCommand{
				Principal: admin,
				ProductID: 1,
				Type:      domain.MovementOut,
				Quantity:  1,
			})
			if err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	final := repo.stockOf(1)
	if final < 0 {
		t.Fatalf("stock went negative: %d", final)
	}
	if final != initialStock-int(successes.Load()) {
		t.Errorf("stock %d does not match %d successes from %d", final, successes.Load(), initialStock)
	}
	if repo.ledgerLen() != int(successes.Load()) {
		t.Errorf("ledger has %d entries for %d successes", repo.ledgerLen(), successes.Load())
	}
}
