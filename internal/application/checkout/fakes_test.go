package checkout_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

// memOrderStore almacenamiento "comprometido" de órdenes.
type memOrderStore struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
	items  map[string][]*entity.OrderItem
	calls  int // escrituras intentadas (Create + CreateItem)

	failItemAt   int // falla el n-ésimo CreateItem (1-based) dentro de una tx
	takenNumbers map[string]bool
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{
		orders:       map[string]*entity.Order{},
		items:        map[string][]*entity.OrderItem{},
		takenNumbers: map[string]bool{},
	}
}

func (s *memOrderStore) count() (orders, items int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, its := range s.items {
		items += len(its)
	}
	return len(s.orders), items
}

// stagedOrderRepo acumula escrituras de una tx; solo se aplican en commit.
type stagedOrderRepo struct {
	store     *memOrderStore
	orders    []*entity.Order
	items     []*entity.OrderItem
	itemCalls int
}

var _ repository.OrderRepository = (*stagedOrderRepo)(nil)

func (r *stagedOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.calls++
	if r.store.takenNumbers[o.OrderNumber] {
		return domain.ErrOrderNumberTaken
	}
	for _, existing := range r.store.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrOrderNumberTaken
		}
	}
	cp := *o
	cp.Items = nil
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *stagedOrderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.calls++
	r.itemCalls++
	if r.store.failItemAt > 0 && r.itemCalls == r.store.failItemAt {
		return errors.New("value too long for type character varying(255)")
	}
	cp := *it
	r.items = append(r.items, &cp)
	return nil
}

func (r *stagedOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return (&memOrderRepo{store: r.store}).GetByID(ctx, id)
}
func (r *stagedOrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	return (&memOrderRepo{store: r.store}).ListByUser(ctx, userID)
}
func (r *stagedOrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	return (&memOrderRepo{store: r.store}).List(ctx, f)
}
func (r *stagedOrderRepo) ItemsByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	return (&memOrderRepo{store: r.store}).ItemsByOrder(ctx, orderID)
}
func (r *stagedOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return (&memOrderRepo{store: r.store}).UpdateStatus(ctx, id, status)
}

// fakeTxRunner aplica las escrituras solo si fn termina sin error.
type fakeTxRunner struct {
	store *memOrderStore
	runs  int
}

func (t *fakeTxRunner) RunOrder(ctx context.Context, fn func(repository.OrderRepository) error) error {
	t.runs++
	staged := &stagedOrderRepo{store: t.store}
	if err := fn(staged); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, o := range staged.orders {
		t.store.orders[o.ID] = o
	}
	for _, it := range staged.items {
		t.store.items[it.OrderID] = append(t.store.items[it.OrderID], it)
	}
	return nil
}

// memOrderRepo lecturas sobre lo comprometido.
type memOrderRepo struct {
	store *memOrderStore
}

var _ repository.OrderRepository = (*memOrderRepo)(nil)

func (r *memOrderRepo) Create(context.Context, *entity.Order) error { return errors.New("solo lectura") }
func (r *memOrderRepo) CreateItem(context.Context, *entity.OrderItem) error {
	return errors.New("solo lectura")
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.store.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.store.orders {
		if f.Status == "" || o.Status == f.Status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *memOrderRepo) ItemsByOrder(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.OrderItem(nil), r.store.items[orderID]...), nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

// fakeRecorder cuenta eventos de métricas.
type fakeRecorder struct {
	placed   int
	failures map[string]int
}

func newFakeRecorder() *fakeRecorder { return &fakeRecorder{failures: map[string]int{}} }

func (r *fakeRecorder) OrderPlaced()             { r.placed++ }
func (r *fakeRecorder) OrderFailed(reason string) { r.failures[reason]++ }

type decliningPayments struct{}

func (decliningPayments) Capture(context.Context, string, string, decimal.Decimal) error {
	return errors.New("tarjeta rechazada")
}

type recordingPayments struct {
	references []string
	amounts    []decimal.Decimal
}

func (p *recordingPayments) Capture(_ context.Context, _, reference string, amount decimal.Decimal) error {
	p.references = append(p.references, reference)
	p.amounts = append(p.amounts, amount)
	return nil
}

type fakeReceipts struct{ got *entity.Order }

func (f *fakeReceipts) GenerateOrderReceipt(o *entity.Order) ([]byte, error) {
	f.got = o
	return []byte("%PDF-1.4 fake"), nil
}
