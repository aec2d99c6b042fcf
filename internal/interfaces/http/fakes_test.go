package http_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: todos los repositorios en memoria, con un contador de escrituras
// compartido para verificar que un request rechazado no mutó nada.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	products map[string]*entity.Product
	cart     map[string]map[string]int
	orders   map[string]*entity.Order
	items    map[string][]*entity.OrderItem
	writes   int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*entity.User{},
		products: map[string]*entity.Product{},
		cart:     map[string]map[string]int{},
		orders:   map[string]*entity.Order{},
		items:    map[string][]*entity.OrderItem{},
	}
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *memStore) Users() *memUserRepo       { return &memUserRepo{s} }
func (s *memStore) Products() *memProductRepo { return &memProductRepo{s} }
func (s *memStore) Cart() *memCartRepo        { return &memCartRepo{s} }
func (s *memStore) Orders() *memOrderRepo     { return &memOrderRepo{s} }

// ── usuarios ─────────────────────────────────────────────────────────────────

type memUserRepo struct{ s *memStore }

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.users {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.writes++
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), len(out), nil
}

func (r *memUserRepo) UpdateAccess(_ context.Context, id, status string, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.s.writes++
	u.Status, u.IsAdmin = status, isAdmin
	return nil
}

func (r *memUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

// ── productos ────────────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.products {
		if e.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.writes++
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.writes++
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStatus(_ context.Context, id, status string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return false, nil
	}
	r.s.writes++
	p.Status = status
	return true, nil
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.SKU), strings.ToLower(f.Search)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	r.s.writes++
	delete(r.s.products, id)
	for _, lines := range r.s.cart {
		delete(lines, id)
	}
	return true, nil
}

// ── carrito ──────────────────────────────────────────────────────────────────

type memCartRepo struct{ s *memStore }

var _ repository.CartRepository = (*memCartRepo)(nil)

func (r *memCartRepo) AddQuantity(_ context.Context, userID, productID string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[productID]; !ok {
		return domain.ErrNotFound
	}
	r.s.writes++
	if r.s.cart[userID] == nil {
		r.s.cart[userID] = map[string]int{}
	}
	r.s.cart[userID][productID] += delta
	return nil
}

func (r *memCartRepo) SetQuantity(_ context.Context, userID, productID string, quantity int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cart[userID][productID]; !ok {
		return false, nil
	}
	r.s.writes++
	r.s.cart[userID][productID] = quantity
	return true, nil
}

func (r *memCartRepo) Remove(_ context.Context, userID, productID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.cart[userID][productID]
	if ok {
		r.s.writes++
		delete(r.s.cart[userID], productID)
	}
	return ok, nil
}

func (r *memCartRepo) Clear(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.writes++
	delete(r.s.cart, userID)
	return nil
}

func (r *memCartRepo) Lines(_ context.Context, userID string) ([]entity.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.CartLine
	for pid, q := range r.s.cart[userID] {
		p := r.s.products[pid]
		out = append(out, entity.CartLine{ProductID: pid, SKU: p.SKU, Name: p.Name, Price: p.Price, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ── órdenes ──────────────────────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = (*memOrderRepo)(nil)

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.orders {
		if e.OrderNumber == o.OrderNumber {
			return domain.ErrOrderNumberTaken
		}
	}
	r.s.writes++
	cp := *o
	cp.Items = nil
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.writes++
	cp := *it
	r.s.items[it.OrderID] = append(r.s.items[it.OrderID], &cp)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if f.Status == "" || o.Status == f.Status {
			cp := *o
			if u, ok := r.s.users[o.UserID]; ok {
				cp.UserEmail = u.Email
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r *memOrderRepo) ItemsByOrder(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.OrderItem(nil), r.s.items[orderID]...), nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.s.writes++
	o.Status = status
	return nil
}

// memTxRunner ejecuta fn directamente sobre el repo en memoria.
type memTxRunner struct{ s *memStore }

func (t memTxRunner) RunOrder(_ context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	return fn(t.s.Orders())
}

// ── stats ────────────────────────────────────────────────────────────────────

type memStatsRepo struct{ s *memStore }

func (r *memStatsRepo) GetStoreStats(_ context.Context, lowStockThreshold int) (*repository.StoreStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &repository.StoreStats{TotalUsers: len(r.s.users), TotalProducts: len(r.s.products), TotalOrders: len(r.s.orders)}
	for _, p := range r.s.products {
		if p.Status == entity.ProductStatusActive {
			st.ActiveProducts++
		}
		if p.Stock < lowStockThreshold {
			st.LowStockProducts++
		}
	}
	for _, o := range r.s.orders {
		if o.Status == entity.OrderStatusPending {
			st.PendingOrders++
		}
		if o.Status != entity.OrderStatusCancelled {
			st.TotalRevenue = st.TotalRevenue.Add(o.Total)
		}
	}
	return st, nil
}

// fakeReceipts devuelve un PDF mínimo con el número de orden.
type fakeReceipts struct{}

func (fakeReceipts) GenerateOrderReceipt(o *entity.Order) ([]byte, error) {
	return []byte("%PDF-1.4 " + o.OrderNumber), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
