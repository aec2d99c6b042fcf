package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	writes   int
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo(ps ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	for _, e := range r.products {
		if e.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStatus(_ context.Context, id, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Status = status
	return true, nil
}

func (r *fakeProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
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
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	total := len(out)
	if f.Offset > len(out) {
		f.Offset = len(out)
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito
// ──────────────────────────────────────────────────────────────────────────────

type fakeCartRepo struct {
	mu       sync.Mutex
	qty      map[string]map[string]int // user → product → qty
	products *fakeProductRepo
	failAdd  error
}

var _ repository.CartRepository = (*fakeCartRepo)(nil)

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{qty: map[string]map[string]int{}, products: products}
}

func (r *fakeCartRepo) AddQuantity(_ context.Context, userID, productID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAdd != nil {
		return r.failAdd
	}
	if r.qty[userID] == nil {
		r.qty[userID] = map[string]int{}
	}
	r.qty[userID][productID] += delta
	return nil
}

func (r *fakeCartRepo) SetQuantity(_ context.Context, userID, productID string, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.qty[userID][productID]; !ok {
		return false, nil
	}
	r.qty[userID][productID] = quantity
	return true, nil
}

func (r *fakeCartRepo) Remove(_ context.Context, userID, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.qty[userID][productID]
	delete(r.qty[userID], productID)
	return ok, nil
}

func (r *fakeCartRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.qty, userID)
	return nil
}

func (r *fakeCartRepo) Lines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	r.mu.Lock()
	snapshot := map[string]int{}
	for pid, q := range r.qty[userID] {
		snapshot[pid] = q
	}
	r.mu.Unlock()

	var out []entity.CartLine
	for pid, q := range snapshot {
		p, _ := r.products.GetByID(ctx, pid)
		if p == nil {
			continue
		}
		out = append(out, entity.CartLine{ProductID: pid, SKU: p.SKU, Name: p.Name, Price: p.Price, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	writes int
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo(us ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeUserRepo) UpdateAccess(_ context.Context, id, status string, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status, u.IsAdmin = status, isAdmin
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes y stats
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
	items  map[string][]*entity.OrderItem
	writes int
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*entity.Order{}, items: map[string][]*entity.OrderItem{}}
	for _, o := range orders {
		r.orders[o.ID] = o
		r.items[o.ID] = o.Items
	}
	return r
}

func (r *fakeOrderRepo) Create(context.Context, *entity.Order) error {
	return errors.New("no usado")
}

func (r *fakeOrderRepo) CreateItem(context.Context, *entity.OrderItem) error {
	return errors.New("no usado")
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = nil
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if f.Status == "" || o.Status == f.Status {
			cp := *o
			cp.Items = nil
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (r *fakeOrderRepo) ItemsByOrder(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[orderID], nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

type fakeStatsRepo struct {
	stats     *repository.StoreStats
	err       error
	threshold int
}

func (r *fakeStatsRepo) GetStoreStats(_ context.Context, lowStockThreshold int) (*repository.StoreStats, error) {
	r.threshold = lowStockThreshold
	return r.stats, r.err
}
