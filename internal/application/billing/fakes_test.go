package billing_test

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	billingapp "github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// steps registra el orden en que el coordinador toca cada almacén.
type steps struct {
	mu   sync.Mutex
	list []string
}

func (s *steps) add(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, name)
}

// ── almacén principal ────────────────────────────────────────────────────────

type fakeBillStore struct {
	steps *steps
	err   error
	bills []*entity.Bill
}

func (f *fakeBillStore) Append(_ context.Context, b *entity.Bill) error {
	f.steps.add("primary")
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.bills {
		if existing.ID == b.ID {
			return domain.ErrDuplicate
		}
	}
	f.bills = append(f.bills, b)
	return nil
}

func (f *fakeBillStore) ListAll(context.Context) ([]*entity.Bill, error) {
	out := make([]*entity.Bill, len(f.bills))
	copy(out, f.bills)
	return out, f.err
}

func (f *fakeBillStore) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	for _, b := range f.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

// ── registro de cambios ──────────────────────────────────────────────────────

type fakeChangeLog struct {
	steps *steps
	err   error
	lines []string
}

func (f *fakeChangeLog) Append(topic, message string) error {
	f.steps.add("log")
	if f.err != nil {
		return f.err
	}
	f.lines = append(f.lines, topic+"|"+message)
	return nil
}

// ── espejo de productos ──────────────────────────────────────────────────────

type fakeMirror struct {
	steps    *steps
	err      error
	products map[string]*entity.Product
	applied  []map[string]int
}

var _ repository.ProductMirror = (*fakeMirror)(nil)

func newFakeMirror(st *steps, products ...*entity.Product) *fakeMirror {
	m := &fakeMirror{steps: st, products: map[string]*entity.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (f *fakeMirror) ReadAll(context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeMirror) WriteAll(_ context.Context, products []*entity.Product) error {
	f.products = map[string]*entity.Product{}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return nil
}

func (f *fakeMirror) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeMirror) Upsert(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeMirror) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeMirror) DecrementStock(_ context.Context, q map[string]int) error {
	if f.steps != nil {
		f.steps.add("mirror")
	}
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, q)
	for id, n := range q {
		if p, ok := f.products[id]; ok {
			p.Stock -= n
		}
	}
	return nil
}

// ── transacción relacional ───────────────────────────────────────────────────

// fakeTx simula commit/rollback: los cambios se acumulan en staging y solo se publican si fn no falla.
type fakeTx struct {
	steps      *steps
	users      map[string]bool
	existsErr  error
	decErr     error
	existsCall int

	bills      []*entity.Bill
	items      map[string][]entity.LineItem
	decrements map[string]int
	rollbacks  int
}

func newFakeTx(st *steps, users ...string) *fakeTx {
	f := &fakeTx{steps: st, users: map[string]bool{}, items: map[string][]entity.LineItem{}, decrements: map[string]int{}}
	for _, u := range users {
		f.users[u] = true
	}
	return f
}

func (f *fakeTx) RunBilling(ctx context.Context, fn func(repository.UserRepository, repository.BillRepository, repository.ProductRepository) error) error {
	f.steps.add("relational")
	stage := &txStage{parent: f, items: map[string][]entity.LineItem{}, decrements: map[string]int{}}
	if err := fn(&txUsers{f}, &txBills{stage}, &txProducts{stage}); err != nil {
		f.rollbacks++
		return err
	}
	f.bills = append(f.bills, stage.bills...)
	for k, v := range stage.items {
		f.items[k] = v
	}
	for k, v := range stage.decrements {
		f.decrements[k] += v
	}
	return nil
}

type txStage struct {
	parent     *fakeTx
	bills      []*entity.Bill
	items      map[string][]entity.LineItem
	decrements map[string]int
}

type txUsers struct{ f *fakeTx }

func (u *txUsers) Create(context.Context, *entity.User) error { return nil }
func (u *txUsers) GetByID(context.Context, string) (*entity.User, error) { return nil, nil }
func (u *txUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (u *txUsers) Update(context.Context, *entity.User) error { return nil }
func (u *txUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (u *txUsers) Exists(_ context.Context, id string) (bool, error) {
	u.f.existsCall++
	if u.f.existsErr != nil {
		return false, u.f.existsErr
	}
	return u.f.users[id], nil
}

type txBills struct{ s *txStage }

func (b *txBills) Create(_ context.Context, bill *entity.Bill) error {
	b.s.bills = append(b.s.bills, bill)
	return nil
}
func (b *txBills) CreateItems(_ context.Context, bill *entity.Bill) error {
	b.s.items[bill.ID] = bill.Items
	return nil
}
func (b *txBills) GetByID(context.Context, string) (*entity.Bill, error) { return nil, nil }

type txProducts struct{ s *txStage }

func (p *txProducts) Create(context.Context, *entity.Product) error { return nil }
func (p *txProducts) GetByID(context.Context, string) (*entity.Product, error) { return nil, nil }
func (p *txProducts) Update(context.Context, *entity.Product) error { return nil }
func (p *txProducts) List(context.Context, int, int) ([]*entity.Product, error) { return nil, nil }
func (p *txProducts) ListAll(context.Context) ([]*entity.Product, error) { return nil, nil }
func (p *txProducts) Delete(context.Context, string) error { return nil }
func (p *txProducts) DecrementStock(_ context.Context, id string, qty int) error {
	if p.s.parent.decErr != nil {
		return p.s.parent.decErr
	}
	p.s.decrements[id] += qty
	return nil
}

// ── configuración ────────────────────────────────────────────────────────────

type fakeSettings struct {
	s   entity.SystemSettings
	err error
}

func newFakeSettings() *fakeSettings {
	s := entity.DefaultSettings(dec("18"))
	s.CompanyName = "Joyería Sol"
	s.GSTIN = "29ABCDE1234F1Z5"
	s.CompanyPhone = "555-0101"
	return &fakeSettings{s: s}
}

func (f *fakeSettings) Get(context.Context) (*entity.SystemSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	cp := f.s
	return &cp, nil
}

// ── persistencia capturada (checkout) ────────────────────────────────────────

type capturePersister struct {
	bills []*entity.Bill
}

func (c *capturePersister) Persist(_ context.Context, b *entity.Bill) (*billingapp.Outcome, error) {
	c.bills = append(c.bills, b)
	return &billingapp.Outcome{Bill: b, Primary: billingapp.BranchResult{Status: billingapp.BranchOK}}, nil
}

var errBoom = errors.New("boom")
