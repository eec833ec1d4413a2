package usecase_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

var errBoom = errors.New("boom")

type fakeProductRepo struct {
	items map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{items: map[string]*entity.Product{}}
	for _, p := range products {
		r.items[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.items[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	all, _ := r.ListAll(ctx)
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(len(all), offset+limit)], nil
}

func (r *fakeProductRepo) ListAll(context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, qty int) error {
	if p, ok := r.items[id]; ok {
		p.Stock -= qty
	}
	return nil
}

type fakeMirror struct {
	items   map[string]*entity.Product
	failAll bool
	writes  int
}

func newFakeMirror() *fakeMirror { return &fakeMirror{items: map[string]*entity.Product{}} }

func (m *fakeMirror) ReadAll(context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *fakeMirror) WriteAll(_ context.Context, products []*entity.Product) error {
	if m.failAll {
		return errBoom
	}
	m.writes++
	m.items = map[string]*entity.Product{}
	for _, p := range products {
		m.items[p.ID] = p
	}
	return nil
}

func (m *fakeMirror) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.items[id], nil
}

func (m *fakeMirror) Upsert(_ context.Context, p *entity.Product) error {
	if m.failAll {
		return errBoom
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *fakeMirror) Delete(_ context.Context, id string) error {
	if m.failAll {
		return errBoom
	}
	delete(m.items, id)
	return nil
}

func (m *fakeMirror) DecrementStock(context.Context, map[string]int) error { return nil }

type fakeSettingsRepo struct {
	current *entity.SystemSettings
	saved   *entity.SystemSettings
}

func (r *fakeSettingsRepo) Get(context.Context) (*entity.SystemSettings, error) {
	cp := *r.current
	cp.BillFormats = map[string]entity.BillFormat{}
	for k, v := range r.current.BillFormats {
		cp.BillFormats[k] = v
	}
	return &cp, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *entity.SystemSettings) error {
	r.saved = s
	r.current = s
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*entity.User{}} }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(context.Context, int, int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type fakeAnalyticsRepo struct {
	summary    repository.SalesSummaryResult
	top        []repository.TopProductResult
	start, end time.Time
	limit      int
}

func (r *fakeAnalyticsRepo) GetSalesSummary(_ context.Context, start, end time.Time) (*repository.SalesSummaryResult, error) {
	r.start, r.end = start, end
	s := r.summary
	return &s, nil
}

func (r *fakeAnalyticsRepo) GetTopProducts(_ context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	r.start, r.end, r.limit = start, end, limit
	return r.top, nil
}
