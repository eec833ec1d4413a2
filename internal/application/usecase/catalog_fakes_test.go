package usecase_test

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

type fakeHSNRepo struct {
	items map[string]*entity.HSNCode
}

func newFakeHSNRepo() *fakeHSNRepo { return &fakeHSNRepo{items: map[string]*entity.HSNCode{}} }

func (r *fakeHSNRepo) Create(_ context.Context, h *entity.HSNCode) error {
	for _, it := range r.items {
		if it.Code == h.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *h
	r.items[h.ID] = &cp
	return nil
}

func (r *fakeHSNRepo) GetByID(_ context.Context, id string) (*entity.HSNCode, error) {
	h, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *fakeHSNRepo) Update(_ context.Context, h *entity.HSNCode) error {
	if _, ok := r.items[h.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *h
	r.items[h.ID] = &cp
	return nil
}

func (r *fakeHSNRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeHSNRepo) List(context.Context, int, int) ([]*entity.HSNCode, error) {
	out := make([]*entity.HSNCode, 0, len(r.items))
	for _, h := range r.items {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type fakeBatchRepo struct {
	items map[string]*entity.Batch
}

func newFakeBatchRepo() *fakeBatchRepo { return &fakeBatchRepo{items: map[string]*entity.Batch{}} }

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	if _, ok := r.items[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeBatchRepo) List(context.Context, int, int) ([]*entity.Batch, error) {
	out := make([]*entity.Batch, 0, len(r.items))
	for _, b := range r.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BatchNumber < out[j].BatchNumber })
	return out, nil
}

type fakeDiscountRepo struct {
	items map[string]*entity.DiscountRequest
}

func newFakeDiscountRepo(ds ...*entity.DiscountRequest) *fakeDiscountRepo {
	r := &fakeDiscountRepo{items: map[string]*entity.DiscountRequest{}}
	for _, d := range ds {
		r.items[d.ID] = d
	}
	return r
}

func (r *fakeDiscountRepo) Create(_ context.Context, d *entity.DiscountRequest) error {
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDiscountRepo) GetByID(_ context.Context, id string) (*entity.DiscountRequest, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDiscountRepo) UpdateStatus(_ context.Context, d *entity.DiscountRequest) error {
	cur, ok := r.items[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status, cur.ApprovedBy, cur.UpdatedAt = d.Status, d.ApprovedBy, d.UpdatedAt
	return nil
}

func (r *fakeDiscountRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeDiscountRepo) List(context.Context, int, int) ([]*entity.DiscountRequest, error) {
	out := make([]*entity.DiscountRequest, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeNotifier struct {
	err   error
	lines []string
}

func (f *fakeNotifier) Append(topic, message string) error {
	if f.err != nil {
		return f.err
	}
	f.lines = append(f.lines, topic+"|"+message)
	return nil
}
