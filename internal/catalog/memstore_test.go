package catalog_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/banner"
	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/catalog"
	"github.com/redeinformatica/vitrine/internal/category"
	"github.com/redeinformatica/vitrine/internal/item"
)

// memStore is an in-memory catalog.Store. WithinTx snapshots the tables and
// restores them when the callback fails.
type memStore struct {
	mu         sync.Mutex
	categories []category.Category
	items      []item.Item
	banners    []banner.Banner
	clock      time.Time

	// failCategoryDelete makes the next category delete fail.
	failCategoryDelete error
	// failBannerCreate makes the next banner insert fail.
	failBannerCreate error
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *memStore) Categories() category.Repository { return memCategories{s} }
func (s *memStore) Items() item.Repository          { return memItems{s} }
func (s *memStore) Banners() banner.Repository      { return memBanners{s} }

func (s *memStore) WithinTx(_ context.Context, fn func(catalog.Store) error) error {
	s.mu.Lock()
	cats := slices.Clone(s.categories)
	items := slices.Clone(s.items)
	banners := slices.Clone(s.banners)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.categories, s.items, s.banners = cats, items, banners
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) itemsOf(categoryID uuid.UUID) []item.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []item.Item
	for _, it := range s.items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out
}

func (s *memStore) bannersOf(userID uuid.UUID) []banner.Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []banner.Banner
	for _, b := range s.banners {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// --- categories ---

type memCategories struct{ s *memStore }

func (r memCategories) Create(_ context.Context, c *category.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.categories = append(r.s.categories, *c)
	return nil
}

func (r memCategories) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, category.ErrNotFound
}

func (r memCategories) ListByUser(ctx context.Context, userID uuid.UUID) ([]category.Category, error) {
	all, _ := r.ListAll(ctx)
	out := []category.Category{}
	for _, c := range all {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memCategories) ListAll(_ context.Context) ([]category.Category, error) {
	r.s.mu.Lock()
	out := slices.Clone(r.s.categories)
	r.s.mu.Unlock()
	slices.SortStableFunc(out, func(a, b category.Category) int { return strings.Compare(a.Name, b.Name) })
	if out == nil {
		out = []category.Category{}
	}
	return out, nil
}

func (r memCategories) Update(_ context.Context, id uuid.UUID, f category.UpdateFields) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.categories {
		c := &r.s.categories[i]
		if c.ID != id {
			continue
		}
		c.Name = f.Name
		c.Description = f.Description.Apply(c.Description)
		c.ImageID = f.ImageID.Apply(c.ImageID)
		c.BannerID = f.BannerID.Apply(c.BannerID)
		c.UpdatedAt = r.s.tick()
		cp := *c
		return &cp, nil
	}
	return nil, category.ErrNotFound
}

func (r memCategories) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failCategoryDelete; err != nil {
		r.s.failCategoryDelete = nil
		return err
	}
	n := len(r.s.categories)
	r.s.categories = slices.DeleteFunc(r.s.categories, func(c category.Category) bool { return c.ID == id })
	if len(r.s.categories) == n {
		return category.ErrNotFound
	}
	return nil
}

// --- items ---

type memItems struct{ s *memStore }

func (r memItems) Create(_ context.Context, it *item.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it.ID = uuid.New()
	it.CreatedAt = r.s.tick()
	it.UpdatedAt = it.CreatedAt
	r.s.items = append(r.s.items, *it)
	return nil
}

func (r memItems) GetByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, item.ErrNotFound
}

func (r memItems) filter(keep func(item.Item) bool) []item.Item {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []item.Item{}
	for _, it := range r.s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (r memItems) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]item.Item, error) {
	return r.filter(func(it item.Item) bool { return it.CategoryID == categoryID }), nil
}

func (r memItems) ListByUser(_ context.Context, userID uuid.UUID) ([]item.Item, error) {
	return r.filter(func(it item.Item) bool { return it.UserID == userID }), nil
}

func (r memItems) ListAll(_ context.Context) ([]item.Item, error) {
	return r.filter(func(item.Item) bool { return true }), nil
}

func (r memItems) Update(_ context.Context, id uuid.UUID, f item.UpdateFields) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.items {
		it := &r.s.items[i]
		if it.ID != id {
			continue
		}
		it.Name = f.Name
		it.Description = f.Description.Apply(it.Description)
		it.Price = f.Price
		it.Quantity = f.Quantity
		if p := f.ImageIDs.Apply(&it.ImageIDs); p != nil {
			it.ImageIDs = *p
		} else {
			it.ImageIDs = nil
		}
		it.ImageID = nil
		it.UpdatedAt = r.s.tick()
		cp := *it
		return &cp, nil
	}
	return nil, item.ErrNotFound
}

func (r memItems) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.items)
	r.s.items = slices.DeleteFunc(r.s.items, func(it item.Item) bool { return it.ID == id })
	if len(r.s.items) == n {
		return item.ErrNotFound
	}
	return nil
}

func (r memItems) DeleteByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.items)
	r.s.items = slices.DeleteFunc(r.s.items, func(it item.Item) bool { return it.CategoryID == categoryID })
	return int64(n - len(r.s.items)), nil
}

func (r memItems) DeleteOrphans(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.items)
	r.s.items = slices.DeleteFunc(r.s.items, func(it item.Item) bool {
		return !slices.ContainsFunc(r.s.categories, func(c category.Category) bool { return c.ID == it.CategoryID })
	})
	return int64(n - len(r.s.items)), nil
}

// --- banners ---

type memBanners struct{ s *memStore }

func (r memBanners) Create(_ context.Context, b *banner.Banner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failBannerCreate; err != nil {
		r.s.failBannerCreate = nil
		return err
	}
	for _, existing := range r.s.banners {
		if existing.UserID == b.UserID {
			return banner.ErrDuplicate
		}
	}
	b.ID = uuid.New()
	b.CreatedAt = r.s.tick()
	r.s.banners = append(r.s.banners, *b)
	return nil
}

func (r memBanners) GetByUser(_ context.Context, userID uuid.UUID) (*banner.Banner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.banners {
		if b.UserID == userID {
			return &b, nil
		}
	}
	return nil, banner.ErrNotFound
}

func (r memBanners) First(_ context.Context) (*banner.Banner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.banners) == 0 {
		return nil, banner.ErrNotFound
	}
	b := r.s.banners[0]
	return &b, nil
}

func (r memBanners) DeleteByUser(_ context.Context, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.banners)
	r.s.banners = slices.DeleteFunc(r.s.banners, func(b banner.Banner) bool { return b.UserID == userID })
	return len(r.s.banners) < n, nil
}

// --- blobs ---

// fakeBlobs resolves ids starting with "missing" to nil and ids starting
// with "broken" to an error; everything else resolves to a fixed URL.
type fakeBlobs struct {
	uploadErr error
	issued    int
}

var errStorage = errors.New("storage unavailable")

func (b *fakeBlobs) IssueUploadURL(_ context.Context) (*blob.Upload, error) {
	if b.uploadErr != nil {
		return nil, b.uploadErr
	}
	b.issued++
	id := uuid.NewString()
	return &blob.Upload{URL: "https://blobs.test/upload/" + id, StorageID: id, ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (b *fakeBlobs) ResolveURL(_ context.Context, id string) (*string, error) {
	switch {
	case strings.HasPrefix(id, "missing"):
		return nil, nil
	case strings.HasPrefix(id, "broken"):
		return nil, errStorage
	}
	u := "https://blobs.test/" + id
	return &u, nil
}
