package profile

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
	"lavka/internal/infrastructure/storage/jsonstore"
	"lavka/pkg/logger"
)

// Collection is the persisted document: profile name → profile.
type Collection map[string]*Profile

// Service owns the profile collection: an in-memory cache backed by the
// JSON store. Every mutation rewrites the whole collection; there is no
// partial persistence.
//
// Concurrency model: one lock per profile serializes read-modify-write
// cycles, mutations run against a deep copy that is published into the
// cache only after the save succeeds.
type Service struct {
	store *jsonstore.Store

	mu    sync.Mutex
	cache Collection
	locks map[string]*sync.Mutex
}

// NewService creates the service and loads the collection once.
func NewService(ctx context.Context, store *jsonstore.Store) (*Service, error) {
	s := &Service{
		store: store,
		cache: Collection{},
		locks: map[string]*sync.Mutex{},
	}

	if err := store.Load(ctx, &s.cache); err != nil {
		return nil, err
	}
	if s.cache == nil {
		s.cache = Collection{}
	}

	logger.Info(ctx, "profile collection loaded", "profiles", len(s.cache))
	return s, nil
}

// List returns all profile names, sorted.
func (s *Service) List(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.cache))
	for name := range s.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a deep copy of the named profile. A freshly referenced
// profile is created default-initialized and persisted immediately, so it
// survives a subsequent read.
func (s *Service) Get(ctx context.Context, name string) (*Profile, error) {
	if err := validateProfileName(name); err != nil {
		return nil, err
	}

	lock := s.profileLock(name)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	existing, ok := s.cache[name]
	if ok {
		snapshot := existing.Clone()
		s.mu.Unlock()
		return snapshot, nil
	}
	s.mu.Unlock()

	created := NewProfile()
	if err := s.publish(ctx, name, created); err != nil {
		return nil, err
	}

	logger.Info(ctx, "profile created on first reference", "profile", name)
	return created.Clone(), nil
}

// Create adds a new named profile, rejecting duplicates.
func (s *Service) Create(ctx context.Context, name string) error {
	if err := validateProfileName(name); err != nil {
		return err
	}

	lock := s.profileLock(name)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	_, exists := s.cache[name]
	s.mu.Unlock()
	if exists {
		return apperror.NewDuplicate("profile", "name", name)
	}

	if err := s.publish(ctx, name, NewProfile()); err != nil {
		return err
	}

	logger.Info(ctx, "profile created", "profile", name)
	return nil
}

// Update replaces the named profile and persists the collection.
func (s *Service) Update(ctx context.Context, name string, p *Profile) error {
	if err := validateProfileName(name); err != nil {
		return err
	}

	lock := s.profileLock(name)
	lock.Lock()
	defer lock.Unlock()

	return s.publish(ctx, name, p.Clone())
}

// Delete removes the named profile and persists the collection.
func (s *Service) Delete(ctx context.Context, name string) error {
	lock := s.profileLock(name)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	_, exists := s.cache[name]
	if !exists {
		s.mu.Unlock()
		return apperror.NewNotFound("profile", name)
	}

	next := s.cloneCollection()
	delete(next, name)
	s.mu.Unlock()

	if err := s.store.Save(ctx, next); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = next
	s.mu.Unlock()

	logger.Info(ctx, "profile deleted", "profile", name)
	return nil
}

// Mutate runs fn against a private deep copy of the named profile under its
// lock, then persists and publishes the copy. If fn or the save fails, the
// cached profile is untouched: no caller ever observes a half-mutated
// snapshot. The profile is created on first reference like Get.
func (s *Service) Mutate(ctx context.Context, name string, fn func(*Profile) error) error {
	if err := validateProfileName(name); err != nil {
		return err
	}

	lock := s.profileLock(name)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	var work *Profile
	if existing, ok := s.cache[name]; ok {
		work = existing.Clone()
	} else {
		work = NewProfile()
	}
	s.mu.Unlock()

	if err := fn(work); err != nil {
		return err
	}

	return s.publish(ctx, name, work)
}

// --- Product catalog operations (owned by the profile aggregate) ---

// AddProduct validates and appends a catalog product, materializing its
// empty stock entry.
func (s *Service) AddProduct(ctx context.Context, profileName string, name string, costPrice, profit types.Money) (Product, error) {
	product := NewProduct(strings.TrimSpace(name), costPrice, profit)

	err := s.Mutate(ctx, profileName, func(p *Profile) error {
		if err := product.Validate(ctx); err != nil {
			return err
		}
		if p.HasProductNamed(product.Name, "") {
			return apperror.NewDuplicate("product", "name", product.Name)
		}
		p.Products = append(p.Products, product)
		p.StockOf(product.Name)
		return nil
	})
	if err != nil {
		return Product{}, err
	}

	logger.Info(ctx, "product added", "profile", profileName, "product", product.Name)
	return product, nil
}

// EditProduct updates a catalog product. A rename cascades to the stock map
// key and to order item labels; captured order prices stay as they were.
func (s *Service) EditProduct(ctx context.Context, profileName, oldName string, newName string, costPrice, profit types.Money) (Product, error) {
	updated := NewProduct(strings.TrimSpace(newName), costPrice, profit)

	err := s.Mutate(ctx, profileName, func(p *Profile) error {
		if err := updated.Validate(ctx); err != nil {
			return err
		}

		idx := -1
		for i := range p.Products {
			if p.Products[i].Name == oldName {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.NewNotFound("product", oldName)
		}

		if p.HasProductNamed(updated.Name, oldName) {
			return apperror.NewDuplicate("product", "name", updated.Name)
		}

		p.Products[idx] = updated

		if oldName != updated.Name {
			if entry, ok := p.Stock[oldName]; ok {
				p.Stock[updated.Name] = entry
				delete(p.Stock, oldName)
			}
			relabelOrderItems(p, oldName, updated.Name)
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}

	logger.Info(ctx, "product updated", "profile", profileName, "product", updated.Name)
	return updated, nil
}

// DeleteProduct removes a product from the catalog and its stock entry,
// relabeling matching order items with the deleted-product sentinel.
func (s *Service) DeleteProduct(ctx context.Context, profileName, name string) error {
	err := s.Mutate(ctx, profileName, func(p *Profile) error {
		if _, ok := p.FindProduct(name); !ok {
			return apperror.NewNotFound("product", name)
		}

		kept := p.Products[:0]
		for _, product := range p.Products {
			if product.Name != name {
				kept = append(kept, product)
			}
		}
		p.Products = kept

		delete(p.Stock, name)
		relabelOrderItems(p, name, DeletedProductName)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product deleted", "profile", profileName, "product", name)
	return nil
}

// LastSaved exposes the persistence timestamp for health reporting.
func (s *Service) LastSaved() time.Time {
	return s.store.LastSaved()
}

// --- internals ---

// publish persists the collection with the named profile replaced, then
// swaps the cache. Callers must hold the profile lock.
func (s *Service) publish(ctx context.Context, name string, p *Profile) error {
	s.mu.Lock()
	next := s.cloneCollection()
	next[name] = p
	s.mu.Unlock()

	if err := s.store.Save(ctx, next); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = next
	s.mu.Unlock()
	return nil
}

// cloneCollection shallow-copies the map; profile values are shared with the
// cache, which is safe because published profiles are never mutated in place.
// Callers must hold s.mu.
func (s *Service) cloneCollection() Collection {
	next := make(Collection, len(s.cache)+1)
	for k, v := range s.cache {
		next[k] = v
	}
	return next
}

func (s *Service) profileLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}

func relabelOrderItems(p *Profile, from, to string) {
	for i := range p.Orders {
		for j := range p.Orders[i].Items {
			if p.Orders[i].Items[j].ProductName == from {
				p.Orders[i].Items[j].ProductName = to
			}
		}
	}
}

func validateProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperror.NewValidation("profile name cannot be empty").
			WithDetail("field", "name")
	}
	return nil
}
