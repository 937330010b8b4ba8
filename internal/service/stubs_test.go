package service_test

// stubs_test.go
// In-memory repository stubs shared by the service tests. They return
// gorm.ErrRecordNotFound where the real repos would, so the services'
// error translation paths are exercised for real.

import (
	"context"
	"fmt"
	"sort"
	"time"

	"smartpos/internal/config"
	"smartpos/internal/model"
	"smartpos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 30,
		TrialDays:       7,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ── In-memory BusinessRepository stub ─────────────────────────────────────────

type stubBusinessRepo struct {
	businesses map[uint]*model.Business
	nextID     uint
}

func newStubBusinessRepo() *stubBusinessRepo {
	return &stubBusinessRepo{businesses: make(map[uint]*model.Business), nextID: 1}
}

func (r *stubBusinessRepo) CreateTx(_ *gorm.DB, b *model.Business) error {
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now()
	r.businesses[b.ID] = b
	return nil
}

func (r *stubBusinessRepo) FindByID(_ context.Context, id uint) (*model.Business, error) {
	b, ok := r.businesses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBusinessRepo) FindByEmail(_ context.Context, email string) (*model.Business, error) {
	for _, b := range r.businesses {
		if b.Email == email {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBusinessRepo) UpdateCodeTx(_ *gorm.DB, id uint, code string) error {
	b, ok := r.businesses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.BusinessCode = code
	return nil
}

func (r *stubBusinessRepo) ListAll(_ context.Context) ([]model.Business, error) {
	ids := make([]uint, 0, len(r.businesses))
	for id := range r.businesses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.Business, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.businesses[id])
	}
	return out, nil
}

func (r *stubBusinessRepo) DB() *gorm.DB { return nil }

var _ repository.BusinessRepository = (*stubBusinessRepo)(nil)

// ── In-memory UserRepository stub ─────────────────────────────────────────────

type stubUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (r *stubUserRepo) CreateTx(_ *gorm.DB, u *model.User) error {
	return r.Create(context.Background(), u)
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindOwner(_ context.Context, businessID uint) (*model.User, error) {
	var owner *model.User
	for _, u := range r.users {
		if u.BusinessID == nil || *u.BusinessID != businessID || u.Role != model.RoleAdmin {
			continue
		}
		if owner == nil || u.ID < owner.ID {
			owner = u
		}
	}
	if owner == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return owner, nil
}

func (r *stubUserRepo) SuperadminExists(_ context.Context) (bool, error) {
	for _, u := range r.users {
		if u.Role == model.RoleSuperadmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) StampLastLogin(_ context.Context, id uint, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLogin = &at
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── In-memory SubscriptionRepository stub ─────────────────────────────────────

type stubSubscriptionRepo struct {
	byBusiness map[uint]*model.Subscription
	nextID     uint
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{byBusiness: make(map[uint]*model.Subscription), nextID: 1}
}

func (r *stubSubscriptionRepo) CreateTx(_ *gorm.DB, s *model.Subscription) error {
	s.ID = r.nextID
	r.nextID++
	r.byBusiness[s.BusinessID] = s
	return nil
}

func (r *stubSubscriptionRepo) FindByBusinessID(_ context.Context, businessID uint) (*model.Subscription, error) {
	s, ok := r.byBusiness[businessID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSubscriptionRepo) Update(_ context.Context, s *model.Subscription) error {
	r.byBusiness[s.BusinessID] = s
	return nil
}

var _ repository.SubscriptionRepository = (*stubSubscriptionRepo)(nil)

// ── In-memory ProductRepository stub ──────────────────────────────────────────

type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product), nextID: 1}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, businessID, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByNameTx(_ *gorm.DB, businessID uint, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.BusinessID == businessID && p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) ExistsByName(_ context.Context, businessID uint, name string) (bool, error) {
	_, err := r.FindByNameTx(nil, businessID, name)
	return err == nil, nil
}

func (r *stubProductRepo) List(_ context.Context, businessID uint) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.BusinessID == businessID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) CountByBusiness(_ context.Context, businessID uint) (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.BusinessID == businessID {
			count++
		}
	}
	return count, nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, businessID, id uint, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.BusinessID != businessID || p.Quantity < qty {
		return 0, nil
	}
	p.Quantity -= qty
	return 1, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── In-memory OrderRepository stub ────────────────────────────────────────────

type stubOrderRepo struct {
	orders   []*model.Order
	products *stubProductRepo
	seq      int64
	nextID   uint
}

func newStubOrderRepo(products *stubProductRepo) *stubOrderRepo {
	return &stubOrderRepo{products: products, nextID: 1}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	o.ID = r.nextID
	r.nextID++
	o.CreatedAt = time.Now()
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
		o.Lines[i].CreatedAt = o.CreatedAt
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) NextOrderNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubOrderRepo) HasRealSale(_ context.Context, businessID uint) (bool, error) {
	for _, o := range r.orders {
		if o.BusinessID == businessID && !o.IsDemo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrderRepo) HasDemoSale(_ context.Context, businessID uint) (bool, error) {
	for _, o := range r.orders {
		if o.BusinessID == businessID && o.IsDemo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrderRepo) PurgeDemoTx(_ *gorm.DB, businessID uint) error {
	kept := r.orders[:0]
	for _, o := range r.orders {
		if o.BusinessID == businessID && o.IsDemo {
			continue
		}
		kept = append(kept, o)
	}
	r.orders = kept
	return nil
}

func (r *stubOrderRepo) ListLines(_ context.Context, businessID uint) ([]model.Sale, error) {
	var lines []model.Sale
	for _, o := range r.orders {
		if o.BusinessID != businessID {
			continue
		}
		for i := range o.Lines {
			line := o.Lines[i]
			line.Order = o
			if p, ok := r.products.products[line.ProductID]; ok {
				line.Product = p
			}
			lines = append(lines, line)
		}
	}
	// newest first
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].OrderID > lines[j].OrderID })
	return lines, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) findByCode(code string) *model.Order {
	for _, o := range r.orders {
		if o.OrderCode == code {
			return o
		}
	}
	return nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── In-memory OnboardingRepository stub ───────────────────────────────────────

type stubOnboardingRepo struct {
	events map[string]bool
}

func newStubOnboardingRepo() *stubOnboardingRepo {
	return &stubOnboardingRepo{events: make(map[string]bool)}
}

func (r *stubOnboardingRepo) key(businessID uint, event string) string {
	return fmt.Sprintf("%d:%s", businessID, event)
}

func (r *stubOnboardingRepo) RecordEvent(_ context.Context, businessID uint, event string) error {
	r.events[r.key(businessID, event)] = true
	return nil
}

func (r *stubOnboardingRepo) HasEvent(_ context.Context, businessID uint, event string) (bool, error) {
	return r.events[r.key(businessID, event)], nil
}

var _ repository.OnboardingRepository = (*stubOnboardingRepo)(nil)

// ── In-memory RevokedTokenRepository stub ─────────────────────────────────────

type stubRevokedTokenRepo struct {
	hashes map[string]time.Time
}

func newStubRevokedTokenRepo() *stubRevokedTokenRepo {
	return &stubRevokedTokenRepo{hashes: make(map[string]time.Time)}
}

func (r *stubRevokedTokenRepo) Add(_ context.Context, tokenHash string, expiresAt time.Time) error {
	if _, exists := r.hashes[tokenHash]; !exists {
		r.hashes[tokenHash] = expiresAt
	}
	return nil
}

func (r *stubRevokedTokenRepo) IsRevoked(_ context.Context, tokenHash string) (bool, error) {
	_, ok := r.hashes[tokenHash]
	return ok, nil
}

func (r *stubRevokedTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for hash, exp := range r.hashes {
		if exp.Before(now) {
			delete(r.hashes, hash)
			deleted++
		}
	}
	return deleted, nil
}

var _ repository.RevokedTokenRepository = (*stubRevokedTokenRepo)(nil)

// ── In-memory PushSubscriptionRepository stub ─────────────────────────────────

type stubPushRepo struct {
	byEndpoint map[string]*model.PushSubscription
	nextID     uint
}

func newStubPushRepo() *stubPushRepo {
	return &stubPushRepo{byEndpoint: make(map[string]*model.PushSubscription), nextID: 1}
}

func (r *stubPushRepo) Upsert(_ context.Context, sub *model.PushSubscription) error {
	if existing, ok := r.byEndpoint[sub.Endpoint]; ok {
		existing.UserID = sub.UserID
		existing.BusinessID = sub.BusinessID
		existing.P256dh = sub.P256dh
		existing.Auth = sub.Auth
		return nil
	}
	sub.ID = r.nextID
	r.nextID++
	r.byEndpoint[sub.Endpoint] = sub
	return nil
}

func (r *stubPushRepo) ListByBusiness(_ context.Context, businessID uint) ([]model.PushSubscription, error) {
	var out []model.PushSubscription
	for _, sub := range r.byEndpoint {
		if sub.BusinessID == businessID {
			out = append(out, *sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPushRepo) DeleteByEndpoint(_ context.Context, endpoint string) error {
	delete(r.byEndpoint, endpoint)
	return nil
}

var _ repository.PushSubscriptionRepository = (*stubPushRepo)(nil)

// ── Recording PushSender stub ─────────────────────────────────────────────────

type stubPushSender struct {
	statusByEndpoint map[string]int
	errByEndpoint    map[string]error
	sent             []string
}

func newStubPushSender() *stubPushSender {
	return &stubPushSender{
		statusByEndpoint: make(map[string]int),
		errByEndpoint:    make(map[string]error),
	}
}

func (s *stubPushSender) Send(_ context.Context, sub model.PushSubscription, _ []byte) (int, error) {
	if err := s.errByEndpoint[sub.Endpoint]; err != nil {
		return 0, err
	}
	s.sent = append(s.sent, sub.Endpoint)
	if status, ok := s.statusByEndpoint[sub.Endpoint]; ok {
		return status, nil
	}
	return 201, nil
}
