package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

// fakeUserRepo is an in-memory domain.UserRepository.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	history []domain.LoginHistory
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.UUID == "" {
		r.nextID++
		user.UUID = "uuid-" + string(rune('a'+r.nextID))
	}
	cp := *user
	r.users[user.UUID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByUUID(_ context.Context, uuid string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[uuid]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetAllUsers(_ context.Context) (*[]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return &users, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UUID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.UUID] = &cp
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[uuid]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, uuid)
	return nil
}

func (r *fakeUserRepo) GetUsersDueForDeletion(_ context.Context, now time.Time) (*[]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []domain.User
	for _, u := range r.users {
		if u.PendingDeletion && u.ScheduledDeletionAt != nil && !u.ScheduledDeletionAt.After(now) {
			due = append(due, *u)
		}
	}
	return &due, nil
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, entry *domain.LoginHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, *entry)
	return nil
}

func (r *fakeUserRepo) GetLoginHistory(_ context.Context, userUUID string, limit int) (*[]domain.LoginHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.LoginHistory
	for _, h := range r.history {
		if h.UserUUID == userUUID {
			out = append(out, h)
		}
		if len(out) == limit {
			break
		}
	}
	return &out, nil
}

// fakeNotifier records sent notices; kinds listed in fail return an error.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.Notice
	fail map[domain.NoticeKind]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{fail: map[domain.NoticeKind]error{}}
}

func (n *fakeNotifier) Send(_ context.Context, notice domain.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.fail[notice.Kind]; ok {
		return err
	}
	n.sent = append(n.sent, notice)
	return nil
}

func (n *fakeNotifier) sentKinds() []domain.NoticeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]domain.NoticeKind, 0, len(n.sent))
	for _, notice := range n.sent {
		kinds = append(kinds, notice.Kind)
	}
	return kinds
}

// fakeTokenStore is an in-memory domain.TokenStore.
type fakeTokenStore struct {
	mu           sync.Mutex
	verification map[string]string
	reset        map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		verification: map[string]string{},
		reset:        map[string]string{},
	}
}

func (s *fakeTokenStore) SaveVerificationToken(_ context.Context, token, userUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verification[token] = userUUID
	return nil
}

func (s *fakeTokenStore) ConsumeVerificationToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uuid, ok := s.verification[token]
	if !ok {
		return "", ErrInvalidToken
	}
	delete(s.verification, token)
	return uuid, nil
}

func (s *fakeTokenStore) SaveResetToken(_ context.Context, token, userUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset[token] = userUUID
	return nil
}

func (s *fakeTokenStore) ConsumeResetToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uuid, ok := s.reset[token]
	if !ok {
		return "", ErrInvalidToken
	}
	delete(s.reset, token)
	return uuid, nil
}

func fixedClock(t time.Time) domain.Clock {
	return domain.ClockFunc(func() time.Time { return t })
}

// fakeProductRepo is an in-memory domain.ProductRepository.
type fakeProductRepo struct {
	mu         sync.Mutex
	products   map[uint]*domain.Product
	categories []domain.Category
	reviews    map[uint]*domain.Review
	favorites  map[string]map[uint]bool
	nextID     uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:  map[uint]*domain.Product{},
		reviews:   map[uint]*domain.Review{},
		favorites: map[string]map[uint]bool{},
	}
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == 0 {
		r.nextID++
		product.ID = r.nextID
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, id uint) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) ListProducts(_ context.Context, _ domain.ProductFilter) (*[]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, *p)
	}
	return &products, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) CreateCategory(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, *category)
	return nil
}

func (r *fakeProductRepo) ListCategories(_ context.Context) (*[]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	categories := append([]domain.Category(nil), r.categories...)
	return &categories, nil
}

func (r *fakeProductRepo) CreateReview(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == 0 {
		r.nextID++
		review.ID = r.nextID
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetReview(_ context.Context, productID uint, userUUID string) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.ProductID == productID && rev.UserUUID == userUUID {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) GetReviewByID(_ context.Context, id uint) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rev, ok := r.reviews[id]; ok {
		cp := *rev
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) ListReviews(_ context.Context, productID uint) (*[]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reviews []domain.Review
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			reviews = append(reviews, *rev)
		}
	}
	return &reviews, nil
}

func (r *fakeProductRepo) UpdateReview(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DeleteReview(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeProductRepo) IncrementHelpful(_ context.Context, reviewID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[reviewID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rev.HelpfulCount++
	return nil
}

func (r *fakeProductRepo) AddFavorite(_ context.Context, favorite *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.favorites[favorite.UserUUID] == nil {
		r.favorites[favorite.UserUUID] = map[uint]bool{}
	}
	r.favorites[favorite.UserUUID][favorite.ProductID] = true
	return nil
}

func (r *fakeProductRepo) RemoveFavorite(_ context.Context, userUUID string, productID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.favorites[userUUID], productID)
	return nil
}

func (r *fakeProductRepo) ListFavorites(_ context.Context, userUUID string) (*[]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := []domain.Product{}
	for id := range r.favorites[userUUID] {
		if p, ok := r.products[id]; ok {
			products = append(products, *p)
		}
	}
	return &products, nil
}

func (r *fakeProductRepo) IsFavorite(_ context.Context, userUUID string, productID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.favorites[userUUID][productID], nil
}

// fakeOrderRepo is an in-memory domain.OrderRepository tracking which user
// bought which product.
type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[uint]*domain.Order
	purchases map[string]map[uint]bool
	nextID    uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    map[uint]*domain.Order{},
		purchases: map[string]map[uint]bool{},
	}
}

func (r *fakeOrderRepo) PlaceOrder(_ context.Context, userUUID string, lines []domain.OrderLine) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	r.nextID++
	order := &domain.Order{ID: r.nextID, UserUUID: userUUID}
	for _, line := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
		if r.purchases[userUUID] == nil {
			r.purchases[userUUID] = map[uint]bool{}
		}
		r.purchases[userUUID][line.ProductID] = true
	}
	r.orders[order.ID] = order
	return order, nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, id uint) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) ListOrdersByUser(_ context.Context, userUUID string) (*[]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []domain.Order
	for _, o := range r.orders {
		if o.UserUUID == userUUID {
			orders = append(orders, *o)
		}
	}
	return &orders, nil
}

func (r *fakeOrderRepo) UserPurchasedProduct(_ context.Context, userUUID string, productID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.purchases[userUUID][productID], nil
}
