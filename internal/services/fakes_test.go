package services

import (
	"context"
	"sync"

	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Single-document updates hold the mutex for
// the whole read-modify-write, mirroring the atomicity the storage
// engine provides per document.

type fakeUserRepo struct {
	mu           sync.Mutex
	users        map[primitive.ObjectID]*models.User
	addPointsErr error // injected failure for AddPoints
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) add(points int) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &models.User{
		ID:     primitive.NewObjectID(),
		Email:  primitive.NewObjectID().Hex() + "@test.local",
		Role:   models.RoleClient,
		Points: points,
	}
	f.users[user.ID] = user
	return userCopy(user)
}

func userCopy(u *models.User) *models.User {
	c := *u
	return &c
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = userCopy(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return userCopy(user), nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return userCopy(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []*models.User{}
	for _, user := range f.users {
		users = append(users, userCopy(user))
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, email string, name string, dni *int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			if name != "" {
				user.Name = name
			}
			if dni != nil {
				user.DNI = dni
			}
			return userCopy(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) AddPoints(ctx context.Context, id primitive.ObjectID, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addPointsErr != nil {
		return 0, f.addPointsErr
	}
	user, ok := f.users[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	user.Points += delta
	return user.Points, nil
}

func (f *fakeUserRepo) points(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].Points
}

type fakePrizeRepo struct {
	mu          sync.Mutex
	prizes      map[primitive.ObjectID]*models.Prize
	forceCASErr bool // make every CompareAndSetStock report a lost race
}

var _ repositories.PrizeRepository = (*fakePrizeRepo)(nil)

func newFakePrizeRepo() *fakePrizeRepo {
	return &fakePrizeRepo{prizes: make(map[primitive.ObjectID]*models.Prize)}
}

func (f *fakePrizeRepo) add(name string, pointsRequired, stock int, status string) *models.Prize {
	f.mu.Lock()
	defer f.mu.Unlock()
	prize := &models.Prize{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Description:    name,
		PointsRequired: pointsRequired,
		Status:         status,
		Stock:          stock,
	}
	f.prizes[prize.ID] = prize
	return prizeCopy(prize)
}

func prizeCopy(p *models.Prize) *models.Prize {
	c := *p
	return &c
}

func (f *fakePrizeRepo) Create(ctx context.Context, prize *models.Prize) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prize.ID = primitive.NewObjectID()
	f.prizes[prize.ID] = prizeCopy(prize)
	return nil
}

func (f *fakePrizeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prize, ok := f.prizes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return prizeCopy(prize), nil
}

func (f *fakePrizeRepo) FindAll(ctx context.Context) ([]*models.Prize, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prizes := []*models.Prize{}
	for _, prize := range f.prizes {
		prizes = append(prizes, prizeCopy(prize))
	}
	return prizes, nil
}

func (f *fakePrizeRepo) FindAvailable(ctx context.Context) ([]*models.Prize, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prizes := []*models.Prize{}
	for _, prize := range f.prizes {
		if prize.Status == models.PrizeStatusAvailable {
			prizes = append(prizes, prizeCopy(prize))
		}
	}
	return prizes, nil
}

func (f *fakePrizeRepo) Update(ctx context.Context, prize *models.Prize) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.prizes[prize.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.prizes[prize.ID] = prizeCopy(prize)
	return nil
}

func (f *fakePrizeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.prizes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.prizes, id)
	return nil
}

func (f *fakePrizeRepo) CompareAndSetStock(ctx context.Context, id primitive.ObjectID, expected, stock int, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forceCASErr {
		return false, nil
	}
	prize, ok := f.prizes[id]
	if !ok || prize.Stock != expected {
		return false, nil
	}
	prize.Stock = stock
	prize.Status = status
	return true, nil
}

func (f *fakePrizeRepo) AddStock(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prize, ok := f.prizes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	before := prizeCopy(prize)
	prize.Stock++
	return before, nil
}

func (f *fakePrizeRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prize, ok := f.prizes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	prize.Status = status
	return nil
}

func (f *fakePrizeRepo) get(id primitive.ObjectID) *models.Prize {
	f.mu.Lock()
	defer f.mu.Unlock()
	return prizeCopy(f.prizes[id])
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[primitive.ObjectID]*models.Transaction
	createErr    error // injected failure for Create
}

var _ repositories.TransactionRepository = (*fakeTransactionRepo)(nil)

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[primitive.ObjectID]*models.Transaction)}
}

func transactionCopy(t *models.Transaction) *models.Transaction {
	c := *t
	return &c
}

func (f *fakeTransactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	transaction.ID = primitive.NewObjectID()
	f.transactions[transaction.ID] = transactionCopy(transaction)
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	transaction, ok := f.transactions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return transactionCopy(transaction), nil
}

func (f *fakeTransactionRepo) filter(pred func(*models.Transaction) bool) []*models.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Transaction{}
	for _, transaction := range f.transactions {
		if pred(transaction) {
			out = append(out, transactionCopy(transaction))
		}
	}
	return out
}

func (f *fakeTransactionRepo) FindAll(ctx context.Context) ([]*models.Transaction, error) {
	return f.filter(func(t *models.Transaction) bool { return true }), nil
}

func (f *fakeTransactionRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return f.filter(func(t *models.Transaction) bool { return t.UserID == userID }), nil
}

func (f *fakeTransactionRepo) FindPrizeRedemptions(ctx context.Context) ([]*models.Transaction, error) {
	return f.filter(func(t *models.Transaction) bool { return t.IsPrizeRedemption() }), nil
}

func (f *fakeTransactionRepo) FindPrizeRedemptionsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return f.filter(func(t *models.Transaction) bool {
		return t.UserID == userID && t.IsPrizeRedemption()
	}), nil
}

func (f *fakeTransactionRepo) FindPending(ctx context.Context) ([]*models.Transaction, error) {
	return f.filter(func(t *models.Transaction) bool {
		return t.IsPrizeRedemption() && t.Status == models.StatusPending
	}), nil
}

func (f *fakeTransactionRepo) FindPendingByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Transaction, error) {
	return f.filter(func(t *models.Transaction) bool {
		return t.UserID == userID && t.IsPrizeRedemption() && t.Status == models.StatusPending
	}), nil
}

func (f *fakeTransactionRepo) CountPendingByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	pending, _ := f.FindPendingByUser(ctx, userID)
	return int64(len(pending)), nil
}

func (f *fakeTransactionRepo) UpdateStatusIfPending(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	transaction, ok := f.transactions[id]
	if !ok || transaction.Status != models.StatusPending {
		return false, nil
	}
	transaction.Status = status
	return true, nil
}
