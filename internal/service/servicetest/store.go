// Package servicetest - хранилище в памяти и менеджер транзакций для тестов сервисов
package servicetest

import (
	"context"
	"slices"
	"sync"
	"time"

	"expense_tracker/internal/model"
	"expense_tracker/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
)

var (
	_ repository.UserRepository        = (*Store)(nil)
	_ repository.AuthRepository        = (*Store)(nil)
	_ repository.CategoryRepository    = (*Store)(nil)
	_ repository.TransactionRepository = (*Store)(nil)
	_ repository.GroupRepository       = (*Store)(nil)
)

// Store реализует все репозитории поверх слайсов.
// GetTransactions не интерпретирует условие: оно сохраняется в LastWhere, а возвращаются все транзакции
type Store struct {
	mu sync.Mutex

	Users        []model.User
	Categories   []model.Category
	Transactions []model.Transaction
	Groups       []model.Group

	LastWhere sq.Sqlizer
	// Err возвращается из любого вызова, если задан
	Err error

	nextUserID int
}

func NewStore() *Store {
	return &Store{nextUserID: 1}
}

// TxManager выполняет fn без транзакции и считает вызовы
type TxManager struct {
	Calls int
}

var _ trm.Manager = (*TxManager)(nil)

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// AddUser кладёт пользователя напрямую, минуя проверки
func (s *Store) AddUser(username, email string, role model.Role) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextUserID == 0 {
		s.nextUserID = 1
	}
	u := model.User{ID: s.nextUserID, Username: username, Email: email, Role: role}
	s.nextUserID++
	s.Users = append(s.Users, u)
	return u
}

// AddCategory кладёт категорию; каждая следующая считается созданной позже
func (s *Store) AddCategory(categoryType, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(len(s.Categories)) * time.Hour)
	s.Categories = append(s.Categories, model.Category{Type: categoryType, Color: color, CreatedAt: created})
}

func (s *Store) AddTransaction(username, categoryType string) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := model.Transaction{ID: uuid.New(), Username: username, Type: categoryType, Date: time.Now()}
	s.Transactions = append(s.Transactions, t)
	return t
}

// --- users ---

func (s *Store) CreateUser(_ context.Context, user *model.User) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for _, u := range s.Users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, model.ErrAlreadyExists
		}
	}
	if s.nextUserID == 0 {
		s.nextUserID = 1
	}
	u := *user
	u.ID = s.nextUserID
	s.nextUserID++
	s.Users = append(s.Users, u)
	return u.ID, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Email == email })
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Username == username })
}

func (s *Store) GetUsers(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return slices.Clone(s.Users), nil
}

func (s *Store) GetUsersByEmails(_ context.Context, emails []string) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var users []model.User
	for _, u := range s.Users {
		if slices.Contains(emails, u.Email) {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *Store) DeleteUserByEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	n := len(s.Users)
	s.Users = slices.DeleteFunc(s.Users, func(u model.User) bool { return u.Email == email })
	if len(s.Users) == n {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) findUser(match func(model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, model.ErrNotFound
}

// --- refresh tokens ---

func (s *Store) SaveRefreshToken(_ context.Context, userID int, tokenHash string) error {
	return s.setRefreshToken(userID, tokenHash)
}

func (s *Store) GetUserByRefreshToken(_ context.Context, tokenHash string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return tokenHash != "" && u.RefreshToken == tokenHash })
}

func (s *Store) ClearRefreshToken(_ context.Context, userID int) error {
	return s.setRefreshToken(userID, "")
}

func (s *Store) setRefreshToken(userID int, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Users {
		if s.Users[i].ID == userID {
			s.Users[i].RefreshToken = tokenHash
			return nil
		}
	}
	return model.ErrNotFound
}

// --- categories ---

func (s *Store) CreateCategory(_ context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.categoryIndex(category.Type) >= 0 {
		return model.ErrAlreadyExists
	}
	c := *category
	c.CreatedAt = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(len(s.Categories)) * time.Hour)
	s.Categories = append(s.Categories, c)
	return nil
}

func (s *Store) GetCategory(_ context.Context, categoryType string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.categoryIndex(categoryType)
	if i < 0 {
		return nil, model.ErrNotFound
	}
	c := s.Categories[i]
	return &c, nil
}

func (s *Store) GetCategories(_ context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	categories := slices.Clone(s.Categories)
	slices.SortStableFunc(categories, func(a, b model.Category) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return categories, nil
}

func (s *Store) UpdateCategory(_ context.Context, oldType string, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := s.categoryIndex(oldType)
	if i < 0 {
		return model.ErrNotFound
	}
	if category.Type != oldType && s.categoryIndex(category.Type) >= 0 {
		return model.ErrAlreadyExists
	}
	s.Categories[i].Type = category.Type
	s.Categories[i].Color = category.Color
	return nil
}

func (s *Store) DeleteCategories(_ context.Context, types []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	n := len(s.Categories)
	s.Categories = slices.DeleteFunc(s.Categories, func(c model.Category) bool { return slices.Contains(types, c.Type) })
	return int64(n - len(s.Categories)), nil
}

func (s *Store) categoryIndex(categoryType string) int {
	return slices.IndexFunc(s.Categories, func(c model.Category) bool { return c.Type == categoryType })
}

// --- transactions ---

func (s *Store) CreateTransaction(_ context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Transactions = append(s.Transactions, *tx)
	return nil
}

func (s *Store) GetTransactions(_ context.Context, where sq.Sqlizer) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.LastWhere = where
	result := make([]model.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if i := s.categoryIndex(t.Type); i >= 0 {
			t.Color = s.Categories[i].Color
		}
		result = append(result, t)
	}
	return result, nil
}

func (s *Store) GetTransactionByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, t := range s.Transactions {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) CountTransactionsByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	count := 0
	for _, t := range s.Transactions {
		if slices.Contains(ids, t.ID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteTransactions(_ context.Context, ids []uuid.UUID) (int64, error) {
	return s.deleteTransactions(func(t model.Transaction) bool { return slices.Contains(ids, t.ID) })
}

func (s *Store) DeleteTransactionsByUsername(_ context.Context, username string) (int64, error) {
	return s.deleteTransactions(func(t model.Transaction) bool { return t.Username == username })
}

func (s *Store) UpdateTransactionsType(_ context.Context, from []string, to string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var count int64
	for i := range s.Transactions {
		if slices.Contains(from, s.Transactions[i].Type) {
			s.Transactions[i].Type = to
			count++
		}
	}
	return count, nil
}

func (s *Store) deleteTransactions(match func(model.Transaction) bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	n := len(s.Transactions)
	s.Transactions = slices.DeleteFunc(s.Transactions, match)
	return int64(n - len(s.Transactions)), nil
}

// --- groups ---

func (s *Store) CreateGroup(_ context.Context, name string, members []model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.groupIndex(name) >= 0 {
		return model.ErrAlreadyExists
	}
	s.Groups = append(s.Groups, model.Group{Name: name, Members: slices.Clone(members)})
	return nil
}

func (s *Store) GetGroup(_ context.Context, name string) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.groupIndex(name)
	if i < 0 {
		return nil, model.ErrNotFound
	}
	g := model.Group{Name: s.Groups[i].Name, Members: slices.Clone(s.Groups[i].Members)}
	return &g, nil
}

func (s *Store) GetGroups(_ context.Context) ([]model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	groups := make([]model.Group, 0, len(s.Groups))
	for _, g := range s.Groups {
		groups = append(groups, model.Group{Name: g.Name, Members: slices.Clone(g.Members)})
	}
	return groups, nil
}

func (s *Store) GetGroupNamesByEmails(_ context.Context, emails []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make(map[string]string)
	for _, g := range s.Groups {
		for _, m := range g.Members {
			if slices.Contains(emails, m.Email) {
				result[m.Email] = g.Name
			}
		}
	}
	return result, nil
}

func (s *Store) AddMembers(_ context.Context, name string, members []model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := s.groupIndex(name)
	if i < 0 {
		return model.ErrNotFound
	}
	s.Groups[i].Members = append(s.Groups[i].Members, members...)
	return nil
}

func (s *Store) RemoveMembers(_ context.Context, name string, emails []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := s.groupIndex(name)
	if i < 0 {
		return model.ErrNotFound
	}
	s.Groups[i].Members = slices.DeleteFunc(s.Groups[i].Members, func(m model.Member) bool {
		return slices.Contains(emails, m.Email)
	})
	return nil
}

func (s *Store) DeleteGroup(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	n := len(s.Groups)
	s.Groups = slices.DeleteFunc(s.Groups, func(g model.Group) bool { return g.Name == name })
	if len(s.Groups) == n {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) groupIndex(name string) int {
	return slices.IndexFunc(s.Groups, func(g model.Group) bool { return g.Name == name })
}
