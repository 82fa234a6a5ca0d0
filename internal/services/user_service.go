// Path: internal/services/user_service.go
package services

import (
	"bank-core/internal/models"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the user registry plus session handling. Users are indexed
// by id and by email; both indices change together.
type UserService interface {
	RegisterUser(sess *Session, name, email, password, phone string) (*models.User, error)
	AddUser(p models.UserParams) (*models.User, error)
	Login(sess *Session, email, password string) (*models.User, error)
	Logout(sess *Session)
	CurrentUser(sess *Session) *models.User
	IsLoggedIn(sess *Session) bool
	CreateAccount(sess *Session, initialBalance decimal.Decimal) (*models.Account, error)

	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	AllUsers() []*models.User
}

type userService struct {
	accounts     AccountService
	passwordCost int
	hashPassword func(password string, cost int) ([]byte, error)
	ids          *sequence

	mu      sync.RWMutex
	byID    map[int]*models.User
	byEmail map[string]*models.User
}

// NewUserService creates an empty registry. Accounts created through a
// session are opened in accounts. A passwordCost of 0 means bcrypt.DefaultCost.
func NewUserService(accounts AccountService, passwordCost int) UserService {
	if passwordCost == 0 {
		passwordCost = bcrypt.DefaultCost
	}
	return &userService{
		accounts:     accounts,
		passwordCost: passwordCost,
		hashPassword: models.HashPassword,
		ids:          newSequence(FirstUserID),
		byID:         make(map[int]*models.User),
		byEmail:      make(map[string]*models.User),
	}
}

// RegisterUser creates a CLIENT user and logs it into sess.
func (s *userService) RegisterUser(sess *Session, name, email, password, phone string) (*models.User, error) {
	if sess == nil {
		return nil, ErrNilSession
	}
	u, err := s.insert(models.UserParams{
		Name:     name,
		Email:    email,
		Password: password,
		Phone:    phone,
		Role:     models.RoleClient,
	})
	if err != nil {
		return nil, err
	}
	sess.set(u)
	return u, nil
}

// AddUser inserts a user of any role without touching any session. It is the
// privileged path used for bootstrapping admins and seeding.
func (s *userService) AddUser(p models.UserParams) (*models.User, error) {
	return s.insert(p)
}

// insert hashes outside the lock; only the email check, id issue and the
// index update hold s.mu.
func (s *userService) insert(p models.UserParams) (*models.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s.emailTaken(p.Email) {
		return nil, ErrEmailTaken
	}

	hash, err := s.hashPassword(p.Password, s.passwordCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[p.Email]; ok {
		return nil, ErrEmailTaken
	}
	id, err := s.ids.issue()
	if err != nil {
		return nil, err
	}
	u, err := models.NewUserWithHash(id, p, hash)
	if err != nil {
		return nil, err
	}
	s.byID[u.ID()] = u
	s.byEmail[u.Email()] = u
	return u, nil
}

func (s *userService) emailTaken(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok
}

// Login authenticates against the email index and binds the user to sess.
func (s *userService) Login(sess *Session, email, password string) (*models.User, error) {
	if sess == nil {
		return nil, ErrNilSession
	}
	s.mu.RLock()
	u, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok || !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	sess.set(u)
	return u, nil
}

// Logout clears sess unconditionally.
func (s *userService) Logout(sess *Session) {
	sess.clear()
}

func (s *userService) CurrentUser(sess *Session) *models.User {
	return sess.User()
}

func (s *userService) IsLoggedIn(sess *Session) bool {
	return sess.User() != nil
}

// CreateAccount opens a new account owned by the session user.
func (s *userService) CreateAccount(sess *Session, initialBalance decimal.Decimal) (*models.Account, error) {
	u := sess.User()
	if u == nil {
		return nil, ErrNoSession
	}
	acc, err := s.accounts.OpenAccount(initialBalance)
	if err != nil {
		return nil, err
	}
	if err := u.AddAccount(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// AllUsers returns every user ordered by id.
func (s *userService) AllUsers() []*models.User {
	s.mu.RLock()
	out := make([]*models.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
