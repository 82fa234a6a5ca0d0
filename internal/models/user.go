// Path: internal/models/user.go
package models

import (
	"bank-core/pkg/utils"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

// UserParams carries the fields needed to create a User.
type UserParams struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     Role
}

// User owns an ordered set of accounts. Email is the login key.
type User struct {
	id           int
	name         string
	email        string
	phone        string
	role         Role
	passwordHash []byte
	createdAt    time.Time

	mu       sync.RWMutex
	accounts []*Account
}

// NewUser validates p and stores a bcrypt hash of the password.
func NewUser(id int, p UserParams, cost int) (*User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	hash, err := HashPassword(p.Password, cost)
	if err != nil {
		return nil, err
	}
	return NewUserWithHash(id, p, hash)
}

// NewUserWithHash builds a user from an already computed password hash.
func NewUserWithHash(id int, p UserParams, hash []byte) (*User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &User{
		id:           id,
		name:         p.Name,
		email:        p.Email,
		phone:        p.Phone,
		role:         p.Role,
		passwordHash: hash,
		createdAt:    time.Now(),
	}, nil
}

// Validate checks the fields in the order name, role, email, password.
func (p UserParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrBlankName
	}
	if p.Role != RoleClient && p.Role != RoleAdmin {
		return ErrInvalidRole
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrBlankEmail
	}
	if strings.TrimSpace(p.Password) == "" {
		return ErrBlankPassword
	}
	return nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (u *User) ID() int              { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Phone() string        { return u.phone }
func (u *User) Role() Role           { return u.role }
func (u *User) IsAdmin() bool        { return u.role == RoleAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) == nil
}

// Accounts returns the owned accounts in the order they were added.
func (u *User) Accounts() []*Account {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*Account, len(u.accounts))
	copy(out, u.accounts)
	return out
}

// HasAccount reports whether acc is in this user's collection.
func (u *User) HasAccount(acc *Account) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.indexOf(acc) >= 0
}

// AddAccount takes ownership of acc. It fails without side effects when acc
// already belongs to a different user.
func (u *User) AddAccount(acc *Account) error {
	if acc == nil {
		return ErrNilAccount
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.indexOf(acc) >= 0 {
		return ErrAccountAlreadyLinked
	}
	if !acc.assignToUser(u.id) {
		return ErrAccountOwned
	}
	u.accounts = append(u.accounts, acc)
	return nil
}

// RemoveAccount drops acc from the collection and clears its owner.
func (u *User) RemoveAccount(acc *Account) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	i := u.indexOf(acc)
	if i < 0 {
		return ErrAccountNotLinked
	}
	removed := u.accounts[i]
	u.accounts = append(u.accounts[:i], u.accounts[i+1:]...)
	removed.clearOwner()
	return nil
}

// indexOf requires u.mu.
func (u *User) indexOf(acc *Account) int {
	if acc == nil {
		return -1
	}
	for i, a := range u.accounts {
		if a.number == acc.number {
			return i
		}
	}
	return -1
}

// View returns the public fields of the user.
func (u *User) View() UserView {
	u.mu.RLock()
	defer u.mu.RUnlock()
	numbers := make([]int, 0, len(u.accounts))
	for _, a := range u.accounts {
		numbers = append(numbers, a.number)
	}
	return UserView{
		ID:        u.id,
		Name:      u.name,
		Email:     u.email,
		Phone:     u.phone,
		Role:      u.role,
		Accounts:  numbers,
		CreatedAt: utils.FormatTimestamp(u.createdAt),
	}
}
