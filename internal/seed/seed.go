// Package seed fills the registries through their privileged insert paths.
// Nothing here logs anyone in.
package seed

import (
	"bank-core/internal/models"
	"bank-core/internal/services"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type demoUser struct {
	params   models.UserParams
	balances []string
}

var demoUsers = []demoUser{
	{
		params:   models.UserParams{Name: "Hady", Email: "hady@gmail.com", Password: "1234", Phone: "555-0101", Role: models.RoleClient},
		balances: []string{"1000.00", "2500.50"},
	},
	{
		params:   models.UserParams{Name: "Jane Smith", Email: "jane.smith@email.com", Password: "password456", Phone: "555-0202", Role: models.RoleClient},
		balances: []string{"500.00", "3000.75"},
	},
	{
		params: models.UserParams{Name: "Admin User", Email: "admin@bank.com", Password: "admin123", Phone: "555-0000", Role: models.RoleAdmin},
	},
}

// EnsureAdmin adds an ADMIN user unless the email is already taken.
func EnsureAdmin(users services.UserService, email, password string) (*models.User, error) {
	if u, err := users.GetUserByEmail(email); err == nil {
		if !u.IsAdmin() {
			return nil, fmt.Errorf("user %s exists and is not an admin", email)
		}
		return u, nil
	}
	return users.AddUser(models.UserParams{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
}

// DemoData creates two clients with two verified accounts each, plus one
// admin. Users whose email is already registered are skipped.
func DemoData(users services.UserService, accounts services.AccountService) error {
	for _, d := range demoUsers {
		u, err := users.AddUser(d.params)
		if errors.Is(err, services.ErrEmailTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed user %s: %w", d.params.Email, err)
		}

		for _, b := range d.balances {
			acc, err := accounts.OpenAccount(decimal.RequireFromString(b))
			if err != nil {
				return fmt.Errorf("seed account for %s: %w", d.params.Email, err)
			}
			if err := u.AddAccount(acc); err != nil {
				return fmt.Errorf("seed account for %s: %w", d.params.Email, err)
			}
			acc.Verify()
		}
	}
	return nil
}
