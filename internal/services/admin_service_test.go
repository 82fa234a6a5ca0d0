package services

import (
	"bank-core/internal/models"
	"errors"
	"testing"
)

func newTestAdmin(t *testing.T) (AdminService, AccountService, UserService) {
	t.Helper()
	accounts := NewAccountService(nil)
	users := newTestUserService(accounts)
	return NewAdminService(users, accounts, nil), accounts, users
}

func TestAdminStatusChanges(t *testing.T) {
	admin, accounts, _ := newTestAdmin(t)
	acc, _ := accounts.OpenAccount(amt("10"))
	n := acc.Number()

	steps := []struct {
		name    string
		apply   func(int) error
		wantErr error
		status  models.AccountStatus
	}{
		{"appeal unverified", admin.AppealAccount, ErrInvalidTransition, models.StatusUnverified},
		{"suspend unverified", admin.SuspendAccount, ErrInvalidTransition, models.StatusUnverified},
		{"verify", admin.VerifyAccount, nil, models.StatusVerified},
		{"verify again", admin.VerifyAccount, ErrInvalidTransition, models.StatusVerified},
		{"suspend", admin.SuspendAccount, nil, models.StatusSuspended},
		{"verify suspended", admin.VerifyAccount, ErrInvalidTransition, models.StatusSuspended},
		{"appeal", admin.AppealAccount, nil, models.StatusVerified},
		{"close", admin.CloseAccount, nil, models.StatusClosed},
		{"close again", admin.CloseAccount, ErrInvalidTransition, models.StatusClosed},
		{"appeal closed", admin.AppealAccount, ErrInvalidTransition, models.StatusClosed},
	}

	for _, step := range steps {
		err := step.apply(n)
		if !errors.Is(err, step.wantErr) {
			t.Fatalf("%s: expected %v, got %v", step.name, step.wantErr, err)
		}
		if acc.Status() != step.status {
			t.Fatalf("%s: status = %s, want %s", step.name, acc.Status(), step.status)
		}
	}
	if !acc.Balance().Equal(amt("10")) {
		t.Fatalf("status changes must not move money, balance = %s", acc.Balance())
	}
}

func TestAdminUnknownAccount(t *testing.T) {
	admin, _, _ := newTestAdmin(t)

	for name, apply := range map[string]func(int) error{
		"verify":  admin.VerifyAccount,
		"suspend": admin.SuspendAccount,
		"appeal":  admin.AppealAccount,
		"close":   admin.CloseAccount,
	} {
		if err := apply(4242); !errors.Is(err, ErrAccountNotFound) {
			t.Fatalf("%s: expected ErrAccountNotFound, got %v", name, err)
		}
	}
}

func TestUnverifiedAccounts(t *testing.T) {
	admin, accounts, _ := newTestAdmin(t)

	if got := admin.UnverifiedAccounts(); got == nil || len(got) != 0 {
		t.Fatalf("unverified = %v, want empty", got)
	}

	a, _ := accounts.OpenAccount(amt("1"))
	b, _ := accounts.OpenAccount(amt("1"))
	c, _ := accounts.OpenAccount(amt("1"))
	_ = admin.VerifyAccount(b.Number())

	got := admin.UnverifiedAccounts()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("unverified = %v, want [%d %d]", got, a.Number(), c.Number())
	}
}

func TestPendingTransactions(t *testing.T) {
	admin, accounts, _ := newTestAdmin(t)
	x, _ := accounts.OpenAccount(amt("100"))
	y, _ := accounts.OpenAccount(amt("100"))
	xn, yn := x.Number(), y.Number()

	if got := admin.PendingTransactions(); got == nil || len(got) != 0 {
		t.Fatalf("pending = %v, want empty", got)
	}

	transfer, err := models.NewTransaction(models.TxTransfer, amt("25"), &xn, &yn)
	if err != nil {
		t.Fatalf("new transaction: %v", err)
	}
	x.AddTransaction(transfer)
	y.AddTransaction(transfer)
	deposit, _ := models.NewTransaction(models.TxDeposit, amt("5"), nil, &yn)
	y.AddTransaction(deposit)
	if _, err := accounts.Deposit(x, amt("1")); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	pending := admin.PendingTransactions()
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2 (transfer listed once)", len(pending))
	}
	for _, tx := range pending {
		if tx.Status() != models.TxPending {
			t.Fatalf("listed %s with status %s", tx.ID(), tx.Status())
		}
	}
}

func TestAdminTransactionsWithoutLedger(t *testing.T) {
	admin, _, _ := newTestAdmin(t)

	got, err := admin.Transactions("")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("transactions = %v, %v, want empty", got, err)
	}
	if _, err := admin.Transaction("missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestAdminTransactionsFromLedger(t *testing.T) {
	ledger := newTestLedger(t)
	accounts := NewAccountService(ledger)
	admin := NewAdminService(newTestUserService(accounts), accounts, ledger)

	acc, _ := accounts.OpenAccount(amt("10"))
	ok, err := accounts.Deposit(acc, amt("1"))
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	failed, _ := accounts.Withdraw(acc, amt("1"))

	all, err := admin.Transactions("")
	if err != nil || len(all) != 2 {
		t.Fatalf("transactions = %v, %v, want 2", all, err)
	}
	only, err := admin.Transactions(models.TxFailed)
	if err != nil || len(only) != 1 || only[0].ID != failed.ID() {
		t.Fatalf("failed transactions = %v, %v, want [%s]", only, err, failed.ID())
	}
	if _, err := admin.Transactions("DONE"); !errors.Is(err, models.ErrInvalidTransactionStatus) {
		t.Fatalf("expected ErrInvalidTransactionStatus, got %v", err)
	}

	view, err := admin.Transaction(ok.ID())
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if view.Status != models.TxSuccess || !view.Amount.Equal(amt("1")) {
		t.Fatalf("unexpected view %+v", view)
	}
	if _, err := admin.Transaction("missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestAdminListings(t *testing.T) {
	admin, accounts, users := newTestAdmin(t)
	sess := NewSession()
	_, _ = users.RegisterUser(sess, "Jane", "jane@example.com", "pw", "")
	_, _ = users.CreateAccount(sess, amt("1"))
	_, _ = accounts.OpenAccount(amt("2"))

	if n := len(admin.AllUsers()); n != 1 {
		t.Fatalf("users = %d, want 1", n)
	}
	if n := len(admin.AllAccounts()); n != 2 {
		t.Fatalf("accounts = %d, want 2", n)
	}
}
