package services

import (
	"bank-core/internal/models"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openVerified(t *testing.T, s AccountService, balance string) *models.Account {
	t.Helper()
	acc, err := s.OpenAccount(amt(balance))
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	acc.Verify()
	return acc
}

func TestOpenAccountNumbering(t *testing.T) {
	s := NewAccountService(nil)

	first, err := s.OpenAccount(amt("10"))
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	second, _ := s.OpenAccount(decimal.Zero)

	if first.Number() != FirstAccountNumber {
		t.Fatalf("first number = %d, want %d", first.Number(), FirstAccountNumber)
	}
	if second.Number() != FirstAccountNumber+1 {
		t.Fatalf("second number = %d, want %d", second.Number(), FirstAccountNumber+1)
	}
	if first.Status() != models.StatusUnverified {
		t.Fatalf("status = %s, want UNVERIFIED", first.Status())
	}
}

func TestOpenAccountRejectsNegativeBalance(t *testing.T) {
	s := NewAccountService(nil)

	if _, err := s.OpenAccount(amt("-1")); !errors.Is(err, models.ErrNegativeBalance) {
		t.Fatalf("expected ErrNegativeBalance, got %v", err)
	}
	acc, _ := s.OpenAccount(decimal.Zero)
	if acc.Number() != FirstAccountNumber {
		t.Fatalf("a rejected open must not consume a number, got %d", acc.Number())
	}
}

func TestConcurrentOpenAccountIssuesUniqueNumbers(t *testing.T) {
	s := NewAccountService(nil)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.OpenAccount(amt("1")); err != nil {
				t.Errorf("open account: %v", err)
			}
		}()
	}
	wg.Wait()

	all := s.AllAccounts()
	if len(all) != n {
		t.Fatalf("accounts = %d, want %d", len(all), n)
	}
	for i, acc := range all {
		if acc.Number() != FirstAccountNumber+i {
			t.Fatalf("account %d has number %d, want %d", i, acc.Number(), FirstAccountNumber+i)
		}
	}
}

func TestRegisterAccount(t *testing.T) {
	s := NewAccountService(nil)
	acc, _ := models.NewAccount(2000, amt("5"))

	if err := s.RegisterAccount(acc); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.RegisterAccount(acc); err != nil {
		t.Fatalf("registering the same account again should be a no-op, got %v", err)
	}
	found, err := s.FindAccount(2000)
	if err != nil || found != acc {
		t.Fatalf("find 2000 = %v, %v", found, err)
	}

	clash, _ := models.NewAccount(2000, amt("5"))
	if err := s.RegisterAccount(clash); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if err := s.RegisterAccount(nil); !errors.Is(err, models.ErrNilAccount) {
		t.Fatalf("expected ErrNilAccount, got %v", err)
	}

	next, _ := s.OpenAccount(decimal.Zero)
	if next.Number() <= 2000 {
		t.Fatalf("opened number %d collides with a registered one", next.Number())
	}
}

func TestRegisterAccountAtNumberLimit(t *testing.T) {
	s := NewAccountService(nil)
	last, _ := models.NewAccount(math.MaxInt64, decimal.Zero)

	if err := s.RegisterAccount(last); !errors.Is(err, ErrNumberOutOfRange) {
		t.Fatalf("expected ErrNumberOutOfRange, got %v", err)
	}
	if _, err := s.FindAccount(math.MaxInt64); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("rejected account must not be registered, got %v", err)
	}

	next, err := s.OpenAccount(decimal.Zero)
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	if next.Number() != FirstAccountNumber {
		t.Fatalf("number = %d, want %d", next.Number(), FirstAccountNumber)
	}

	below, _ := models.NewAccount(math.MaxInt64-1, decimal.Zero)
	if err := s.RegisterAccount(below); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := s.OpenAccount(decimal.Zero); !errors.Is(err, ErrNumberOutOfRange) {
		t.Fatalf("expected ErrNumberOutOfRange once numbers run out, got %v", err)
	}
}

func TestFindAccountNotFound(t *testing.T) {
	s := NewAccountService(nil)
	if _, err := s.FindAccount(FirstAccountNumber); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountsForUser(t *testing.T) {
	accounts := NewAccountService(nil)
	users := newTestUserService(accounts)

	if got := accounts.AccountsForUser(NewSession()); len(got) != 0 {
		t.Fatalf("logged-out session should see no accounts, got %d", len(got))
	}
	if got := accounts.AccountsForUser(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil session should see an empty list, got %v", got)
	}

	sess := NewSession()
	if _, err := users.RegisterUser(sess, "Jane", "jane@example.com", "pw", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	acc, err := users.CreateAccount(sess, amt("20"))
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	// An account that belongs to nobody stays invisible.
	_, _ = accounts.OpenAccount(amt("1"))

	got := accounts.AccountsForUser(sess)
	if len(got) != 1 || got[0] != acc {
		t.Fatalf("accounts for user = %v, want [%d]", got, acc.Number())
	}
}

func TestDepositRecordsTransaction(t *testing.T) {
	s := NewAccountService(nil)
	acc, _ := s.OpenAccount(amt("10"))

	recorded, err := s.Deposit(acc, amt("5.25"))
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !acc.Balance().Equal(amt("15.25")) {
		t.Fatalf("balance = %s, want 15.25", acc.Balance())
	}

	history := s.TransactionHistory(acc)
	if len(history) != 1 {
		t.Fatalf("history = %d, want 1", len(history))
	}
	tx := history[0]
	if tx != recorded {
		t.Fatalf("returned transaction %s is not the recorded one %s", recorded.ID(), tx.ID())
	}
	if tx.Type() != models.TxDeposit || !tx.IsSuccessful() || !tx.Amount().Equal(amt("5.25")) {
		t.Fatalf("unexpected record %+v", tx.View())
	}
	if n, ok := tx.Target(); !ok || n != acc.Number() {
		t.Fatalf("target = %d (%v), want %d", n, ok, acc.Number())
	}
}

func TestFailedWithdrawRecordsFailure(t *testing.T) {
	s := NewAccountService(nil)
	acc := openVerified(t, s, "100")

	tx, err := s.Withdraw(acc, amt("150"))
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if tx == nil || tx.Status() != models.TxFailed {
		t.Fatalf("expected the FAILED record to be returned, got %v", tx)
	}
	if !acc.Balance().Equal(amt("100")) {
		t.Fatalf("balance = %s, want 100", acc.Balance())
	}

	history := s.TransactionHistory(acc)
	if len(history) != 1 || history[0].Status() != models.TxFailed {
		t.Fatalf("expected one FAILED record, got %v", history)
	}
}

func TestInvalidAmountIsNotRecorded(t *testing.T) {
	s := NewAccountService(nil)
	acc := openVerified(t, s, "100")

	if tx, err := s.Deposit(acc, amt("0")); !errors.Is(err, models.ErrInvalidAmount) || tx != nil {
		t.Fatalf("expected ErrInvalidAmount and no record, got %v, %v", tx, err)
	}
	if _, err := s.Withdraw(acc, amt("-3")); !errors.Is(err, models.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := s.Deposit(nil, amt("1")); !errors.Is(err, models.ErrNilAccount) {
		t.Fatalf("expected ErrNilAccount, got %v", err)
	}
	if n := len(s.TransactionHistory(acc)); n != 0 {
		t.Fatalf("history = %d, want 0", n)
	}
	if got := s.TransactionHistory(nil); got == nil || len(got) != 0 {
		t.Fatalf("history of nil = %v, want empty", got)
	}
}

func TestTransferByNumber(t *testing.T) {
	s := NewAccountService(nil)
	x := openVerified(t, s, "100.0")
	y := openVerified(t, s, "100.0")

	if _, err := s.Transfer(x.Number(), y.Number(), amt("50.0")); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !x.Balance().Equal(amt("50")) || !y.Balance().Equal(amt("150")) {
		t.Fatalf("balances = %s/%s, want 50/150", x.Balance(), y.Balance())
	}

	hx, hy := s.TransactionHistory(x), s.TransactionHistory(y)
	if len(hx) != 1 || len(hy) != 1 || hx[0] != hy[0] {
		t.Fatal("a transfer should appear once in each history, as the same record")
	}
	if hx[0].Type() != models.TxTransfer || !hx[0].IsSuccessful() {
		t.Fatalf("unexpected record %+v", hx[0].View())
	}
}

func TestTransferUnknownAccount(t *testing.T) {
	s := NewAccountService(nil)
	x := openVerified(t, s, "100")

	if _, err := s.Transfer(x.Number(), 9999, amt("10")); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unknown target: expected ErrAccountNotFound, got %v", err)
	}
	if _, err := s.Transfer(9999, x.Number(), amt("10")); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unknown source: expected ErrAccountNotFound, got %v", err)
	}
	if !x.Balance().Equal(amt("100")) {
		t.Fatalf("balance = %s, want 100", x.Balance())
	}
	if n := len(s.TransactionHistory(x)); n != 0 {
		t.Fatalf("history = %d, want 0", n)
	}
}

func TestTransferToClosedAccountRecordsFailureOnBoth(t *testing.T) {
	s := NewAccountService(nil)
	x := openVerified(t, s, "100")
	y := openVerified(t, s, "0")
	y.Close()

	if _, err := s.Transfer(x.Number(), y.Number(), amt("40")); !errors.Is(err, models.ErrAccountUnavailable) {
		t.Fatalf("expected ErrAccountUnavailable, got %v", err)
	}
	if !x.Balance().Equal(amt("100")) {
		t.Fatalf("source balance = %s, want 100", x.Balance())
	}
	for _, acc := range []*models.Account{x, y} {
		h := s.TransactionHistory(acc)
		if len(h) != 1 || h[0].Status() != models.TxFailed {
			t.Fatalf("account %d: expected one FAILED record, got %v", acc.Number(), h)
		}
	}
}

func TestTransferToSameAccount(t *testing.T) {
	s := NewAccountService(nil)
	x := openVerified(t, s, "100")

	if _, err := s.Transfer(x.Number(), x.Number(), amt("10")); !errors.Is(err, models.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
	if n := len(s.TransactionHistory(x)); n != 0 {
		t.Fatalf("history = %d, want 0", n)
	}
}

func TestAllAccountsSorted(t *testing.T) {
	s := NewAccountService(nil)
	late, _ := models.NewAccount(5000, decimal.Zero)
	_ = s.RegisterAccount(late)
	_, _ = s.OpenAccount(decimal.Zero)
	early, _ := models.NewAccount(10, decimal.Zero)
	_ = s.RegisterAccount(early)

	all := s.AllAccounts()
	want := []int{10, 5000, 5001}
	if len(all) != len(want) {
		t.Fatalf("accounts = %d, want %d", len(all), len(want))
	}
	for i, n := range want {
		if all[i].Number() != n {
			t.Fatalf("position %d has %d, want %d", i, all[i].Number(), n)
		}
	}
}
