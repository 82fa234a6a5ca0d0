// Path: internal/handlers/handlers.go
package handlers

import (
	"bank-core/internal/models"
	"bank-core/internal/services"
	"bank-core/pkg/utils"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	localsClaims  = "claims"
	localsSession = "session"
)

type Handler struct {
	authService    services.AuthService
	userService    services.UserService
	accountService services.AccountService
	adminService   services.AdminService
}

func NewHandler(as services.AuthService, us services.UserService, acs services.AccountService, ads services.AdminService) *Handler {
	return &Handler{
		authService:    as,
		userService:    us,
		accountService: acs,
		adminService:   ads,
	}
}

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Details string `json:"details"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("AppError: %s (Code: %d, Details: %s, OriginalError: %v)", e.Message, e.Code, e.Details, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func (h *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	log.Printf("Error: %v", err)

	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	details := ""

	var appErr *AppError
	var fiberErr *fiber.Error
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
		details = appErr.Details
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		details = err.Error()
	}

	return c.Status(code).JSON(fiber.Map{
		"error":     message,
		"details":   details,
		"timestamp": utils.GetCurrentTimestamp(),
	})
}

// Регистрация с возвратом JWT токена
func (h *Handler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	sess := services.NewSession()
	user, err := h.userService.RegisterUser(sess, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return toAppError(err, "Registration failed")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return &AppError{
			Code:    fiber.StatusInternalServerError,
			Message: "Token generation failed",
			Details: err.Error(),
			Err:     err,
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    user.View(),
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	sess := services.NewSession()
	user, err := h.userService.Login(sess, req.Email, req.Password)
	if err != nil {
		return toAppError(err, "Login failed")
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return &AppError{
			Code:    fiber.StatusInternalServerError,
			Message: "Token generation failed",
			Details: err.Error(),
			Err:     err,
		}
	}

	return c.JSON(fiber.Map{"token": token})
}

// AuthMiddleware turns the bearer token into a per-request session.
func (h *Handler) AuthMiddleware(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodOptions {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return &AppError{
			Code:    fiber.StatusUnauthorized,
			Message: "Missing token",
			Details: "Authorization header is empty",
		}
	}

	var token string
	if _, err := fmt.Sscanf(authHeader, "Bearer %s", &token); err != nil {
		return &AppError{
			Code:    fiber.StatusUnauthorized,
			Message: "Invalid token format",
			Details: err.Error(),
		}
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		return &AppError{
			Code:    fiber.StatusUnauthorized,
			Message: "Invalid token",
			Details: err.Error(),
			Err:     err,
		}
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		return &AppError{
			Code:    fiber.StatusUnauthorized,
			Message: "Invalid token",
			Details: "Token user no longer exists",
			Err:     err,
		}
	}

	c.Locals(localsClaims, claims)
	c.Locals(localsSession, services.NewSessionFor(user))
	return c.Next()
}

// AdminMiddleware must run after AuthMiddleware.
func (h *Handler) AdminMiddleware(c *fiber.Ctx) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	if user := h.userService.CurrentUser(sess); user == nil || !user.IsAdmin() {
		return &AppError{
			Code:    fiber.StatusForbidden,
			Message: "Admin access required",
			Details: "Session user is not an admin",
		}
	}
	return c.Next()
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	if claims, ok := c.Locals(localsClaims).(*models.Claims); ok {
		h.authService.RevokeToken(claims)
	}
	h.userService.Logout(sess)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	user := h.userService.CurrentUser(sess)
	if user == nil {
		return toAppError(services.ErrNoSession, "Not logged in")
	}
	return c.JSON(user.View())
}

func (h *Handler) GetAccounts(c *fiber.Ctx) error {
	sess, err := session(c)
	if err != nil {
		return err
	}
	return c.JSON(accountViews(h.accountService.AccountsForUser(sess)))
}

func (h *Handler) CreateAccount(c *fiber.Ctx) error {
	sess, err := session(c)
	if err != nil {
		return err
	}

	var req models.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	acc, err := h.userService.CreateAccount(sess, req.InitialBalance)
	if err != nil {
		return toAppError(err, "Account creation failed")
	}
	return c.Status(fiber.StatusCreated).JSON(acc.View())
}

func (h *Handler) Transfer(c *fiber.Ctx) error {
	sess, err := session(c)
	if err != nil {
		return err
	}

	var req models.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	if _, err := h.ownedAccount(sess, req.FromID); err != nil {
		return err
	}

	tx, err := h.accountService.Transfer(req.FromID, req.ToID, req.Amount)
	if err != nil {
		return toAppError(err, "Transfer failed")
	}

	return c.JSON(fiber.Map{
		"message":        "Transfer successful",
		"transaction_id": tx.ID(),
	})
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	return h.moveMoney(c, "Deposit", h.accountService.Deposit)
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	return h.moveMoney(c, "Withdrawal", h.accountService.Withdraw)
}

func (h *Handler) moveMoney(c *fiber.Ctx, action string, move func(*models.Account, decimal.Decimal) (*models.Transaction, error)) error {
	sess, err := session(c)
	if err != nil {
		return err
	}

	accountID, err := accountParam(c)
	if err != nil {
		return err
	}

	var req models.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}
	req.AccountID = accountID

	acc, err := h.ownedAccount(sess, req.AccountID)
	if err != nil {
		return err
	}

	tx, err := move(acc, req.Amount)
	if err != nil {
		return toAppError(err, action+" failed")
	}

	return c.JSON(fiber.Map{
		"message":        action + " successful",
		"transaction_id": tx.ID(),
		"account":        acc.View(),
	})
}

func (h *Handler) TransactionHistory(c *fiber.Ctx) error {
	sess, err := session(c)
	if err != nil {
		return err
	}

	accountID, err := accountParam(c)
	if err != nil {
		return err
	}

	acc, err := h.ownedAccount(sess, accountID)
	if err != nil {
		return err
	}

	return c.JSON(transactionViews(h.accountService.TransactionHistory(acc)))
}

// ownedAccount resolves number and checks it belongs to the session user.
func (h *Handler) ownedAccount(sess *services.Session, number int) (*models.Account, error) {
	notFound := &AppError{
		Code:    fiber.StatusNotFound,
		Message: "Account not found or access denied",
		Details: fmt.Sprintf("account_id: %d", number),
	}

	user := h.userService.CurrentUser(sess)
	if user == nil {
		return nil, toAppError(services.ErrNoSession, "Not logged in")
	}
	acc, err := h.accountService.FindAccount(number)
	if err != nil {
		notFound.Err = err
		return nil, notFound
	}
	if !user.HasAccount(acc) {
		return nil, notFound
	}
	return acc, nil
}

func session(c *fiber.Ctx) (*services.Session, error) {
	sess, ok := c.Locals(localsSession).(*services.Session)
	if !ok {
		return nil, &AppError{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to retrieve session",
			Details: "Session was not of the expected type",
		}
	}
	return sess, nil
}

func accountParam(c *fiber.Ctx) (int, error) {
	accountID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, &AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid account ID",
			Details: err.Error(),
			Err:     err,
		}
	}
	return accountID, nil
}

func badRequest(err error) *AppError {
	return &AppError{
		Code:    fiber.StatusBadRequest,
		Message: "Invalid request format",
		Details: err.Error(),
		Err:     err,
	}
}

func accountViews(accounts []*models.Account) []models.AccountView {
	out := make([]models.AccountView, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, acc.View())
	}
	return out
}

func transactionViews(txs []*models.Transaction) []models.TransactionView {
	out := make([]models.TransactionView, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.View())
	}
	return out
}

func userViews(users []*models.User) []models.UserView {
	out := make([]models.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, u.View())
	}
	return out
}
