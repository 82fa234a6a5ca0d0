package handlers

import "github.com/gofiber/fiber/v2"

// SetupRoutes mounts the API under /api.
func (h *Handler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)

	protected := api.Group("/", h.AuthMiddleware)
	protected.Post("/logout", h.Logout)
	protected.Get("/me", h.Me)
	protected.Get("/accounts", h.GetAccounts)
	protected.Post("/accounts", h.CreateAccount)
	protected.Get("/accounts/:id/transactions", h.TransactionHistory)
	protected.Post("/transfer", h.Transfer)
	protected.Post("/deposit/:id", h.Deposit)
	protected.Post("/withdraw/:id", h.Withdraw)

	admin := protected.Group("/admin", h.AdminMiddleware)
	admin.Get("/accounts", h.AdminAccounts)
	admin.Get("/accounts/unverified", h.UnverifiedAccounts)
	admin.Get("/users", h.AdminUsers)
	admin.Get("/transactions", h.AdminTransactions)
	admin.Get("/transactions/pending", h.PendingTransactions)
	admin.Get("/transactions/:id", h.AdminTransaction)
	admin.Post("/accounts/:id/verify", h.VerifyAccount)
	admin.Post("/accounts/:id/suspend", h.SuspendAccount)
	admin.Post("/accounts/:id/appeal", h.AppealAccount)
	admin.Post("/accounts/:id/close", h.CloseAccount)
}
