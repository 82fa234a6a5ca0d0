package handlers

import (
	"bank-core/internal/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) AdminAccounts(c *fiber.Ctx) error {
	return c.JSON(accountViews(h.adminService.AllAccounts()))
}

func (h *Handler) UnverifiedAccounts(c *fiber.Ctx) error {
	return c.JSON(accountViews(h.adminService.UnverifiedAccounts()))
}

func (h *Handler) AdminUsers(c *fiber.Ctx) error {
	return c.JSON(userViews(h.adminService.AllUsers()))
}

func (h *Handler) PendingTransactions(c *fiber.Ctx) error {
	return c.JSON(transactionViews(h.adminService.PendingTransactions()))
}

func (h *Handler) VerifyAccount(c *fiber.Ctx) error {
	return h.changeStatus(c, "Verification", h.adminService.VerifyAccount)
}

func (h *Handler) SuspendAccount(c *fiber.Ctx) error {
	return h.changeStatus(c, "Suspension", h.adminService.SuspendAccount)
}

func (h *Handler) AppealAccount(c *fiber.Ctx) error {
	return h.changeStatus(c, "Appeal", h.adminService.AppealAccount)
}

func (h *Handler) CloseAccount(c *fiber.Ctx) error {
	return h.changeStatus(c, "Closure", h.adminService.CloseAccount)
}

func (h *Handler) changeStatus(c *fiber.Ctx, action string, apply func(int) error) error {
	accountID, err := accountParam(c)
	if err != nil {
		return err
	}
	if err := apply(accountID); err != nil {
		return toAppError(err, action+" failed")
	}

	acc, err := h.accountService.FindAccount(accountID)
	if err != nil {
		return toAppError(err, action+" failed")
	}
	return c.JSON(fiber.Map{
		"message": action + " successful",
		"account": acc.View(),
	})
}

// AdminTransactions lists the ledger, filtered by the optional status query.
func (h *Handler) AdminTransactions(c *fiber.Ctx) error {
	status := models.TransactionStatus(strings.ToUpper(c.Query("status")))
	txs, err := h.adminService.Transactions(status)
	if err != nil {
		return toAppError(err, "Failed to list transactions")
	}
	return c.JSON(txs)
}

func (h *Handler) AdminTransaction(c *fiber.Ctx) error {
	tx, err := h.adminService.Transaction(c.Params("id"))
	if err != nil {
		return toAppError(err, "Transaction lookup failed")
	}
	return c.JSON(tx)
}
