package database

import (
	"strings"
	"testing"
	"time"
)

func TestInitDBInMemory(t *testing.T) {
	db, err := InitDB(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	defer Close(db)

	from := 1000
	row := Transaction{
		ID:            "tx-1",
		FromAccountID: &from,
		Amount:        "12.50",
		Type:          "WITHDRAW",
		Status:        "SUCCESS",
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	var got Transaction
	if err := db.First(&got, "id = ?", "tx-1").Error; err != nil {
		t.Fatalf("first: %v", err)
	}
	if got.Amount != "12.50" || got.FromAccountID == nil || *got.FromAccountID != from || got.ToAccountID != nil {
		t.Fatalf("row = %+v", got)
	}
}

func TestInitDBUnsupportedDriver(t *testing.T) {
	_, err := InitDB("mysql", "")
	if err == nil || !strings.Contains(err.Error(), "unsupported database driver") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}
