package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanResponse préstamo en respuestas.
type LoanResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	BookID      string          `json:"book_id"`
	LoanDate    time.Time       `json:"loan_date"`
	DueDate     time.Time       `json:"due_date"`
	ReturnDate  *time.Time      `json:"return_date,omitempty"`
	Status      string          `json:"status"`
	OverdueDays int             `json:"overdue_days"`
	FineAmount  decimal.Decimal `json:"fine_amount"`
}

// SweepResponse resultado del barrido de multas.
type SweepResponse struct {
	Updated int `json:"updated"`
}
