package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExpenseRecordedEvent EventType = "expense.recorded"
	ExpenseDeletedEvent  EventType = "expense.deleted"
)

// ExpenseRecorded is published after an expense has been created or updated.
type ExpenseRecorded struct {
	UserId    int
	ExpenseId int
	Date      time.Time
	Category  string
	Amount    decimal.Decimal
}

type ExpenseDeleted struct {
	UserId    int
	ExpenseId int
}
