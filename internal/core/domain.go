package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// SystemCategoryName is the name of the protected default category seeded at
// first initialization. It is the fallback bucket for uncategorized spending.
const SystemCategoryName = "Uncategorized"

type (
	// Account is a financial account (checking, savings, credit, ...).
	// CurrentBalance is exposed as an exact decimal; storage keeps cents.
	Account struct {
		ID                 int64            `json:"id"`
		Name               string           `json:"name"`
		AccountType        string           `json:"account_type"`
		CreatedAt          string           `json:"created_at"`
		UpdatedAt          string           `json:"updated_at"`
		CurrentBalance     *decimal.Decimal `json:"current_balance"`
		Institution        *string          `json:"institution"`
		DisplayOrder       *int64           `json:"display_order"`
		Archived           bool             `json:"archived"`
		IncludeInNetWorth  bool             `json:"include_in_net_worth"`
		AccountNumberLast4 *string          `json:"account_number_last4"`
	}

	// Category is a spending category. ParentCategoryID forms a tree via a
	// plain back-reference; the store does not validate acyclicity or depth.
	Category struct {
		ID                   int64   `json:"id"`
		Name                 string  `json:"name"`
		Archived             bool    `json:"archived"`
		CreatedAt            string  `json:"created_at"`
		DisplayOrder         *int64  `json:"display_order"`
		ParentCategoryID     *int64  `json:"parent_category_id"`
		DefaultDiscretionary *bool   `json:"default_discretionary"`
		DefaultFixed         *bool   `json:"default_fixed"`
		LastUsedDate         *string `json:"last_used_date"`
		IsSystemCategory     bool    `json:"is_system_category"`
	}

	// Transaction is a single money movement on an account.
	Transaction struct {
		ID                  int64           `json:"id"`
		AccountID           int64           `json:"account_id"`
		Date                string          `json:"date"`
		Amount              decimal.Decimal `json:"amount"`
		Description         string          `json:"description"`
		CategoryID          *int64          `json:"category_id"`
		Pending             bool            `json:"pending"`
		Cleared             bool            `json:"cleared"`
		TransactionType     string          `json:"transaction_type"`
		CreatedAt           string          `json:"created_at"`
		Reconciled          bool            `json:"reconciled"`
		ImportID            *string         `json:"import_id"`
		Source              *string         `json:"source"`
		Payee               *string         `json:"payee"`
		OriginalDescription *string         `json:"original_description"`
		Memo                *string         `json:"memo"`
	}

	// CreateAccountRequest carries the user-settable account fields for both
	// insert and update. IncludeInNetWorth defaults to true when nil.
	CreateAccountRequest struct {
		Name               string           `json:"name"`
		AccountType        string           `json:"account_type"`
		Institution        *string          `json:"institution"`
		CurrentBalance     *decimal.Decimal `json:"current_balance"`
		DisplayOrder       *int64           `json:"display_order"`
		IncludeInNetWorth  *bool            `json:"include_in_net_worth"`
		AccountNumberLast4 *string          `json:"account_number_last4"`
	}

	// CreateCategoryRequest carries the user-settable category fields for both
	// insert and update. Inserted categories are never system categories.
	CreateCategoryRequest struct {
		Name                 string `json:"name"`
		DisplayOrder         *int64 `json:"display_order"`
		ParentCategoryID     *int64 `json:"parent_category_id"`
		DefaultDiscretionary *bool  `json:"default_discretionary"`
		DefaultFixed         *bool  `json:"default_fixed"`
	}

	// CreateTransactionRequest carries the fields accepted for a manual
	// transaction entry. Date is an ISO date string (YYYY-MM-DD).
	CreateTransactionRequest struct {
		AccountID   int64           `json:"account_id"`
		Date        string          `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		Description *string         `json:"description"`
		Payee       *string         `json:"payee"`
		Memo        *string         `json:"memo"`
		CategoryID  *int64          `json:"category_id"`
		Pending     bool            `json:"pending"`
		Cleared     bool            `json:"cleared"`
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyAccountType = errors.New("empty account type")
	ErrEmptyDate        = errors.New("empty date")
)

func (r CreateAccountRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.AccountType) == "" {
		return ErrEmptyAccountType
	}
	return nil
}

func (r CreateCategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (r CreateTransactionRequest) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return ErrEmptyDate
	}
	return nil
}
