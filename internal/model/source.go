package model

import "github.com/shopspring/decimal"

// SourceRecord is one data row of an AndroMoney export.
type SourceRecord struct {
	Line        int // 1-based line in the source file
	Currency    string
	Category    string
	SubCategory string
	Payee       string
	Remark      string
	Project     string
	Amount      decimal.Decimal // unsigned magnitude
	Date        string          // YYYYMMDD
	Time        string          // HHMM without leading zeros, may be empty
	TransferOut string          // "Expense(Transfer Out)" account
	TransferIn  string          // "Income(Transfer In)" account
}

// IsIncome reports whether only the transfer-in account is set.
func (r SourceRecord) IsIncome() bool {
	return r.TransferOut == "" && r.TransferIn != ""
}

// IsExpense reports whether only the transfer-out account is set.
func (r SourceRecord) IsExpense() bool {
	return r.TransferIn == "" && r.TransferOut != ""
}

// IsTransfer reports whether both accounts are set.
func (r SourceRecord) IsTransfer() bool {
	return r.TransferOut != "" && r.TransferIn != ""
}

// IsSystem reports whether the row is an opening-balance seed row.
func (r SourceRecord) IsSystem(systemCategory string) bool {
	return r.Category == systemCategory
}
