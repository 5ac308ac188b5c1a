package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RecordType classifies a MOZE record. Values are ordered the way the
// labels sort, which is also the sort tie-break for rows on the same date
// and time.
type RecordType int

const (
	RecordTypeUnknown RecordType = iota
	RecordTypeExpense
	RecordTypeIncome
	RecordTypeTransfer
)

func (t RecordType) String() string {
	switch t {
	case RecordTypeExpense:
		return "expense"
	case RecordTypeIncome:
		return "income"
	case RecordTypeTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("RecordType(%d)", int(t))
	}
}

// TargetRecord is one row of a MOZE import file.
type TargetRecord struct {
	Account       string
	Currency      string
	Type          RecordType
	MainCategory  string
	SubCategory   string
	Amount        decimal.Decimal // negative = outflow
	Fee           string
	Name          string
	Payee         string
	PaymentMethod string
	Date          string // YYYY/MM/DD
	Time          string // HH:MM, empty when unknown
	Project       string
	Description   string
	Tags          string
	RelatedRow    int // 0 = none
}
