// Package moze reads and writes MOZE import files.
package moze

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/andromoze/internal/model"
)

// NumFields is the column count of a MOZE import file.
const NumFields = 16

const (
	colAccount = iota
	colCurrency
	colType
	colMainCategory
	colSubCategory
	colAmount
	colFee
	colName
	colPayee
	colPaymentMethod
	colDate
	colTime
	colProject
	colDescription
	colTags
	colRelatedRow
)

// Labels holds the localized header and record type vocabulary.
type Labels struct {
	Header   []string `yaml:"header"`
	Expense  string   `yaml:"expense"`
	Income   string   `yaml:"income"`
	Transfer string   `yaml:"transfer"`
}

// DefaultLabels returns the vocabulary of the Traditional Chinese MOZE app.
func DefaultLabels() Labels {
	return Labels{
		Header: []string{
			"帳戶", "幣別", "記錄類型", "主類別", "子類別", "金額",
			"手續費", "名稱", "商家", "交易方式", "日期",
			"時間", "專案", "描述", "標籤", "相關行數",
		},
		Expense:  "支出",
		Income:   "收入",
		Transfer: "轉帳",
	}
}

// Check reports whether the labels describe a complete header.
func (l Labels) Check() error {
	if len(l.Header) != NumFields {
		return fmt.Errorf("header has %d labels, want %d", len(l.Header), NumFields)
	}
	if l.Expense == "" || l.Income == "" || l.Transfer == "" {
		return fmt.Errorf("record type labels must not be empty")
	}
	return nil
}

// TypeLabel returns the label for a record type.
func (l Labels) TypeLabel(t model.RecordType) string {
	switch t {
	case model.RecordTypeExpense:
		return l.Expense
	case model.RecordTypeIncome:
		return l.Income
	case model.RecordTypeTransfer:
		return l.Transfer
	default:
		return ""
	}
}

// ParseType maps a label back to its record type.
func (l Labels) ParseType(label string) (model.RecordType, error) {
	switch label {
	case l.Expense:
		return model.RecordTypeExpense, nil
	case l.Income:
		return model.RecordTypeIncome, nil
	case l.Transfer:
		return model.RecordTypeTransfer, nil
	default:
		return model.RecordTypeUnknown, fmt.Errorf("unknown record type %q", label)
	}
}

// WriteRecords writes the header and one row per record.
func WriteRecords(w io.Writer, recs []model.TargetRecord, labels Labels) error {
	if err := labels.Check(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(labels.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range recs {
		if err := cw.Write(MarshalRecord(rec, labels)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords reads a MOZE file written with the same labels.
func ReadRecords(r io.Reader, labels Labels) ([]model.TargetRecord, error) {
	if err := labels.Check(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = NumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading MOZE CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	for i, h := range records[0] {
		if h != labels.Header[i] {
			return nil, fmt.Errorf("header column %d: got %q, want %q", i+1, h, labels.Header[i])
		}
	}

	var recs []model.TargetRecord
	for i, row := range records[1:] {
		rec, err := UnmarshalRecord(row, labels)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// MarshalRecord converts a record to a CSV row.
func MarshalRecord(rec model.TargetRecord, labels Labels) []string {
	row := make([]string, NumFields)
	row[colAccount] = rec.Account
	row[colCurrency] = rec.Currency
	row[colType] = labels.TypeLabel(rec.Type)
	row[colMainCategory] = rec.MainCategory
	row[colSubCategory] = rec.SubCategory
	row[colAmount] = rec.Amount.String()
	row[colFee] = rec.Fee
	row[colName] = rec.Name
	row[colPayee] = rec.Payee
	row[colPaymentMethod] = rec.PaymentMethod
	row[colDate] = rec.Date
	row[colTime] = rec.Time
	row[colProject] = rec.Project
	row[colDescription] = rec.Description
	row[colTags] = rec.Tags
	if rec.RelatedRow != 0 {
		row[colRelatedRow] = strconv.Itoa(rec.RelatedRow)
	}
	return row
}

// UnmarshalRecord converts a CSV row to a record.
func UnmarshalRecord(row []string, labels Labels) (model.TargetRecord, error) {
	if len(row) != NumFields {
		return model.TargetRecord{}, fmt.Errorf("expected %d fields, got %d", NumFields, len(row))
	}

	typ, err := labels.ParseType(row[colType])
	if err != nil {
		return model.TargetRecord{}, err
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.TargetRecord{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	var related int
	if row[colRelatedRow] != "" {
		related, err = strconv.Atoi(row[colRelatedRow])
		if err != nil {
			return model.TargetRecord{}, fmt.Errorf("parsing related row %q: %w", row[colRelatedRow], err)
		}
	}

	return model.TargetRecord{
		Account:       row[colAccount],
		Currency:      row[colCurrency],
		Type:          typ,
		MainCategory:  row[colMainCategory],
		SubCategory:   row[colSubCategory],
		Amount:        amount,
		Fee:           row[colFee],
		Name:          row[colName],
		Payee:         row[colPayee],
		PaymentMethod: row[colPaymentMethod],
		Date:          row[colDate],
		Time:          row[colTime],
		Project:       row[colProject],
		Description:   row[colDescription],
		Tags:          row[colTags],
		RelatedRow:    related,
	}, nil
}
