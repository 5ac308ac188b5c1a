// Package transform reshapes AndroMoney records into MOZE records.
//
// The conversion is a pipeline of pure stages. Each stage takes a slice and
// returns a new one, so every step can be exercised on its own:
//
//	filterSystem -> remap -> classify -> applySign -> reformat ->
//	assignAccounts -> splitTransfers -> sortRows -> relink -> project
package transform

import (
	"cmp"
	"slices"

	"github.com/cleared-dev/andromoze/internal/model"
)

// RelatedRowOffset is added to the 0-based sorted index of a pair's first
// leg to produce the related row number: one for the header row and one
// more that MOZE files produced by earlier conversions have always carried.
const RelatedRowOffset = 2

const (
	colDate = "Date"
	colTime = "Time"
)

// Options controls labels and optional behaviour of Transform.
type Options struct {
	SystemCategory      string
	TransferOutCategory string
	TransferInCategory  string
	// CarryProject copies the AndroMoney project into the MOZE project column.
	CarryProject bool
}

// DefaultOptions returns the options used for a stock MOZE import.
func DefaultOptions() Options {
	return Options{
		SystemCategory:      "SYSTEM",
		TransferOutCategory: "轉出",
		TransferInCategory:  "轉入",
	}
}

// pairingID links the two legs of a split transfer until relink. Zero
// means the row is not a transfer leg.
type pairingID int

type row struct {
	model.TargetRecord
	src  model.SourceRecord
	pair pairingID
}

// Transform converts the whole source collection. Any error aborts the
// conversion and no records are returned.
func Transform(recs []model.SourceRecord, opts Options) ([]model.TargetRecord, error) {
	rows := remap(filterSystem(recs, opts.SystemCategory), opts.CarryProject)

	rows, err := classify(rows)
	if err != nil {
		return nil, err
	}
	rows = applySign(rows)

	rows, err = reformat(rows)
	if err != nil {
		return nil, err
	}
	rows = assignAccounts(rows)

	legs, rest := splitTransfers(rows, opts)
	merged := append(legs, rest...)

	return project(relink(sortRows(merged))), nil
}

func filterSystem(recs []model.SourceRecord, systemCategory string) []model.SourceRecord {
	out := make([]model.SourceRecord, 0, len(recs))
	for _, r := range recs {
		if r.IsSystem(systemCategory) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func remap(recs []model.SourceRecord, carryProject bool) []row {
	out := make([]row, len(recs))
	for i, r := range recs {
		out[i] = row{
			TargetRecord: model.TargetRecord{
				Currency:     r.Currency,
				MainCategory: r.Category,
				SubCategory:  r.SubCategory,
				Payee:        r.Payee,
				Description:  r.Remark,
				Amount:       r.Amount,
				Date:         r.Date,
				Time:         r.Time,
			},
			src: r,
		}
		if carryProject {
			out[i].Project = r.Project
		}
	}
	return out
}

func classify(rows []row) ([]row, error) {
	out := slices.Clone(rows)
	for i := range out {
		switch src := out[i].src; {
		case src.IsExpense():
			out[i].Type = model.RecordTypeExpense
		case src.IsIncome():
			out[i].Type = model.RecordTypeIncome
		case src.IsTransfer():
			out[i].Type = model.RecordTypeTransfer
		default:
			return nil, &model.ClassificationError{Line: src.Line}
		}
	}
	return out, nil
}

func applySign(rows []row) []row {
	out := slices.Clone(rows)
	for i := range out {
		if out[i].Type == model.RecordTypeExpense {
			out[i].Amount = out[i].Amount.Neg()
		}
	}
	return out
}

func reformat(rows []row) ([]row, error) {
	out := slices.Clone(rows)
	for i := range out {
		date, err := FormatDate(out[i].src.Date)
		if err != nil {
			return nil, &model.FormatError{Line: out[i].src.Line, Column: colDate, Value: out[i].src.Date, Err: err}
		}
		tm, err := FormatTime(out[i].src.Time)
		if err != nil {
			return nil, &model.FormatError{Line: out[i].src.Line, Column: colTime, Value: out[i].src.Time, Err: err}
		}
		out[i].Date = date
		out[i].Time = tm
	}
	return out, nil
}

func assignAccounts(rows []row) []row {
	out := slices.Clone(rows)
	for i := range out {
		if out[i].Type == model.RecordTypeTransfer {
			continue
		}
		if out[i].src.TransferOut != "" {
			out[i].Account = out[i].src.TransferOut
		} else {
			out[i].Account = out[i].src.TransferIn
		}
	}
	return out
}

// splitTransfers returns the transfer legs, out then in for each source
// transfer, and the remaining rows in their original order.
func splitTransfers(rows []row, opts Options) (legs, rest []row) {
	var next pairingID
	for _, r := range rows {
		if r.Type != model.RecordTypeTransfer {
			rest = append(rest, r)
			continue
		}
		next++

		outLeg := r
		outLeg.pair = next
		outLeg.MainCategory = opts.TransferOutCategory
		outLeg.Account = r.src.TransferOut
		outLeg.Amount = r.Amount.Neg()

		inLeg := r
		inLeg.pair = next
		inLeg.MainCategory = opts.TransferInCategory
		inLeg.Account = r.src.TransferIn

		legs = append(legs, outLeg, inLeg)
	}
	return legs, rest
}

// sortRows orders by date, then time with missing times last, then record
// type. The sort is stable, so the two legs of a transfer, which share all
// three keys, stay adjacent and keep their out-then-in order.
func sortRows(rows []row) []row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b row) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		if (a.Time == "") != (b.Time == "") {
			if a.Time == "" {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.Type, b.Type)
	})
	return out
}

// relink writes the row number of the first leg seen for each pairing id
// into every leg sharing that id.
func relink(rows []row) []row {
	out := slices.Clone(rows)
	first := make(map[pairingID]int)
	for i := range out {
		if out[i].pair == 0 {
			continue
		}
		n, ok := first[out[i].pair]
		if !ok {
			n = i + RelatedRowOffset
			first[out[i].pair] = n
		}
		out[i].RelatedRow = n
	}
	return out
}

func project(rows []row) []model.TargetRecord {
	out := make([]model.TargetRecord, len(rows))
	for i, r := range rows {
		out[i] = r.TargetRecord
	}
	return out
}
