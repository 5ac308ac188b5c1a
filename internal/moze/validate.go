package moze

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/andromoze/internal/model"
)

// firstDataRow is the file line of the first record, after the header.
const firstDataRow = 2

// ValidationError describes a structural problem in converted records.
type ValidationError struct {
	Row         int // file line, header is line 1
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Description)
}

// Validate checks the structure MOZE relies on when importing transfers:
// legs come in pairs sharing a related row number that points into the
// file, and a pair moves money without creating or losing any.
func Validate(recs []model.TargetRecord) []ValidationError {
	var errs []ValidationError

	lastRow := len(recs) + firstDataRow - 1
	pairs := make(map[int][]int)
	var order []int

	for i, rec := range recs {
		line := i + firstDataRow

		if rec.Type == model.RecordTypeUnknown {
			errs = append(errs, ValidationError{Row: line, Description: "missing record type"})
			continue
		}

		if rec.Type != model.RecordTypeTransfer {
			if rec.RelatedRow != 0 {
				errs = append(errs, ValidationError{Row: line, Description: fmt.Sprintf("%s record has related row %d", rec.Type, rec.RelatedRow)})
			}
			continue
		}

		if rec.RelatedRow < firstDataRow || rec.RelatedRow > lastRow {
			errs = append(errs, ValidationError{Row: line, Description: fmt.Sprintf("related row %d outside %d..%d", rec.RelatedRow, firstDataRow, lastRow)})
			continue
		}
		if _, seen := pairs[rec.RelatedRow]; !seen {
			order = append(order, rec.RelatedRow)
		}
		pairs[rec.RelatedRow] = append(pairs[rec.RelatedRow], i)
	}

	for _, related := range order {
		idx := pairs[related]
		line := idx[0] + firstDataRow
		if len(idx) != 2 {
			errs = append(errs, ValidationError{Row: line, Description: fmt.Sprintf("related row %d shared by %d legs, want 2", related, len(idx))})
			continue
		}

		sum := decimal.Zero
		for _, i := range idx {
			sum = sum.Add(recs[i].Amount)
		}
		if !sum.IsZero() {
			errs = append(errs, ValidationError{Row: line, Description: fmt.Sprintf("transfer legs sum to %s", sum)})
		}
	}

	return errs
}
