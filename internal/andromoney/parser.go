// Package andromoney reads AndroMoney CSV exports.
package andromoney

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/andromoze/internal/model"
)

// Column labels of an AndroMoney export header.
const (
	ColCurrency    = "Currency"
	ColCategory    = "Category"
	ColSubCategory = "Sub-Category"
	ColPayee       = "Payee/Payer"
	ColRemark      = "Remark"
	ColProject     = "Project"
	ColAmount      = "Amount"
	ColDate        = "Date"
	ColTime        = "Time"
	ColTransferOut = "Expense(Transfer Out)"
	ColTransferIn  = "Income(Transfer In)"
)

// RequiredColumns lists every column the parser resolves by name.
var RequiredColumns = []string{
	ColCurrency, ColCategory, ColSubCategory, ColPayee, ColRemark, ColProject,
	ColAmount, ColDate, ColTime, ColTransferOut, ColTransferIn,
}

// DefaultTitleRows is the number of rows AndroMoney writes above the header.
const DefaultTitleRows = 1

// Parser converts an AndroMoney export into SourceRecords.
type Parser struct {
	TitleRows int
}

// NewParser returns a Parser for the stock export layout.
func NewParser() *Parser {
	return &Parser{TitleRows: DefaultTitleRows}
}

// ParseFile opens path and parses it.
func (p *Parser) ParseFile(path string) ([]model.SourceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	recs, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return recs, nil
}

// Parse reads the title rows, the header and every data row. Columns are
// located by header label; unknown columns are ignored.
func (p *Parser) Parse(r io.Reader) ([]model.SourceRecord, error) {
	// Exports opened and re-saved in spreadsheet tools often gain a BOM.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	for i := 0; i < p.TitleRows; i++ {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &model.SchemaError{Column: ColCurrency}
			}
			return nil, fmt.Errorf("reading title row: %w", err)
		}
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &model.SchemaError{Column: ColCurrency}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var recs []model.SourceRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// *csv.ParseError already names the file line.
			return nil, fmt.Errorf("reading record: %w", err)
		}
		// Blank lines and quoted newlines make the row count drift from
		// the file line, so ask the reader where the record started.
		line, _ := cr.FieldPos(0)

		rec, err := cols.record(row, line)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

type columns map[string]int

func indexColumns(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &model.SchemaError{Column: name}
		}
	}
	return cols, nil
}

// get returns the trimmed cell for name; short rows read as empty.
func (c columns) get(row []string, name string) string {
	i := c[name]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) record(row []string, line int) (model.SourceRecord, error) {
	amount := decimal.Zero
	if raw := c.get(row, ColAmount); raw != "" {
		var err error
		amount, err = decimal.NewFromString(raw)
		if err != nil {
			return model.SourceRecord{}, &model.FormatError{Line: line, Column: ColAmount, Value: raw, Err: err}
		}
	}

	return model.SourceRecord{
		Line:        line,
		Currency:    c.get(row, ColCurrency),
		Category:    c.get(row, ColCategory),
		SubCategory: c.get(row, ColSubCategory),
		Payee:       c.get(row, ColPayee),
		Remark:      c.get(row, ColRemark),
		Project:     c.get(row, ColProject),
		Amount:      amount,
		Date:        c.get(row, ColDate),
		Time:        c.get(row, ColTime),
		TransferOut: c.get(row, ColTransferOut),
		TransferIn:  c.get(row, ColTransferIn),
	}, nil
}
