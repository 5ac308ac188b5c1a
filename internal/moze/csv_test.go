package moze

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/andromoze/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sample() []model.TargetRecord {
	return []model.TargetRecord{
		{
			Account:      "Cash",
			Currency:     "TWD",
			Type:         model.RecordTypeExpense,
			MainCategory: "Food",
			SubCategory:  "Lunch",
			Amount:       dec("-100"),
			Payee:        "Noodle Shop, Shibuya",
			Date:         "2023/01/01",
			Time:         "12:30",
			Description:  "lunch",
		},
		{Account: "Cash", Currency: "TWD", Type: model.RecordTypeTransfer, MainCategory: "轉出", Amount: dec("-500"), Date: "2023/01/05", RelatedRow: 3},
		{Account: "Bank", Currency: "TWD", Type: model.RecordTypeTransfer, MainCategory: "轉入", Amount: dec("500"), Date: "2023/01/05", RelatedRow: 3},
	}
}

func TestWriteRecords_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil, DefaultLabels()))

	assert.Equal(t, "帳戶,幣別,記錄類型,主類別,子類別,金額,手續費,名稱,商家,交易方式,日期,時間,專案,描述,標籤,相關行數\n", buf.String())
}

func TestWriteRecords_Rows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, sample(), DefaultLabels()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `Cash,TWD,支出,Food,Lunch,-100,,,"Noodle Shop, Shibuya",,2023/01/01,12:30,,lunch,,`, lines[1])
	assert.Equal(t, "Cash,TWD,轉帳,轉出,,-500,,,,,2023/01/05,,,,,3", lines[2])
	assert.Equal(t, "Bank,TWD,轉帳,轉入,,500,,,,,2023/01/05,,,,,3", lines[3])
}

func TestRoundTrip(t *testing.T) {
	labels := DefaultLabels()
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, sample(), labels))

	got, err := ReadRecords(&buf, labels)
	require.NoError(t, err)
	require.Len(t, got, 3)

	want := sample()
	for i := range want {
		assert.Equal(t, want[i].Account, got[i].Account)
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "amount row %d", i)
		assert.Equal(t, want[i].Payee, got[i].Payee)
		assert.Equal(t, want[i].RelatedRow, got[i].RelatedRow)
	}
}

func TestReadRecords_WrongHeader(t *testing.T) {
	labels := DefaultLabels()
	header := strings.Repeat("x,", NumFields-1) + "x\n"
	_, err := ReadRecords(strings.NewReader(header), labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header column 1")
}

func TestReadRecords_UnknownType(t *testing.T) {
	labels := DefaultLabels()
	data := strings.Join(labels.Header, ",") + "\nCash,TWD,???,Food,,-1,,,,,2023/01/01,,,,,\n"
	_, err := ReadRecords(strings.NewReader(data), labels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown record type")
}

func TestLabelsCheck(t *testing.T) {
	assert.NoError(t, DefaultLabels().Check())

	short := DefaultLabels()
	short.Header = short.Header[:15]
	assert.Error(t, short.Check())

	var buf bytes.Buffer
	assert.Error(t, WriteRecords(&buf, sample(), short))

	blank := DefaultLabels()
	blank.Income = ""
	assert.Error(t, blank.Check())
}

func TestCustomLabels(t *testing.T) {
	labels := Labels{
		Header: []string{
			"Account", "Currency", "RecordType", "MainCategory", "SubCategory", "Amount",
			"Fee", "Name", "Payee", "PaymentMethod", "Date",
			"Time", "Project", "Description", "Tags", "RelatedRowNumber",
		},
		Expense:  "expense",
		Income:   "income",
		Transfer: "transfer",
	}
	row := MarshalRecord(sample()[0], labels)
	assert.Len(t, row, NumFields)
	assert.Equal(t, "expense", row[colType])
	assert.Empty(t, row[colRelatedRow])
}
