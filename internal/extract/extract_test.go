package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/andromoze/internal/andromoney"
	"github.com/cleared-dev/andromoze/internal/model"
)

func system(account, amount string) model.SourceRecord {
	return model.SourceRecord{
		Category:    "SYSTEM",
		SubCategory: "INIT_AMOUNT",
		TransferIn:  account,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestExtract_OpeningPrefersLargestAmount(t *testing.T) {
	s := Extract([]model.SourceRecord{system("Cash", "50"), system("Cash", "200"), system("Cash", "120")}, "SYSTEM")

	amount, ok := s.Opening("Cash")
	require.True(t, ok)
	assert.Equal(t, "200", amount.String())
}

func TestExtract_Fixture(t *testing.T) {
	recs, err := andromoney.NewParser().ParseFile("../../testdata/andromoney.csv")
	require.NoError(t, err)

	s := Extract(recs, "SYSTEM")

	var names []string
	for _, a := range s.Accounts {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Bank", "Cash", "Credit Card"}, names)

	bank, ok := s.Opening("Bank")
	require.True(t, ok)
	assert.Equal(t, "1000", bank.String())
	cash, ok := s.Opening("Cash")
	require.True(t, ok)
	assert.Equal(t, "200", cash.String())
	_, ok = s.Opening("Credit Card")
	assert.False(t, ok)

	assert.Equal(t, []string{"Japan Trip"}, s.Projects)

	cats := make(map[string][]string)
	for _, c := range s.Categories {
		cats[c.Name] = c.SubCategories
	}
	assert.Equal(t, map[string][]string{
		"Food":      {"Lunch"},
		"SYSTEM":    {"INIT_AMOUNT"},
		"Salary":    {"Monthly"},
		"Transfer":  {"Bank Transfer"},
		"Transport": {"Taxi"},
	}, cats)
}

func TestExtract_SkipsEmptyValues(t *testing.T) {
	s := Extract([]model.SourceRecord{
		{Category: "Food", TransferOut: "Cash"},
		{Category: "", SubCategory: "orphan", TransferIn: "Bank"},
		{Category: "SYSTEM", Amount: decimal.NewFromInt(5)},
	}, "SYSTEM")

	require.Len(t, s.Accounts, 2)
	assert.Nil(t, s.Projects)
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Food", s.Categories[0].Name)
	assert.Empty(t, s.Categories[0].SubCategories)
}

func TestExtract_OpeningOnlyFromSystemRows(t *testing.T) {
	s := Extract([]model.SourceRecord{
		{Category: "Salary", TransferIn: "Bank", Amount: decimal.NewFromInt(9000)},
	}, "SYSTEM")
	_, ok := s.Opening("Bank")
	assert.False(t, ok)
}

func TestExtract_Empty(t *testing.T) {
	s := Extract(nil, "SYSTEM")
	assert.Empty(t, s.Accounts)
	assert.Empty(t, s.Projects)
	assert.Empty(t, s.Categories)
}
