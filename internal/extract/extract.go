// Package extract collects the entities that have to be created by hand in
// MOZE before an import: accounts with their opening balances, projects and
// the category tree.
package extract

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/andromoze/internal/model"
)

// Account is an account referenced by any transaction.
type Account struct {
	Name    string           `yaml:"name"`
	Opening *decimal.Decimal `yaml:"opening,omitempty"`
}

// Category is a main category with every sub-category paired with it.
type Category struct {
	Name          string   `yaml:"name"`
	SubCategories []string `yaml:"sub_categories,omitempty"`
}

// Summary is the manual setup list. Slices are sorted by name.
type Summary struct {
	Accounts   []Account  `yaml:"accounts"`
	Projects   []string   `yaml:"projects"`
	Categories []Category `yaml:"categories"`
}

// Extract builds the summary from the whole export, opening-balance rows
// included. When several opening rows name the same account the largest
// amount wins.
func Extract(recs []model.SourceRecord, systemCategory string) Summary {
	accounts := make(map[string]struct{})
	openings := make(map[string]decimal.Decimal)
	projects := make(map[string]struct{})
	categories := make(map[string]map[string]struct{})

	for _, r := range recs {
		for _, name := range []string{r.TransferOut, r.TransferIn} {
			if name != "" {
				accounts[name] = struct{}{}
			}
		}

		if r.IsSystem(systemCategory) && r.TransferIn != "" {
			if cur, ok := openings[r.TransferIn]; !ok || r.Amount.GreaterThan(cur) {
				openings[r.TransferIn] = r.Amount
			}
		}

		if r.Project != "" {
			projects[r.Project] = struct{}{}
		}

		if r.Category == "" {
			continue
		}
		subs, ok := categories[r.Category]
		if !ok {
			subs = make(map[string]struct{})
			categories[r.Category] = subs
		}
		if r.SubCategory != "" {
			subs[r.SubCategory] = struct{}{}
		}
	}

	var s Summary
	for _, name := range sortedKeys(accounts) {
		acct := Account{Name: name}
		if amount, ok := openings[name]; ok {
			acct.Opening = &amount
		}
		s.Accounts = append(s.Accounts, acct)
	}
	s.Projects = sortedKeys(projects)
	for _, name := range sortedKeys(categories) {
		s.Categories = append(s.Categories, Category{Name: name, SubCategories: sortedKeys(categories[name])})
	}
	return s
}

// Opening returns the opening amount recorded for an account.
func (s Summary) Opening(name string) (decimal.Decimal, bool) {
	for _, a := range s.Accounts {
		if a.Name == name && a.Opening != nil {
			return *a.Opening, true
		}
	}
	return decimal.Zero, false
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
