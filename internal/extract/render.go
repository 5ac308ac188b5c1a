package extract

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var heading = color.New(color.FgRed, color.Underline)

// Render prints the summary as three headed lists with names ordered for
// the given locale, e.g. "zh-Hant" or "en".
func Render(w io.Writer, s Summary, locale string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	coll := collate.New(tag)

	heading.Fprintln(w, "Accounts (Initial Amount)")
	names := make([]string, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		names = append(names, a.Name)
	}
	coll.SortStrings(names)
	for _, name := range names {
		if amount, ok := s.Opening(name); ok {
			fmt.Fprintf(w, "%s: %s\n", name, amount.String())
		} else {
			fmt.Fprintln(w, name)
		}
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "Projects")
	projects := append([]string(nil), s.Projects...)
	coll.SortStrings(projects)
	for _, p := range projects {
		fmt.Fprintln(w, p)
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "Categories")
	subsByName := make(map[string][]string, len(s.Categories))
	cats := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		subsByName[c.Name] = c.SubCategories
		cats = append(cats, c.Name)
	}
	coll.SortStrings(cats)
	for _, name := range cats {
		fmt.Fprintln(w, name)
		subs := append([]string(nil), subsByName[name]...)
		coll.SortStrings(subs)
		for _, sub := range subs {
			fmt.Fprintf(w, "\t%s\n", sub)
		}
	}
	return nil
}

// WriteYAML writes the summary as a YAML document.
func WriteYAML(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}
