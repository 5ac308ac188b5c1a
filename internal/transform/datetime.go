package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	sourceDateLayout = "20060102"
	sourceTimeLayout = "1504"
	targetDateLayout = "2006/01/02"
	targetTimeLayout = "15:04"
)

// FormatDate converts an 8-digit YYYYMMDD value into YYYY/MM/DD.
func FormatDate(s string) (string, error) {
	digits, err := integral(s)
	if err != nil {
		return "", err
	}
	if len(digits) != len(sourceDateLayout) {
		return "", fmt.Errorf("want %d digits, got %d", len(sourceDateLayout), len(digits))
	}
	d, err := time.Parse(sourceDateLayout, digits)
	if err != nil {
		return "", err
	}
	return d.Format(targetDateLayout), nil
}

// FormatTime converts an HHMM value of 1-4 digits into HH:MM. Leading
// zeros are implied, so "930" is 09:30 and "0" is midnight. An empty value
// stays empty.
func FormatTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	digits, err := integral(s)
	if err != nil {
		return "", err
	}
	if len(digits) > len(sourceTimeLayout) {
		return "", fmt.Errorf("want at most %d digits, got %d", len(sourceTimeLayout), len(digits))
	}
	padded := strings.Repeat("0", len(sourceTimeLayout)-len(digits)) + digits
	t, err := time.Parse(sourceTimeLayout, padded)
	if err != nil {
		return "", err
	}
	return t.Format(targetTimeLayout), nil
}

// integral returns the unsigned digits of s. Spreadsheet round-trips turn
// 930 into 930.0, so integral decimals are accepted too.
func integral(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty value")
	}
	if strings.Contains(s, ".") {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return "", err
		}
		if !d.Equal(d.Truncate(0)) {
			return "", fmt.Errorf("not an integer")
		}
		s = d.Truncate(0).String()
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("unexpected character %q", r)
		}
	}
	return s, nil
}
