// Package monthkey normalizes the many month spellings accepted at the API
// boundary ("Julho 2025", "jul", "July", "2025-07", "07/2025", 202507) into
// one canonical 6-digit YYYYMM key used for campaign lookup.
package monthkey

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
)

// Key is the canonical YYYYMM form, e.g. "202507".
type Key string

func (k Key) String() string { return string(k) }

func (k Key) Year() int {
	year, _ := strconv.Atoi(string(k)[:4])
	return year
}

func (k Key) Month() time.Month {
	month, _ := strconv.Atoi(string(k)[4:])
	return time.Month(month)
}

// Label renders the key back as "Month YYYY" in Portuguese, the platform's
// display language.
func (k Key) Label() string {
	return fmt.Sprintf("%s %d", labels[int(k.Month())], k.Year())
}

func FromParts(year int, month time.Month) Key {
	return Key(fmt.Sprintf("%04d%02d", year, int(month)))
}

const (
	minYear = 2020
	maxYear = 2100
)

// months maps every accepted spelling (Portuguese and English full names and
// 3-letter abbreviations, lower-cased and accent-stripped) to a month number.
// This is the single mapping table; call sites must not do their own
// substring matching.
var months = map[string]int{
	"janeiro": 1, "jan": 1, "january": 1,
	"fevereiro": 2, "fev": 2, "february": 2, "feb": 2,
	"marco": 3, "mar": 3, "march": 3,
	"abril": 4, "abr": 4, "april": 4, "apr": 4,
	"maio": 5, "mai": 5, "may": 5,
	"junho": 6, "jun": 6, "june": 6,
	"julho": 7, "jul": 7, "july": 7,
	"agosto": 8, "ago": 8, "august": 8, "aug": 8,
	"setembro": 9, "set": 9, "september": 9, "sep": 9,
	"outubro": 10, "out": 10, "october": 10, "oct": 10,
	"novembro": 11, "nov": 11, "november": 11,
	"dezembro": 12, "dez": 12, "december": 12, "dec": 12,
}

var labels = map[int]string{
	1: "Janeiro", 2: "Fevereiro", 3: "Março", 4: "Abril",
	5: "Maio", 6: "Junho", 7: "Julho", 8: "Agosto",
	9: "Setembro", 10: "Outubro", 11: "Novembro", 12: "Dezembro",
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// Normalize resolves any accepted month token to its canonical key. Tokens
// that carry no year ("julho", "jul") resolve against the year of now.
func Normalize(token string, now time.Time) (Key, error) {
	cleaned := accentReplacer.Replace(strings.ToLower(strings.TrimSpace(token)))
	if cleaned == "" {
		return "", domainerrors.ErrInvalidMonthToken
	}

	if key, ok := normalizeNumeric(cleaned); ok {
		return key, nil
	}

	fields := strings.Fields(cleaned)
	// "julho de 2025": drop the connector.
	if len(fields) == 3 && fields[1] == "de" {
		fields = []string{fields[0], fields[2]}
	}

	switch len(fields) {
	case 1:
		month, ok := months[fields[0]]
		if !ok {
			return "", domainerrors.ErrInvalidMonthToken
		}
		return FromParts(now.Year(), time.Month(month)), nil
	case 2:
		month, ok := months[fields[0]]
		if !ok {
			return "", domainerrors.ErrInvalidMonthToken
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil || year < minYear || year > maxYear {
			return "", domainerrors.ErrInvalidMonthToken
		}
		return FromParts(year, time.Month(month)), nil
	default:
		return "", domainerrors.ErrInvalidMonthToken
	}
}

// normalizeNumeric handles "202507", "2025-07" and "07/2025".
func normalizeNumeric(token string) (Key, bool) {
	if year, month, ok := splitNumeric(token, "-", true); ok {
		return FromParts(year, time.Month(month)), true
	}
	if year, month, ok := splitNumeric(token, "/", false); ok {
		return FromParts(year, time.Month(month)), true
	}

	if len(token) != 6 {
		return "", false
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return "", false
	}
	year, month := value/100, value%100
	if year < minYear || year > maxYear || month < 1 || month > 12 {
		return "", false
	}
	return FromParts(year, time.Month(month)), true
}

// splitNumeric parses "YYYY<sep>MM" when yearFirst, else "MM<sep>YYYY".
func splitNumeric(token, sep string, yearFirst bool) (int, int, bool) {
	parts := strings.Split(token, sep)
	if len(parts) != 2 {
		return 0, 0, false
	}
	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	year, month := first, second
	if !yearFirst {
		year, month = second, first
	}
	if year < minYear || year > maxYear || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
