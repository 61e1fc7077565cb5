package monthkey

import (
	"errors"
	"testing"
	"time"

	domainerrors "criadores/contexts/campaign-ops/slot-service/domain/errors"
)

var reference = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestNormalizeAcceptedForms(t *testing.T) {
	cases := []struct {
		token string
		want  Key
	}{
		{"Julho 2025", "202507"},
		{"julho de 2025", "202507"},
		{"  julho  ", "202507"},
		{"jul", "202507"},
		{"July", "202507"},
		{"jul 2026", "202607"},
		{"Março 2025", "202503"},
		{"marco 2025", "202503"},
		{"FEVEREIRO 2025", "202502"},
		{"feb 2025", "202502"},
		{"dez", "202512"},
		{"December 2030", "203012"},
		{"202507", "202507"},
		{"2025-07", "202507"},
		{"2025-7", "202507"},
		{"07/2025", "202507"},
		{"7/2025", "202507"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.token, reference)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", tc.token, err)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %s, want %s", tc.token, got, tc.want)
		}
	}
}

func TestNormalizeMonthOnlyUsesReferenceYear(t *testing.T) {
	got, err := Normalize("janeiro", time.Date(2031, time.November, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != Key("203101") {
		t.Fatalf("expected 203101, got %s", got)
	}
}

func TestNormalizeRejectsUnknownTokens(t *testing.T) {
	for _, token := range []string{
		"", "   ", "mes 2025", "2025", "202513", "201905", "13/2025", "2025-13",
		"julho 1999", "julho 2025 extra word", "jully",
	} {
		if _, err := Normalize(token, reference); !errors.Is(err, domainerrors.ErrInvalidMonthToken) {
			t.Fatalf("Normalize(%q) = %v, want ErrInvalidMonthToken", token, err)
		}
	}
}

func TestKeyParts(t *testing.T) {
	key := FromParts(2025, time.July)
	if key != Key("202507") {
		t.Fatalf("FromParts = %s", key)
	}
	if key.Year() != 2025 || key.Month() != time.July {
		t.Fatalf("unexpected parts: %d %s", key.Year(), key.Month())
	}
	if key.Label() != "Julho 2025" {
		t.Fatalf("unexpected label: %s", key.Label())
	}
}
