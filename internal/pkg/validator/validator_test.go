package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidIBAN(t *testing.T) {
	valid := []string{
		"SA0380000000608010167519",
		"sa0380000000608010167519",
		"SA03 8000 0000 6080 1016 7519",
	}
	invalid := []string{
		"SA038000000060801016751",   // 21 digits
		"SA03800000006080101675190", // 23 digits
		"AE070331234567890123456",   // wrong country
		"SA03800000006080101675ab",  // non-digit
		"",
	}
	for _, iban := range valid {
		if !IsValidIBAN(iban) {
			t.Errorf("IsValidIBAN(%q) = false, want true", iban)
		}
	}
	for _, iban := range invalid {
		if IsValidIBAN(iban) {
			t.Errorf("IsValidIBAN(%q) = true, want false", iban)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"15000", "15000", true},
		{"15000.50", "15000.5", true},
		{" 100 ", "100", true},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.input)
		if ok != c.ok {
			t.Errorf("ParseAmount(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && got.String() != c.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.input, got, c.want)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	valid := []string{"2026-01", "2020-12"}
	invalid := []string{"2026-13", "2026", "01-2026", ""}
	for _, s := range valid {
		_, ok := IsValidPeriod(s)
		if !ok {
			t.Errorf("IsValidPeriod(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidPeriod(s)
		if ok {
			t.Errorf("IsValidPeriod(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "basic_salary", Message: "must be non-negative"},
		{Field: "effective_date", Message: "is required"},
	}
	got := errs.Error()
	want := "basic_salary: must be non-negative; effective_date: is required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "basic_salary", Message: "must be non-negative"},
		{Field: "effective_date", Message: "is required"},
	}
	got := errs.ToMap()
	want := map[string]string{
		"basic_salary":   "must be non-negative",
		"effective_date": "is required",
	}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
