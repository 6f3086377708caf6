package snake

import (
	"testing"
)

func TestValidateDate(t *testing.T) {
	for _, ok := range []string{"2026-03-10", " 2024-02-29 "} {
		if err := ValidateDate(ok); err != nil {
			t.Fatalf("ValidateDate(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "2026-02-30", "03/10/2026", "tomorrow"} {
		if err := ValidateDate(bad); err == nil {
			t.Fatalf("ValidateDate(%q) should fail", bad)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("  "); err == nil {
		t.Fatal("expected blank name to fail")
	}
	if err := ValidateName("Launch"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{"y": true, "Yes": true, "1": true, "n": false, "no": false, "False": false} {
		got, err := ParseBool(in)
		if err != nil || got != want {
			t.Fatalf("ParseBool(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatal("expected error for maybe")
	}
}
