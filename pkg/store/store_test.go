package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-04-01")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if d.String() != "2023-04-01" {
		t.Errorf("String() = %q, want 2023-04-01", d.String())
	}

	for _, s := range []string{"2023-04-31", "23-04-01", "2023/04/01", "not a date", ""} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) want ErrInvalidDate, got %v", s, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	entry := VersionEntry{ID: 1, Version: "v1.0", Date: Date{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}, Changes: "Initial commit"}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"id":1,"version":"v1.0","date":"2023-01-01","changes":"Initial commit"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var decoded VersionEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if decoded.Date.String() != "2023-01-01" {
		t.Errorf("round-tripped date = %q", decoded.Date.String())
	}

	var bad VersionEntry
	if err := json.Unmarshal([]byte(`{"date":"01/01/2023"}`), &bad); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("want ErrInvalidDate for malformed date, got %v", err)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) error: %v", err)
	}
	if d.String() != "2023-02-01" {
		t.Errorf("Scan(time.Time) = %q", d.String())
	}

	if err := d.Scan("2023-03-01"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if d.String() != "2023-03-01" {
		t.Errorf("Scan(string) = %q", d.String())
	}

	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) expected error")
	}
}
