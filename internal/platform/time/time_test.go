package time

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseNaive(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{"2023-10-01T09:00:00", "2023-10-01 09:00:00", false},
		{"2023-10-01T09:00", "2023-10-01 09:00:00", false},
		{"2023-10-01 09:30", "2023-10-01 09:30:00", false},
		{"2023-10-01T09:00:00.123", "2023-10-01 09:00:00", false},
		{"2023-10-01T09:00:00+05:30", "2023-10-01 09:00:00", false},
		{"2023-10-01T09:00:00Z", "2023-10-01 09:00:00", false},
		{"2023-10-01", "2023-10-01 00:00:00", false},
		{"10/01/2023", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseNaive(tc.in)
		if tc.err {
			if err == nil {
				t.Fatalf("ParseNaive(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseNaive(%q): %v", tc.in, err)
		}
		if got.Location() != time.UTC {
			t.Fatalf("ParseNaive(%q) location = %v", tc.in, got.Location())
		}
		if s := got.Format("2006-01-02 15:04:05"); s != tc.want {
			t.Fatalf("ParseNaive(%q) = %s, want %s", tc.in, s, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2023-10-15T17:30:00")
	if err != nil || got.Format("2006-01-02 15:04") != "2023-10-15 00:00" {
		t.Fatalf("ParseDate = %v, %v", got, err)
	}
	if _, err := ParseDate("15.10.2023"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNaive_JSON(t *testing.T) {
	var v struct {
		Start Naive `json:"start"`
		Until *Date `json:"until"`
	}
	if err := json.Unmarshal([]byte(`{"start":"2023-10-01T09:00","until":"2023-10-31"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"start":"2023-10-01T09:00:00","until":"2023-10-31"}` {
		t.Fatalf("marshal = %s", b)
	}
	if err := json.Unmarshal([]byte(`{"start":1696150800}`), &v); err == nil {
		t.Fatalf("numeric timestamps are rejected")
	}
}

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time must map to nil")
	}
	now := time.Now()
	if p := Ptr(now); p == nil || !p.Equal(now) {
		t.Fatalf("Ptr lost the value")
	}
	var d *Date
	if d.Ptr() != nil {
		t.Fatalf("nil Date must map to nil")
	}
}
