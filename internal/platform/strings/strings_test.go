package strings

import (
	"testing"

	"agenda/internal/platform/testkit"
)

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"appointments":     "/appointments",
		"/auth/":           "/auth",
		"  //meta//  ":     "/meta",
		"/api/v1/activity": "/api/v1/activity",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix(" / ") })
	testkit.MustPanic(t, func() { MustPrefix("") })
}

func TestMustString(t *testing.T) {
	if MustString("auth", "module name") != "auth" {
		t.Fatalf("value changed")
	}
	testkit.MustPanic(t, func() { MustString(" \t", "module name") })
}
