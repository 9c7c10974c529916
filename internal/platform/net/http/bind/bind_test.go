package bind

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	perr "agenda/internal/platform/errors"
)

type signup struct {
	Name  string `json:"name" validate:"required,nonblank,max=10"`
	Age   int    `json:"age" validate:"min=18"`
	Notes string `json:"-"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"ok", `{"name":"ana","age":30}`, 0, "", ""},
		{"empty", ``, perr.ErrorCodeJSON, "", "empty body"},
		{"syntax", `{"name":`, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"unknown field", `{"name":"ana","age":30,"admin":true}`, perr.ErrorCodeJSON, "", "unknown field"},
		{"trailing", `{"name":"ana","age":30} {}`, perr.ErrorCodeJSON, "", "trailing"},
		{"blank", `{"name":"   ","age":30}`, perr.ErrorCodeValidation, "name", "name must not be blank"},
		{"too young", `{"name":"ana","age":3}`, perr.ErrorCodeValidation, "age", "age must be at least 18"},
		{"too long", `{"name":"anastasia-b","age":30}`, perr.ErrorCodeValidation, "name", "name must be at most 10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseJSON[signup](post(tc.body))
			if tc.code == 0 {
				if err != nil || got.Name != "ana" || got.Age != 30 {
					t.Fatalf("got %+v, %v", got, err)
				}
				return
			}
			e, ok := perr.As(err)
			if !ok || e.Code() != tc.code || e.Field() != tc.field {
				t.Fatalf("err = %v", err)
			}
			if !strings.Contains(e.Error(), tc.msg) {
				t.Fatalf("message %q lacks %q", e.Error(), tc.msg)
			}
		})
	}
}

func TestJSONName(t *testing.T) {
	var s struct {
		A int `json:"a_field,omitempty"`
		B int `json:"-"`
		C int
	}
	typ := reflect.TypeOf(s)
	want := []string{"a_field", "B", "C"}
	for i, w := range want {
		if got := jsonName(typ.Field(i)); got != w {
			t.Fatalf("field %d = %q, want %q", i, got, w)
		}
	}
}
