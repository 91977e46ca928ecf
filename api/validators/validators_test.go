package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type menuItemBody struct {
	Title    string           `json:"title" validate:"required,max=255"`
	Price    decimal.Decimal  `json:"price" validate:"gt=0"`
	Discount *decimal.Decimal `json:"discount" validate:"omitempty,gt=0"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Lemon cake","price":"0"}`))
	var body menuItemBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := pkgerrors.As(err).Details().(map[string]string)
	if details["price"] != "must be greater than 0" {
		t.Fatalf("unexpected details %v", details)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Lemon cake","price":"4.50"}`))
	body = menuItemBody{}
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !body.Price.Equal(decimal.RequireFromString("4.5")) {
		t.Fatalf("unexpected price %s", body.Price)
	}
}

func TestDecodeJSONBodyRejectsUnknownAndEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","price":"1","color":"red"}`))
	if err := DecodeJSONBody(req, &menuItemBody{}); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected unknown field rejection, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	err := DecodeJSONBody(req, &menuItemBody{})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected required field errors, got %v", err)
	}
	if pkgerrors.As(err).Details().(map[string]string)["title"] != "is required" {
		t.Fatalf("unexpected details %v", pkgerrors.As(err).Details())
	}
}

func TestQueryParsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?featured=1&to_price=9.99&order=7&page=x&search=%20soup%20", nil)

	featured, err := ParseQueryBool(req, "featured")
	if err != nil || featured == nil || !*featured {
		t.Fatalf("unexpected featured %v %v", featured, err)
	}
	price, err := ParseQueryDecimal(req, "to_price")
	if err != nil || price.String() != "9.99" {
		t.Fatalf("unexpected price %v %v", price, err)
	}
	order, err := ParseQueryUint(req, "order")
	if err != nil || *order != 7 {
		t.Fatalf("unexpected order %v %v", order, err)
	}
	if _, err := ParseQueryInt(req, "page", 1, 1, 1000); err == nil {
		t.Fatal("expected error for non-numeric page")
	}
	if got, _ := ParseQueryInt(req, "perpage", 2, 1, 100); got != 2 {
		t.Fatalf("expected default perpage, got %d", got)
	}
	if got := ParseQueryString(req, "search", 3); got != "sou" {
		t.Fatalf("unexpected search %q", got)
	}
	if v, err := ParseQueryBool(req, "missing"); v != nil || err != nil {
		t.Fatalf("expected nil for missing bool, got %v %v", v, err)
	}
}

func TestParsePathID(t *testing.T) {
	withParam := func(value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", value)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	if id, err := ParsePathID(withParam("42"), "id"); err != nil || id != 42 {
		t.Fatalf("unexpected id %d %v", id, err)
	}
	for _, bad := range []string{"0", "-1", "abc", ""} {
		if _, err := ParsePathID(withParam(bad), "id"); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %q, got %v", bad, err)
		}
	}
}

func TestParsePagination(t *testing.T) {
	params, err := ParsePagination(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || params.Page != 1 || params.PerPage != 2 {
		t.Fatalf("unexpected defaults %+v %v", params, err)
	}
	params, err = ParsePagination(httptest.NewRequest(http.MethodGet, "/?page=3&perpage=10", nil))
	if err != nil || params.Page != 3 || params.PerPage != 10 {
		t.Fatalf("unexpected params %+v %v", params, err)
	}
	for _, bad := range []string{"/?page=0", "/?perpage=0", "/?perpage=101", "/?page=two"} {
		if _, err := ParsePagination(httptest.NewRequest(http.MethodGet, bad, nil)); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", bad, err)
		}
	}
}

func TestSanitizeStringKeepsRunesWhole(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{in: "  crème brûlée  ", max: 0, want: "crème brûlée"},
		{in: "crème brûlée", max: 4, want: "crèm"},
		{in: "tiramisù", max: 8, want: "tiramisù"},
		{in: "tiramisù", max: 20, want: "tiramisù"},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.want {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
	if got := SanitizeUsername(strings.Repeat("a", 200)); len(got) != 150 {
		t.Fatalf("expected username capped at 150, got %d", len(got))
	}
}
