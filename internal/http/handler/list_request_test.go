package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

func listReq(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/list", strings.NewReader(body))
}

func TestListRequestDecodesQuerySpecification(t *testing.T) {
	body := `{"search":"tea","skip":20,"limit":10,"sort":{"price":-1,"name":1}}`
	q, raw, err := listRequest(listReq(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Search != "tea" || q.Skip != 20 || q.Limit != 10 {
		t.Fatalf("unexpected query: %+v", q)
	}
	want := []repository.SortKey{
		{Field: "price", Descending: true},
		{Field: "name"},
	}
	if len(q.Sort) != len(want) {
		t.Fatalf("unexpected sort keys: %+v", q.Sort)
	}
	for i, key := range want {
		if q.Sort[i] != key {
			t.Fatalf("sort key %d: got %+v, want %+v", i, q.Sort[i], key)
		}
	}
	if !bytes.Contains(raw, []byte(`"tea"`)) {
		t.Fatal("expected the raw body to be returned for second-pass decoding")
	}
}

func TestListRequestEmptyBodyIsUnconstrained(t *testing.T) {
	for _, body := range []string{"", "   \n"} {
		q, raw, err := listRequest(listReq(body))
		if err != nil {
			t.Fatalf("empty body %q: %v", body, err)
		}
		if q.Search != "" || q.Skip != 0 || q.Limit != 0 || q.Sort != nil {
			t.Fatalf("expected zero query for empty body, got %+v", q)
		}
		if len(raw) != 0 {
			t.Fatalf("expected no raw body, got %q", raw)
		}
	}
}

func TestListRequestRejectsMalformedBodies(t *testing.T) {
	bodies := []string{
		`{"skip":`,
		`{"sort":{"price":0}}`,
		`{"sort":["price"]}`,
	}
	for _, body := range bodies {
		if _, _, err := listRequest(listReq(body)); !errors.Is(err, service.ErrValidation) {
			t.Fatalf("body %q: expected validation error, got %v", body, err)
		}
	}
}
