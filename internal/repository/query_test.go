package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

func seedProducts(t *testing.T, repo *ProductRepository) {
	t.Helper()
	ctx := context.Background()
	products := []domain.Product{
		{Name: "Green Tea", SKU: "TEA-GREENTEA", Price: 12, Description: "d", Quantity: 5},
		{Name: "Black Tea", SKU: "TEA-BLACKTEA", Price: 9, Description: "d", Quantity: 3},
		{Name: "Matcha 100% Pure", SKU: "TEA-MATCHA", Price: 30, Description: "d", Quantity: 1},
		{Name: "Coffee Beans", SKU: "COFFEE-BEANS", Price: 15, Description: "d", Quantity: 8},
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i], 1); err != nil {
			t.Fatalf("seed product %d: %v", i, err)
		}
	}
}

func TestListPagedSearchMatchesLiteralSubstring(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	seedProducts(t, repo)
	ctx := context.Background()

	page, err := repo.ListProducts(ctx, Query{Search: "tea"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 3 {
		t.Fatalf("expected 3 tea matches, got total=%d items=%d", page.Total, len(page.Items))
	}

	// Pattern metacharacters must match literally, never as wildcards.
	page, err = repo.ListProducts(ctx, Query{Search: "100%"})
	if err != nil {
		t.Fatalf("list with %% in term: %v", err)
	}
	if page.Total != 1 || page.Items[0].Name != "Matcha 100% Pure" {
		t.Fatalf("expected literal %% match, got %+v", page)
	}

	page, err = repo.ListProducts(ctx, Query{Search: "G_een"})
	if err != nil {
		t.Fatalf("list with _ in term: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("expected no match for literal underscore term, got total=%d", page.Total)
	}
}

func TestListPagedSearchNeverFailsOnMetacharacters(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	seedProducts(t, repo)
	ctx := context.Background()

	terms := []string{`.`, `+`, `*`, `?`, `^`, `$`, `(`, `)`, `[`, `]`, `{`, `}`, `|`, `\`, `.*+?^$()[]{}|\`}
	for _, term := range terms {
		if _, err := repo.ListProducts(ctx, Query{Search: term}); err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
	}
}

func TestListPagedTotalInvariantUnderPagination(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	seedProducts(t, repo)
	ctx := context.Background()

	for _, tc := range []Query{
		{Search: "tea"},
		{Search: "tea", Limit: 1},
		{Search: "tea", Limit: 2, Skip: 1},
		{Search: "tea", Skip: 2},
		{Search: "tea", Skip: 50},
	} {
		page, err := repo.ListProducts(ctx, tc)
		if err != nil {
			t.Fatalf("list %+v: %v", tc, err)
		}
		if page.Total != 3 {
			t.Fatalf("total must be invariant under skip/limit, got %d for %+v", page.Total, tc)
		}
		if tc.Limit > 0 && len(page.Items) > tc.Limit {
			t.Fatalf("page exceeds limit: %d > %d", len(page.Items), tc.Limit)
		}
	}

	// Skip past the end yields an empty page but keeps the correct total.
	page, err := repo.ListProducts(ctx, Query{Search: "tea", Skip: 50})
	if err != nil {
		t.Fatalf("list skip past end: %v", err)
	}
	if len(page.Items) != 0 || page.Total != 3 {
		t.Fatalf("expected empty page with total 3, got items=%d total=%d", len(page.Items), page.Total)
	}
}

func TestListPagedSortAndPaginationScenario(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	seedProducts(t, repo)
	ctx := context.Background()

	page, err := repo.ListProducts(ctx, Query{
		Search: "tea",
		Sort:   []SortKey{{Field: "price", Descending: true}},
		Limit:  2,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected full match count 3 regardless of limit, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].Price < page.Items[1].Price {
		t.Fatalf("expected descending price order, got %v then %v", page.Items[0].Price, page.Items[1].Price)
	}
	if page.Items[0].Name != "Matcha 100% Pure" {
		t.Fatalf("expected most expensive match first, got %q", page.Items[0].Name)
	}
}

func TestListPagedSortIsCaseInsensitiveForTextFields(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	for _, name := range []string{"banana", "Apple", "cherry"} {
		p := domain.Product{Name: name, SKU: "FRUIT-" + name, Price: 1, Description: "d"}
		if err := repo.Create(ctx, &p, 1); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	page, err := repo.ListProducts(ctx, Query{Sort: []SortKey{{Field: "name"}}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, p := range page.Items {
		got = append(got, p.Name)
	}
	want := []string{"Apple", "banana", "cherry"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected case-insensitive order %v, got %v", want, got)
		}
	}
}

func TestListPagedMultiKeySortUsesInsertionOrderAsPriority(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	products := []domain.Product{
		{Name: "same", SKU: "S-1", Price: 2, Quantity: 1, Description: "d"},
		{Name: "same", SKU: "S-2", Price: 1, Quantity: 2, Description: "d"},
		{Name: "other", SKU: "S-3", Price: 3, Quantity: 3, Description: "d"},
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i], 1); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	page, err := repo.ListProducts(ctx, Query{
		Sort: []SortKey{{Field: "name"}, {Field: "price", Descending: true}},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Items[0].Name != "other" {
		t.Fatalf("primary key should win first, got %q", page.Items[0].Name)
	}
	if page.Items[1].SKU != "S-1" || page.Items[2].SKU != "S-2" {
		t.Fatalf("tie-break by price desc failed: %q then %q", page.Items[1].SKU, page.Items[2].SKU)
	}
}

func TestListPagedRejectsUnknownSortField(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	seedProducts(t, repo)

	_, err := repo.ListProducts(context.Background(), Query{
		Sort: []SortKey{{Field: "password"}},
	})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestListPagedScopingFilterNotBypassableBySearch(t *testing.T) {
	db := newRepositoryDBForTest(t)
	orderRepo := NewOrderRepository(db)
	ctx := context.Background()

	orders := []domain.Order{
		{UserID: 1, AddressID: 1, TotalPrice: 10, Status: domain.OrderStatusConfirmed},
		{UserID: 1, AddressID: 1, TotalPrice: 20, Status: domain.OrderStatusDelivered},
		{UserID: 2, AddressID: 2, TotalPrice: 30, Status: domain.OrderStatusConfirmed},
	}
	for i := range orders {
		if err := orderRepo.Create(ctx, &orders[i], orders[i].UserID); err != nil {
			t.Fatalf("seed order %d: %v", i, err)
		}
	}

	page, err := orderRepo.ListOrders(ctx, Query{Search: "CONFIRMED"}, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].UserID != 1 {
		t.Fatalf("scoping filter violated: %+v", page)
	}
}

func TestQueryUnmarshalPreservesSortOrder(t *testing.T) {
	var q Query
	body := `{"skip":5,"limit":10,"search":"tea","sort":{"name":1,"price":-1,"createdAt":1}}`
	if err := json.Unmarshal([]byte(body), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Skip != 5 || q.Limit != 10 || q.Search != "tea" {
		t.Fatalf("unexpected scalars: %+v", q)
	}
	want := []SortKey{{Field: "name"}, {Field: "price", Descending: true}, {Field: "createdAt"}}
	if len(q.Sort) != len(want) {
		t.Fatalf("expected %d sort keys, got %d", len(want), len(q.Sort))
	}
	for i := range want {
		if q.Sort[i] != want[i] {
			t.Fatalf("sort key %d = %+v, want %+v", i, q.Sort[i], want[i])
		}
	}
}

func TestQueryUnmarshalRejectsBadSort(t *testing.T) {
	cases := []string{
		`{"sort":{"name":2}}`,
		`{"sort":{"name":0}}`,
		`{"sort":{"name":"asc"}}`,
		`{"sort":[1,2]}`,
	}
	for i, body := range cases {
		var q Query
		if err := json.Unmarshal([]byte(body), &q); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("case %d: expected ErrInvalidQuery, got %v", i, err)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "50%", want: `50\%`},
		{in: "a_b", want: `a\_b`},
		{in: `back\slash`, want: `back\\slash`},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		if got := EscapeLike(tc.in); got != tc.want {
			t.Fatalf("EscapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUserListExactSearchAndRoleScope(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users := []domain.User{
		{Username: "alice", Email: "a@x.com", MobilePhone: "+84912345678", Role: domain.RoleAccountant, IsActive: true},
		{Username: "alicia", Email: "al@x.com", MobilePhone: "+84912345679", Role: domain.RoleAccountant, IsActive: true},
		{Username: "bob", Email: "b@x.com", MobilePhone: "+84912345680", Role: domain.RoleSuperUser, IsActive: true},
	}
	for i := range users {
		if err := repo.Create(ctx, &users[i], 1); err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
	}

	// Identifier search is exact: "alice" must not match "alicia".
	page, err := repo.ListUsers(ctx, Query{Search: "alice"}, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Items[0].Username != "alice" {
		t.Fatalf("expected exact match on alice, got %+v", page)
	}

	page, err = repo.ListUsers(ctx, Query{}, domain.RoleAccountant)
	if err != nil {
		t.Fatalf("list by role: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 accountants, got %d", page.Total)
	}

	// Emails are stored lower-cased, so a mixed-case term must still hit.
	page, err = repo.ListUsers(ctx, Query{Search: "A@X.com"}, "")
	if err != nil {
		t.Fatalf("list by mixed-case email: %v", err)
	}
	if page.Total != 1 || page.Items[0].Username != "alice" {
		t.Fatalf("expected folded email match on alice, got %+v", page)
	}

	// Usernames stay case-sensitive.
	page, err = repo.ListUsers(ctx, Query{Search: "ALICE"}, "")
	if err != nil {
		t.Fatalf("list by upper-case username: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("expected no match for upper-case username, got %+v", page)
	}
}

func TestOrderItemsPreloadedOnList(t *testing.T) {
	db := newRepositoryDBForTest(t)
	orderRepo := NewOrderRepository(db)
	itemRepo := NewOrderItemRepository(db)
	ctx := context.Background()

	order := domain.Order{UserID: 1, AddressID: 1, TotalPrice: 22, Status: domain.OrderStatusConfirmed}
	if err := orderRepo.Create(ctx, &order, 1); err != nil {
		t.Fatalf("create order: %v", err)
	}
	items := []domain.OrderItem{
		{OrderID: order.ID, ProductID: 1, Quantity: 1, Price: 10, PreTaxTotal: 10, Tax: 1, TaxTotal: 11},
		{OrderID: order.ID, ProductID: 2, Quantity: 1, Price: 10, PreTaxTotal: 10, Tax: 1, TaxTotal: 11},
	}
	if err := itemRepo.CreateBatch(ctx, items, 1); err != nil {
		t.Fatalf("create items: %v", err)
	}

	page, err := orderRepo.ListOrders(ctx, Query{}, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || len(page.Items[0].Items) != 2 {
		t.Fatalf("expected preloaded items, got %+v", page.Items)
	}

	got, err := orderRepo.FindByIDForUser(ctx, order.ID, 1)
	if err != nil {
		t.Fatalf("find for owner: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if _, err := orderRepo.FindByIDForUser(ctx, order.ID, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
}

func TestListPagedUnboundedSkipPortability(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p := domain.Product{Name: fmt.Sprintf("p%d", i), SKU: fmt.Sprintf("P-%d", i), Price: float64(i), Description: "d"}
		if err := repo.Create(ctx, &p, 1); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	page, err := repo.ListProducts(ctx, Query{Skip: 3})
	if err != nil {
		t.Fatalf("skip without limit: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 5 {
		t.Fatalf("expected 2 remaining items and total 5, got items=%d total=%d", len(page.Items), page.Total)
	}
}
