package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intellivend/internal/domain"
	"intellivend/internal/events"
	"intellivend/internal/repos"
	"intellivend/internal/store"
)

func memstore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	st := store.New(kv, "intellivend_", 0)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, repos.Bootstrap(context.Background(), st))
	return st
}

// counter records how often a signal fired.
func counter(bus *events.Bus, sig events.Signal) *int {
	n := new(int)
	bus.Subscribe(sig, func() { *n++ })
	return n
}

func TestBootstrapSeedsCatalogAndOrders(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	bus := events.NewBus()

	products, err := repos.NewCatalogRepo(st, bus).List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 9)
	assert.Equal(t, "p1", products[0].ID)

	orders, err := repos.NewOrderRepo(st, bus).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestBootstrapRefreshesSeedImagesOnly(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)

	stale := repos.SeedProducts()[:2]
	stale[0].ImageURL = "https://old.example/chair.png"
	stale[0].Images = nil
	stale[0].Price = 1
	custom := domain.Product{ID: "p-42", Name: "Custom", ImageURL: "https://mine.example/x.png"}
	require.NoError(t, st.Set(ctx, store.KeyProducts, append(stale, custom)))

	require.NoError(t, repos.Bootstrap(ctx, st))

	var got []domain.Product
	_, err := st.Get(ctx, store.KeyProducts, &got)
	require.NoError(t, err)
	require.Len(t, got, 3)
	seed := repos.SeedProducts()[0]
	assert.Equal(t, seed.ImageURL, got[0].ImageURL)
	assert.Equal(t, seed.Images, got[0].Images)
	assert.Equal(t, 1.0, got[0].Price)
	assert.Equal(t, "https://mine.example/x.png", got[2].ImageURL)
}

func TestBootstrapResetsCorruptCatalog(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	st := store.New(kv, "intellivend_", 0)
	require.NoError(t, kv.Set(ctx, st.Key(store.KeyProducts), []byte("{not json")))

	require.NoError(t, repos.Bootstrap(ctx, st))

	var got []domain.Product
	_, err := st.Get(ctx, store.KeyProducts, &got)
	require.NoError(t, err)
	assert.Len(t, got, 9)
}

func TestCatalogAddPrependsAndPublishes(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	fired := counter(bus, events.ProductsChanged)
	catalog := repos.NewCatalogRepo(memstore(t), bus)

	_, err := catalog.Add(ctx, domain.Product{ID: "p-new", Name: "Drone", Price: 10})
	require.NoError(t, err)

	products, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p-new", products[0].ID)
	assert.Len(t, products, 10)
	assert.Equal(t, 1, *fired)
}

func TestCatalogUpdateUnknownIsSilent(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	fired := counter(bus, events.ProductsChanged)
	catalog := repos.NewCatalogRepo(memstore(t), bus)

	require.NoError(t, catalog.Update(ctx, domain.Product{ID: "nope", Name: "ghost"}))
	assert.Zero(t, *fired)

	p, ok, err := catalog.Get(ctx, "p2")
	require.NoError(t, err)
	require.True(t, ok)
	p.Price = 1.5
	require.NoError(t, catalog.Update(ctx, p))
	assert.Equal(t, 1, *fired)

	p, _, _ = catalog.Get(ctx, "p2")
	assert.Equal(t, 1.5, p.Price)
}

func TestCatalogDeleteAlwaysPublishes(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	fired := counter(bus, events.ProductsChanged)
	catalog := repos.NewCatalogRepo(memstore(t), bus)

	require.NoError(t, catalog.Delete(ctx, "missing"))
	require.NoError(t, catalog.Delete(ctx, "p3"))
	assert.Equal(t, 2, *fired)

	_, ok, err := catalog.Get(ctx, "p3")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddReviewRecomputesRating(t *testing.T) {
	ctx := context.Background()
	catalog := repos.NewCatalogRepo(memstore(t), events.NewBus())
	require.NoError(t, catalog.Update(ctx, domain.Product{ID: "p1", Name: "Chair"}))

	for i, r := range []int{5, 4, 4} {
		rev := domain.Review{ID: string(rune('a' + i)), UserName: "tester", Rating: r, Date: time.Now()}
		require.NoError(t, catalog.AddReview(ctx, "p1", rev))
	}

	p, _, err := catalog.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4.3, p.Rating)
	assert.Equal(t, 3, p.ReviewsCount)
	assert.Equal(t, "c", p.Reviews[0].ID)

	require.NoError(t, catalog.AddReview(ctx, "ghost", domain.Review{Rating: 1}))
}

func TestAverageRating(t *testing.T) {
	cases := []struct {
		ratings []int
		want    float64
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{5, 4}, 4.5},
		{[]int{1, 2, 2}, 1.7},
		{[]int{5, 5, 4}, 4.7},
	}
	for _, tc := range cases {
		var revs []domain.Review
		for _, r := range tc.ratings {
			revs = append(revs, domain.Review{Rating: r})
		}
		assert.Equal(t, tc.want, repos.AverageRating(revs), "ratings %v", tc.ratings)
	}
}

func TestOrderCreateAndListByUser(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	fired := counter(bus, events.OrdersChanged)
	orders := repos.NewOrderRepo(memstore(t), bus)

	_, err := orders.Create(ctx, domain.Order{ID: "ORD-1", UserID: "u-1"})
	require.NoError(t, err)
	_, err = orders.Create(ctx, domain.Order{ID: "ORD-2", UserID: "u-2"})
	require.NoError(t, err)

	all, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ORD-2", all[0].ID)
	assert.Equal(t, 2, *fired)

	mine, err := orders.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ORD-1", mine[0].ID)
}

func TestVendorStatsBucketsByLastCharacter(t *testing.T) {
	ctx := context.Background()
	orders := repos.NewOrderRepo(memstore(t), events.NewBus())

	item := func(vendor string, price float64, qty int) domain.CartItem {
		return domain.CartItem{Product: domain.Product{VendorID: vendor, Price: price}, Quantity: qty}
	}
	// '7' is 55, 55 mod 7 = 6 (Sun); '1' is 49, 49 mod 7 = 0 (Mon).
	_, err := orders.Create(ctx, domain.Order{ID: "ORD-17", Items: []domain.CartItem{item("v1", 10, 2), item("v2", 99, 1)}})
	require.NoError(t, err)
	_, err = orders.Create(ctx, domain.Order{ID: "ORD-21", Items: []domain.CartItem{item("v1", 5, 1)}})
	require.NoError(t, err)
	_, err = orders.Create(ctx, domain.Order{ID: "", Items: []domain.CartItem{item("v1", 1000, 1)}})
	require.NoError(t, err)

	stats, err := orders.VendorStats(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, stats, 7)
	assert.Equal(t, "Mon", stats[0].Name)
	assert.Equal(t, domain.SalesStat{Name: "Sun", Sales: 2, Revenue: 20}, stats[6])
	assert.Equal(t, domain.SalesStat{Name: "Mon", Sales: 1, Revenue: 5}, stats[0])
	for _, s := range stats[1:6] {
		assert.Zero(t, s.Sales)
	}
}

func TestUserUpsertAndList(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	fired := counter(bus, events.UsersChanged)
	users := repos.NewUserRepo(memstore(t), bus)

	u := domain.User{ID: "u-1", Name: "sam", Role: domain.RoleBuyer}
	_, err := users.Upsert(ctx, u)
	require.NoError(t, err)
	u.Name = "Sam"
	_, err = users.Upsert(ctx, u)
	require.NoError(t, err)

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sam", list[0].Name)
	assert.Equal(t, 2, *fired)

	cur, err := users.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "u-1", cur.ID)

	require.NoError(t, users.ClearCurrent(ctx))
	cur, err = users.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestUserListInjectsCurrentUser(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	require.NoError(t, st.Set(ctx, store.KeyCurrentUser, domain.User{ID: "u-9", Role: domain.RoleBuyer}))

	list, err := repos.NewUserRepo(st, events.NewBus()).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u-9", list[0].ID)
}

func TestUserGetFallsBackToDemoVendor(t *testing.T) {
	users := repos.NewUserRepo(memstore(t), events.NewBus())

	u, ok, err := users.Get(context.Background(), "v1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alex Developer", u.Name)
	assert.Equal(t, domain.RoleVendor, u.Role)

	_, ok, err = users.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteVendorCascadesProducts(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	bus := events.NewBus()
	productsFired := counter(bus, events.ProductsChanged)
	usersFired := counter(bus, events.UsersChanged)
	users := repos.NewUserRepo(st, bus)
	catalog := repos.NewCatalogRepo(st, bus)

	_, err := users.Upsert(ctx, domain.User{ID: "v1", Role: domain.RoleVendor})
	require.NoError(t, err)
	_, err = users.Upsert(ctx, domain.User{ID: "u-1", Role: domain.RoleBuyer})
	require.NoError(t, err)
	*usersFired = 0

	require.NoError(t, users.Delete(ctx, "v1"))

	products, err := catalog.List(ctx)
	require.NoError(t, err)
	for _, p := range products {
		assert.NotEqual(t, "v1", p.VendorID)
	}
	assert.Less(t, len(products), 9)
	assert.Equal(t, 1, *productsFired)
	assert.Equal(t, 1, *usersFired)
}

func TestDeleteBuyerLeavesCatalog(t *testing.T) {
	ctx := context.Background()
	st := memstore(t)
	bus := events.NewBus()
	productsFired := counter(bus, events.ProductsChanged)
	users := repos.NewUserRepo(st, bus)

	_, err := users.Upsert(ctx, domain.User{ID: "u-1", Role: domain.RoleBuyer})
	require.NoError(t, err)
	_, err = users.Upsert(ctx, domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, "u-1"))
	require.NoError(t, users.Delete(ctx, "missing"))

	products, err := repos.NewCatalogRepo(st, bus).List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 9)
	assert.Zero(t, *productsFired)
}

func TestResetPassword(t *testing.T) {
	users := repos.NewUserRepo(memstore(t), events.NewBus())

	assert.Equal(t, "123456", users.RequestReset("a@b.c"))
	assert.ErrorIs(t, users.ResetPassword("000000", "pw"), repos.ErrInvalidResetCode)
	assert.NoError(t, users.ResetPassword("123456", "pw"))
}
