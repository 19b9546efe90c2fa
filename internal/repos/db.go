package repos

import (
	"context"
	"errors"
	"fmt"
	"log"

	"intellivend/internal/config"
	"intellivend/internal/domain"
	applog "intellivend/internal/log"
	"intellivend/internal/store"
)

// OpenStore connects the configured KV backend and brings the collections
// to a usable state.
func OpenStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	var (
		kv  store.KV
		err error
	)
	switch cfg.StoreDriver {
	case "memory":
		kv = store.NewMemory()
	case "redis":
		kv, err = store.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	case "sqlite", "":
		kv, err = store.OpenSQLite(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	st := store.New(kv, cfg.KeyPrefix, cfg.StoreLatency)
	if err := Bootstrap(ctx, st); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// Bootstrap seeds the catalog when absent and, on every start, forces the
// image fields of seed products still present back to the built-in values.
// Other stored fields are left as they are. A corrupt catalog is reset.
func Bootstrap(ctx context.Context, st *store.Store) error {
	var products []domain.Product
	found, err := st.Get(ctx, store.KeyProducts, &products)

	var decodeErr *store.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		applog.Error(nil, "store.products.corrupt", err, map[string]any{"action": "reset"})
		if err := st.Set(ctx, store.KeyProducts, SeedProducts()); err != nil {
			return err
		}
	case err != nil:
		return err
	case !found:
		log.Println("[seed] inserting demo catalog")
		if err := st.Set(ctx, store.KeyProducts, SeedProducts()); err != nil {
			return err
		}
	default:
		if refreshSeedImages(products) {
			if err := st.Set(ctx, store.KeyProducts, products); err != nil {
				return err
			}
		}
	}

	var orders []domain.Order
	found, err = st.Get(ctx, store.KeyOrders, &orders)
	if err != nil && !errors.As(err, &decodeErr) {
		return err
	}
	if !found {
		return st.Set(ctx, store.KeyOrders, []domain.Order{})
	}
	return nil
}

// refreshSeedImages reports whether any stored product matched a seed id.
func refreshSeedImages(products []domain.Product) bool {
	seed := map[string]domain.Product{}
	for _, p := range SeedProducts() {
		seed[p.ID] = p
	}
	changed := false
	for i := range products {
		fresh, ok := seed[products[i].ID]
		if !ok {
			continue
		}
		products[i].ImageURL = fresh.ImageURL
		products[i].Images = fresh.Images
		changed = true
	}
	return changed
}
