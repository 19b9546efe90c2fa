package repos

import (
	"context"

	"github.com/shopspring/decimal"

	"intellivend/internal/domain"
	"intellivend/internal/events"
	"intellivend/internal/store"
)

type CatalogRepo struct {
	st  *store.Store
	bus *events.Bus
}

func NewCatalogRepo(st *store.Store, bus *events.Bus) *CatalogRepo {
	return &CatalogRepo{st: st, bus: bus}
}

// List returns the whole catalog in stored order.
func (r *CatalogRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if _, err := r.st.Get(ctx, store.KeyProducts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogRepo) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	products, err := r.List(ctx)
	if err != nil {
		return domain.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

// Add puts p in front of the catalog.
func (r *CatalogRepo) Add(ctx context.Context, p domain.Product) (domain.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	if err := r.st.Set(ctx, store.KeyProducts, append([]domain.Product{p}, products...)); err != nil {
		return domain.Product{}, err
	}
	r.bus.Publish(events.ProductsChanged)
	return p, nil
}

// Update replaces the product with the same id. Unknown ids are ignored
// without writing or publishing.
func (r *CatalogRepo) Update(ctx context.Context, p domain.Product) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID != p.ID {
			continue
		}
		products[i] = p
		if err := r.st.Set(ctx, store.KeyProducts, products); err != nil {
			return err
		}
		r.bus.Publish(events.ProductsChanged)
		return nil
	}
	return nil
}

// Delete removes id from the catalog; it writes and publishes even when
// nothing matched.
func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if err := r.st.Set(ctx, store.KeyProducts, kept); err != nil {
		return err
	}
	r.bus.Publish(events.ProductsChanged)
	return nil
}

// AddReview puts rev first in the product's review list and recomputes the
// aggregate rating. Unknown products are ignored.
func (r *CatalogRepo) AddReview(ctx context.Context, productID string, rev domain.Review) error {
	p, ok, err := r.Get(ctx, productID)
	if err != nil || !ok {
		return err
	}
	p.Reviews = append([]domain.Review{rev}, p.Reviews...)
	p.Rating = AverageRating(p.Reviews)
	p.ReviewsCount = len(p.Reviews)
	return r.Update(ctx, p)
}

// AverageRating is the mean review rating rounded to one decimal place.
func AverageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, rv := range reviews {
		total += rv.Rating
	}
	mean := decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(len(reviews))))
	return mean.Round(1).InexactFloat64()
}
