package repos

import (
	"context"
	"unicode/utf8"

	"intellivend/internal/domain"
	"intellivend/internal/events"
	"intellivend/internal/store"
)

// Weekdays labels the vendor sales buckets.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type OrderRepo struct {
	st  *store.Store
	bus *events.Bus
}

func NewOrderRepo(st *store.Store, bus *events.Bus) *OrderRepo {
	return &OrderRepo{st: st, bus: bus}
}

// Create prepends o to the order list. There is no update or delete.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	if err := r.st.Set(ctx, store.KeyOrders, append([]domain.Order{o}, orders...)); err != nil {
		return domain.Order{}, err
	}
	r.bus.Publish(events.OrdersChanged)
	return o, nil
}

// List returns every order, most recent first.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if _, err := r.st.Get(ctx, store.KeyOrders, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Order
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// VendorStats rolls up the vendor's sold quantity and revenue into seven
// buckets labelled Mon..Sun. The bucket is the code point of the order id's
// last character mod 7, not the order date.
func (r *OrderRepo) VendorStats(ctx context.Context, vendorID string) ([]domain.SalesStat, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]domain.SalesStat, len(Weekdays))
	for i, name := range Weekdays {
		stats[i].Name = name
	}
	for _, o := range orders {
		last, _ := utf8.DecodeLastRuneInString(o.ID)
		if last == utf8.RuneError {
			continue
		}
		day := int(last) % 7
		for _, it := range o.Items {
			if it.VendorID != vendorID {
				continue
			}
			stats[day].Sales += it.Quantity
			stats[day].Revenue += it.Price * float64(it.Quantity)
		}
	}
	return stats, nil
}
