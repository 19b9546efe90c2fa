package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"intellivend/internal/domain"
	"intellivend/internal/pricing"
	"intellivend/internal/repos"
)

var ErrCartEmpty = errors.New("cart empty")

// PaymentMethod is recorded on every order; the payment step is simulated.
const PaymentMethod = "Card ending 0000"

type OrderService struct {
	Carts        *CartService
	Orders       *repos.OrderRepo
	PaymentDelay time.Duration
	Now          func() time.Time
}

func NewOrderService(carts *CartService, orders *repos.OrderRepo, paymentDelay time.Duration) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, PaymentDelay: paymentDelay, Now: time.Now}
}

// Place turns the session's cart into an order for u and empties the cart.
func (s *OrderService) Place(ctx context.Context, sid string, u *domain.User) (domain.Order, error) {
	if u == nil {
		return domain.Order{}, ErrNotSignedIn
	}
	items := s.Carts.Items(sid)
	if len(items) == 0 {
		return domain.Order{}, ErrCartEmpty
	}
	if err := sleep(ctx, s.PaymentDelay); err != nil {
		return domain.Order{}, err
	}

	now := s.Now()
	o := domain.Order{
		ID:            fmt.Sprintf("ORD-%d", now.UnixMilli()),
		UserID:        u.ID,
		Items:         items,
		Total:         pricing.GrandTotal(items),
		Date:          now,
		Status:        domain.OrderProcessing,
		PaymentMethod: PaymentMethod,
	}
	if u.Address != nil {
		o.ShippingAddress = *u.Address
	}
	created, err := s.Orders.Create(ctx, o)
	if err != nil {
		return domain.Order{}, err
	}
	s.Carts.Clear(sid)
	return created, nil
}

func (s *OrderService) History(ctx context.Context, u *domain.User) ([]domain.Order, error) {
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return s.Orders.ListByUser(ctx, u.ID)
}
