package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"intellivend/internal/domain"
	"intellivend/internal/events"
	applog "intellivend/internal/log"
	"intellivend/internal/repos"
)

var (
	ErrSelfDelete  = errors.New("cannot delete yourself")
	ErrUnknownUser = errors.New("user not found")
)

type Overview struct {
	Users    []domain.User    `json:"users"`
	Products []domain.Product `json:"products"`
	Orders   []domain.Order   `json:"orders"`
	Revenue  float64          `json:"totalRevenue"`
	Buyers   int              `json:"buyers"`
	Vendors  int              `json:"vendors"`
	Admins   int              `json:"admins"`
}

// Filter narrows users by name or email and products by name, ignoring case.
func (o Overview) Filter(term string) Overview {
	if term == "" {
		return o
	}
	term = strings.ToLower(term)
	out := o
	out.Users, out.Products = nil, nil
	for _, u := range o.Users {
		if strings.Contains(strings.ToLower(u.Name), term) || strings.Contains(strings.ToLower(u.Email), term) {
			out.Users = append(out.Users, u)
		}
	}
	for _, p := range o.Products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out.Products = append(out.Products, p)
		}
	}
	return out
}

// AdminService backs the admin dashboard. While watched, the overview is
// rebuilt on any users, products or orders signal.
type AdminService struct {
	Users    *repos.UserRepo
	Products *repos.CatalogRepo
	Orders   *repos.OrderRepo
	Bus      *events.Bus

	mu       sync.RWMutex
	cached   Overview
	watching int
}

func NewAdminService(users *repos.UserRepo, products *repos.CatalogRepo, orders *repos.OrderRepo, bus *events.Bus) *AdminService {
	return &AdminService{Users: users, Products: products, Orders: orders, Bus: bus}
}

func (s *AdminService) Watch(ctx context.Context) (stop func(), err error) {
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.watching++
	s.mu.Unlock()

	refresh := func() {
		if err := s.Refresh(context.Background()); err != nil {
			applog.Error(nil, "admin.refresh.fail", err, nil)
		}
	}
	unsubs := []func(){
		s.Bus.Subscribe(events.ProductsChanged, refresh),
		s.Bus.Subscribe(events.OrdersChanged, refresh),
		s.Bus.Subscribe(events.UsersChanged, refresh),
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			for _, u := range unsubs {
				u()
			}
			s.mu.Lock()
			s.watching--
			s.mu.Unlock()
		})
	}, nil
}

func (s *AdminService) Refresh(ctx context.Context) error {
	o, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cached = o
	s.mu.Unlock()
	return nil
}

func (s *AdminService) Overview(ctx context.Context) (Overview, error) {
	s.mu.RLock()
	if s.watching > 0 {
		defer s.mu.RUnlock()
		return s.cached, nil
	}
	s.mu.RUnlock()
	return s.load(ctx)
}

func (s *AdminService) load(ctx context.Context) (Overview, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	products, err := s.Products.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return Overview{}, err
	}

	o := Overview{Users: users, Products: products, Orders: orders}
	revenue := decimal.Zero
	for _, ord := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(ord.Total))
	}
	o.Revenue = revenue.InexactFloat64()
	for _, u := range users {
		switch u.Role {
		case domain.RoleBuyer:
			o.Buyers++
		case domain.RoleVendor:
			o.Vendors++
		case domain.RoleAdmin:
			o.Admins++
		}
	}
	return o, nil
}

// DeleteUser removes id on behalf of actor. A vendor's products go with it.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	if actor != nil && actor.ID == id {
		return ErrSelfDelete
	}
	return s.Users.Delete(ctx, id)
}

// ToggleVerified flips the user's verified badge.
func (s *AdminService) ToggleVerified(ctx context.Context, id string) (domain.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			u.IsVerified = !u.IsVerified
			return s.Users.Upsert(ctx, u)
		}
	}
	return domain.User{}, ErrUnknownUser
}
