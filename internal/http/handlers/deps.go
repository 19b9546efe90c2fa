package handlers

import (
	"context"

	"intellivend/internal/assistant"
	"intellivend/internal/config"
	"intellivend/internal/events"
	"intellivend/internal/repos"
	"intellivend/internal/services"
	"intellivend/internal/store"
)

type Deps struct {
	AuthSvc *services.AuthService

	AuthHandler      *AuthHandler
	SearchHandler    *SearchHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	CartHandler      *CartHandler
	WishlistHandler  *WishlistHandler
	OrderHandler     *OrderHandler
	InventoryHandler *InventoryHandler
	AdminHandler     *AdminHandler
	AssistantHandler *AssistantHandler

	stops []func()
}

// NewDeps wires repositories and services over st and starts the cached
// catalog and admin views. Call Close to stop them.
func NewDeps(ctx context.Context, st *store.Store, bus *events.Bus, cfg config.Config, ai *assistant.Service) (*Deps, error) {
	userRepo := repos.NewUserRepo(st, bus)
	catalogRepo := repos.NewCatalogRepo(st, bus)
	orderRepo := repos.NewOrderRepo(st, bus)

	authSvc := services.NewAuthService(userRepo, cfg.ResetDelay)
	catalogSvc := services.NewCatalogService(catalogRepo, userRepo, bus)
	cartSvc := services.NewCartService()
	wishSvc := services.NewWishlistService()
	orderSvc := services.NewOrderService(cartSvc, orderRepo, cfg.PaymentDelay)
	adminSvc := services.NewAdminService(userRepo, catalogRepo, orderRepo, bus)

	d := &Deps{
		AuthSvc:          authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc, Cart: cartSvc, Wish: wishSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc, Catalog: catalogSvc},
		WishlistHandler:  &WishlistHandler{Wish: wishSvc, Catalog: catalogSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		InventoryHandler: &InventoryHandler{Catalog: catalogSvc, Orders: orderRepo, AI: ai},
		AdminHandler:     &AdminHandler{Admin: adminSvc, Catalog: catalogSvc},
		AssistantHandler: &AssistantHandler{AI: ai, Catalog: catalogSvc},
	}

	for _, watch := range []func(context.Context) (func(), error){catalogSvc.Watch, adminSvc.Watch} {
		stop, err := watch(ctx)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.stops = append(d.stops, stop)
	}
	return d, nil
}

func (d *Deps) Close() {
	for _, stop := range d.stops {
		stop()
	}
	d.stops = nil
}
