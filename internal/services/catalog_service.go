package services

import (
	"cmp"
	"context"
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"intellivend/internal/domain"
	"intellivend/internal/events"
	applog "intellivend/internal/log"
	"intellivend/internal/repos"
)

var (
	ErrUnknownProduct = errors.New("product not found")
	ErrNotOwner       = errors.New("product belongs to another vendor")
)

// Sort keys accepted by Browse. Anything else keeps catalog order.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

type Query struct {
	Search   string
	Category string
	Sort     string
	Deals    bool
}

type Storefront struct {
	Vendor   domain.User      `json:"vendor"`
	Products []domain.Product `json:"products"`
}

// ProductForm is what a vendor submits to list or edit a product.
type ProductForm struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Category      string   `json:"category"`
	SubCategory   string   `json:"subCategory"`
	Images        []string `json:"images"`
}

// CatalogService is the storefront's view of the catalog.
type CatalogService struct {
	Products *repos.CatalogRepo
	Users    *repos.UserRepo
	Bus      *events.Bus
	Now      func() time.Time

	mu       sync.RWMutex
	cache    []domain.Product
	watching int
}

func NewCatalogService(products *repos.CatalogRepo, users *repos.UserRepo, bus *events.Bus) *CatalogService {
	return &CatalogService{Products: products, Users: users, Bus: bus, Now: time.Now}
}

// Watch loads the catalog and keeps the cached copy in sync until stop is
// called. Without an active watch every read goes to the repository.
func (s *CatalogService) Watch(ctx context.Context) (stop func(), err error) {
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.watching++
	s.mu.Unlock()
	unsub := s.Bus.Subscribe(events.ProductsChanged, func() {
		if err := s.Refresh(context.Background()); err != nil {
			applog.Error(nil, "catalog.refresh.fail", err, nil)
		}
	})
	var once sync.Once
	return func() {
		once.Do(func() {
			unsub()
			s.mu.Lock()
			s.watching--
			s.mu.Unlock()
		})
	}, nil
}

func (s *CatalogService) Refresh(ctx context.Context) error {
	products, err := s.Products.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cache = products
	s.mu.Unlock()
	return nil
}

// All returns a copy of the catalog.
func (s *CatalogService) All(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	if s.watching > 0 {
		defer s.mu.RUnlock()
		return slices.Clone(s.cache), nil
	}
	s.mu.RUnlock()
	return s.Products.List(ctx)
}

func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	products, err := s.All(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrUnknownProduct
}

// Browse filters by deals, search text and category, then sorts. Search
// matches name or category, ignoring case.
func (s *CatalogService) Browse(ctx context.Context, q Query) ([]domain.Product, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q.Search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q.Deals && !p.OnDeal() {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), needle) && !strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	}
	return out, nil
}

// Categories lists the distinct categories in first-seen order.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (s *CatalogService) Taxonomy() []repos.Category { return repos.Taxonomy() }

func (s *CatalogService) VendorProducts(ctx context.Context, vendorID string) ([]domain.Product, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	for _, p := range products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Storefront reports false when the vendor is unknown.
func (s *CatalogService) Storefront(ctx context.Context, vendorID string) (Storefront, bool, error) {
	vendor, ok, err := s.Users.Get(ctx, vendorID)
	if err != nil || !ok {
		return Storefront{}, false, err
	}
	products, err := s.VendorProducts(ctx, vendorID)
	if err != nil {
		return Storefront{}, false, err
	}
	return Storefront{Vendor: vendor, Products: products}, true, nil
}

func (s *CatalogService) AddReview(ctx context.Context, productID string, u *domain.User, rating int, comment string) (domain.Review, error) {
	if u == nil {
		return domain.Review{}, ErrNotSignedIn
	}
	if _, err := s.Product(ctx, productID); err != nil {
		return domain.Review{}, err
	}
	rev := domain.Review{
		ID:       uuid.NewString(),
		UserID:   u.ID,
		UserName: u.Name,
		Rating:   rating,
		Comment:  comment,
		Date:     s.Now(),
	}
	return rev, s.Products.AddReview(ctx, productID, rev)
}

// SaveVendorProduct lists a new product when editingID is empty and edits
// the vendor's existing product otherwise. Admins may edit any product.
func (s *CatalogService) SaveVendorProduct(ctx context.Context, vendor *domain.User, editingID string, f ProductForm) (domain.Product, error) {
	if vendor == nil {
		return domain.Product{}, ErrNotSignedIn
	}
	images := f.Images
	if len(images) == 0 {
		images = []string{PlaceholderImage(f.Name)}
	}
	category := f.Category
	if category == "" {
		category = "General"
	}
	var original *float64
	if f.OriginalPrice != 0 {
		v := f.OriginalPrice
		original = &v
	}

	if editingID != "" {
		p, err := s.owned(ctx, vendor, editingID)
		if err != nil {
			return domain.Product{}, err
		}
		p.Name, p.Description, p.Price, p.OriginalPrice = f.Name, f.Description, f.Price, original
		p.Category, p.SubCategory = category, f.SubCategory
		p.ImageURL, p.Images = images[0], images
		return p, s.Products.Update(ctx, p)
	}

	p := domain.Product{
		ID:            "p-" + strconv.FormatInt(s.Now().UnixMilli(), 10),
		Name:          f.Name,
		Description:   f.Description,
		Price:         f.Price,
		OriginalPrice: original,
		Category:      category,
		SubCategory:   f.SubCategory,
		ImageURL:      images[0],
		Images:        images,
		VendorID:      vendor.ID,
		VendorName:    vendor.Name,
		Reviews:       []domain.Review{},
	}
	return s.Products.Add(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil {
		return ErrNotSignedIn
	}
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.Products.Delete(ctx, id)
}

func (s *CatalogService) owned(ctx context.Context, actor *domain.User, id string) (domain.Product, error) {
	p, ok, err := s.Products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, ErrUnknownProduct
	}
	if actor.Role != domain.RoleAdmin && p.VendorID != actor.ID {
		return domain.Product{}, ErrNotOwner
	}
	return p, nil
}

// PlaceholderImage is the generated image used when a vendor uploads none.
func PlaceholderImage(name string) string {
	return "https://image.pollinations.ai/prompt/" + url.PathEscape(name) + "?nologo=true"
}
