package repos

import "intellivend/internal/domain"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?auto=format&fit=crop&w=800&q=80"
}

func price(v float64) *float64 { return &v }

// SeedProducts returns a fresh copy of the built-in catalog. Callers may
// mutate the result.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "p1",
			Name:          "Ergonomic AI Chair",
			Description:   "A futuristic chair that adapts to your posture in real-time using built-in sensors. Designed for 24/7 comfort with breathable mesh.",
			Price:         599.99,
			OriginalPrice: price(799.99),
			Category:      "Furniture",
			SubCategory:   "Chairs",
			ImageURL:      unsplash("photo-1592078615290-033ee584e267"),
			Images: []string{
				unsplash("photo-1592078615290-033ee584e267"),
				unsplash("photo-1505843490538-5133c6c7d0e1"),
				unsplash("photo-1580480055273-228ff5388ef8"),
			},
			VendorID:     "v1",
			VendorName:   "FutureFurnish",
			Rating:       4.8,
			ReviewsCount: 124,
		},
		{
			ID:            "p2",
			Name:          "Pro Noise Cancelling Earbuds",
			Description:   "Experience pure silence with our top-tier active noise cancellation technology and transparency mode. 30-hour battery life.",
			Price:         199.50,
			OriginalPrice: price(249.99),
			Category:      "Electronics",
			SubCategory:   "Audio",
			ImageURL:      unsplash("photo-1590658268037-6bf12165a8df"),
			Images: []string{
				unsplash("photo-1590658268037-6bf12165a8df"),
				unsplash("photo-1572569028738-411a29639581"),
				unsplash("photo-1606220588913-b3aacb4d2f46"),
			},
			VendorID:     "v2",
			VendorName:   "AudioTech",
			Rating:       4.5,
			ReviewsCount: 89,
		},
		{
			ID:          "p3",
			Name:        "Ceramic Matcha Set",
			Description: "Premium handcrafted ceramic set with organic tea leaves harvested from high mountains. Includes whisk, bowl, and spoon.",
			Price:       34.99,
			Category:    "Home & Living",
			SubCategory: "Kitchen",
			ImageURL:    unsplash("photo-1563822249548-9a72b6353cd1"),
			Images: []string{
				unsplash("photo-1563822249548-9a72b6353cd1"),
				unsplash("photo-1582794543139-8ac92a900275"),
			},
			VendorID:     "v3",
			VendorName:   "NatureGood",
			Rating:       4.9,
			ReviewsCount: 210,
		},
		{
			ID:            "p4",
			Name:          "Mechanical Keyboard 60%",
			Description:   "Clicky blue switches with customizable RGB lighting for the ultimate tactile typing experience. Compact design for gamers.",
			Price:         89.99,
			OriginalPrice: price(119.99),
			Category:      "Electronics",
			SubCategory:   "Computers",
			ImageURL:      unsplash("photo-1595225476474-87563907a212"),
			Images: []string{
				unsplash("photo-1595225476474-87563907a212"),
				unsplash("photo-1587829741301-dc798b91a603"),
				unsplash("photo-1618384887929-16ec33fab9ef"),
			},
			VendorID:     "v1",
			VendorName:   "FutureFurnish",
			Rating:       4.6,
			ReviewsCount: 55,
		},
		{
			ID:          "p5",
			Name:        "Smart Hydration Bottle",
			Description: "Tracks your hydration levels via app and glows gently when you need to drink water. Stainless steel construction.",
			Price:       45.00,
			Category:    "Fitness",
			SubCategory: "Equipment",
			ImageURL:    unsplash("photo-1543163521-1bf539c55dd2"),
			Images: []string{
				unsplash("photo-1543163521-1bf539c55dd2"),
				unsplash("photo-1602143407151-01114192008b"),
			},
			VendorID:     "v2",
			VendorName:   "AudioTech",
			Rating:       4.2,
			ReviewsCount: 30,
		},
		{
			ID:            "p6",
			Name:          "Minimalist Desk Lamp",
			Description:   "Adjustable color temperature LED lamp with wireless charging base for your devices. Sleek aluminum finish.",
			Price:         79.00,
			OriginalPrice: price(99.00),
			Category:      "Furniture",
			SubCategory:   "Lighting",
			ImageURL:      unsplash("photo-1565814329452-e1efa11c5b89"),
			Images: []string{
				unsplash("photo-1565814329452-e1efa11c5b89"),
				unsplash("photo-1534073828943-f801091a7d58"),
				unsplash("photo-1507473888900-52e1adad5452"),
			},
			VendorID:     "v1",
			VendorName:   "FutureFurnish",
			Rating:       4.7,
			ReviewsCount: 42,
		},
		{
			ID:          "p7",
			Name:        "Vintage Denim Jacket",
			Description: "Classic oversized denim jacket with distressed details. 100% cotton, perfect for layering in any season.",
			Price:       65.00,
			Category:    "Fashion",
			SubCategory: "Outerwear",
			ImageURL:    unsplash("photo-1551537482-f2075a1d41f2"),
			Images: []string{
				unsplash("photo-1551537482-f2075a1d41f2"),
				unsplash("photo-1576871337632-b9aef4c17ab9"),
				unsplash("photo-1523205565295-f8e91625443b"),
			},
			VendorID:     "v4",
			VendorName:   "UrbanStyle",
			Rating:       4.4,
			ReviewsCount: 67,
		},
		{
			ID:            "p8",
			Name:          "Running Shoes - Velocity X",
			Description:   "Ultra-lightweight running shoes with foam cushioning technology. Breathable upper mesh for maximum comfort.",
			Price:         129.99,
			OriginalPrice: price(180.00),
			Category:      "Fashion",
			SubCategory:   "Shoes",
			ImageURL:      unsplash("photo-1542291026-7eec264c27ff"),
			Images: []string{
				unsplash("photo-1542291026-7eec264c27ff"),
				unsplash("photo-1608231387042-66d1773070a5"),
				unsplash("photo-1560769629-975e13f0c470"),
			},
			VendorID:     "v4",
			VendorName:   "UrbanStyle",
			Rating:       4.8,
			ReviewsCount: 312,
		},
		{
			ID:          "p9",
			Name:        "The Art of Code",
			Description: "A comprehensive guide to software craftsmanship. Hardcover edition with illustrations.",
			Price:       29.99,
			Category:    "Books",
			SubCategory: "Technology",
			ImageURL:    unsplash("photo-1544947950-fa07a98d237f"),
			Images: []string{
				unsplash("photo-1544947950-fa07a98d237f"),
				unsplash("photo-1512820790803-83ca734da794"),
			},
			VendorID:     "v5",
			VendorName:   "BookHaven",
			Rating:       4.9,
			ReviewsCount: 500,
		},
	}
}

// DemoVendor is the built-in vendor account that owns p1, p4 and p6.
func DemoVendor() domain.User {
	age := 28
	return domain.User{
		ID:        "v1",
		Name:      "Alex Developer",
		Email:     "alex.developer@example.com",
		Role:      domain.RoleVendor,
		AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Alex",
		Age:       &age,
		Gender:    "Male",
		Address: &domain.Address{
			Street: "123 Galaxy Way",
			City:   "Tech District",
			State:  "CA",
			Zip:    "94105",
		},
	}
}

type Category struct {
	Name          string   `json:"name"`
	Image         string   `json:"image"`
	SubCategories []string `json:"subCategories"`
}

// Taxonomy is the fixed category tree offered to vendors.
func Taxonomy() []Category {
	return []Category{
		{Name: "Electronics", Image: unsplash("photo-1511707171634-5f897ff02aa9"), SubCategories: []string{"Audio", "Computers", "Cameras", "Accessories", "Gaming"}},
		{Name: "Fashion", Image: unsplash("photo-1483985988355-763728e1935b"), SubCategories: []string{"Men", "Women", "Shoes", "Outerwear", "Accessories"}},
		{Name: "Furniture", Image: unsplash("photo-1556228453-efd6c1ff04f6"), SubCategories: []string{"Chairs", "Tables", "Sofas", "Lighting", "Decor"}},
		{Name: "Home & Living", Image: unsplash("photo-1513694203232-719a280e022f"), SubCategories: []string{"Kitchen", "Bedding", "Storage", "Plants", "Dining"}},
		{Name: "Fitness", Image: unsplash("photo-1534438327276-14e5300c3a48"), SubCategories: []string{"Equipment", "Apparel", "Supplements", "Yoga", "Tracking"}},
		{Name: "Books", Image: unsplash("photo-1524995997946-a1c2e315a42f"), SubCategories: []string{"Technology", "Fiction", "Self-Help", "Design", "Science"}},
	}
}
