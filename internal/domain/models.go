package domain

import "time"

type Review struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Rating   int       `json:"rating"` // 1..5
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Category      string   `json:"category"`
	SubCategory   string   `json:"subCategory,omitempty"`
	ImageURL      string   `json:"imageUrl"`
	Images        []string `json:"images,omitempty"`
	VendorID      string   `json:"vendorId"`
	VendorName    string   `json:"vendorName"`
	Rating        float64  `json:"rating"`
	ReviewsCount  int      `json:"reviewsCount"`
	Reviews       []Review `json:"reviews"`
}

// OnDeal reports whether the product is discounted against its original price.
func (p Product) OnDeal() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// CartItem is a product plus the quantity the buyer wants. It only lives in
// session state until checkout freezes it into an Order.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

type SalesStat struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type ChatRole string

const (
	ChatUser  ChatRole = "user"
	ChatModel ChatRole = "model"
)

type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
