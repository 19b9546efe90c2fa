package domain

import "time"

type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// Order holds a frozen copy of the cart; later product edits never touch it.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []CartItem  `json:"items"`
	Total           float64     `json:"total"`
	Date            time.Time   `json:"date"`
	Status          OrderStatus `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}
