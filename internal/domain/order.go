package domain

import "time"

// OrderStatus is the lifecycle state of an order. Values are the Turkish
// labels the dashboard persists and exchanges, not internal identifiers.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Bekliyor"
	OrderStatusOnWay     OrderStatus = "Yolda"
	OrderStatusDelivered OrderStatus = "Teslim Edildi"
	OrderStatusCancelled OrderStatus = "İptal"
)

// IsValid reports whether the status is one of the four known states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOnWay, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Active reports whether an order in this status still counts toward a
// courier's load.
func (s OrderStatus) Active() bool {
	return s == OrderStatusPending || s == OrderStatusOnWay
}

// OrderSource is the channel an order originated from.
type OrderSource string

const (
	SourceWeb         OrderSource = "Web/Müşteri"
	SourcePhone       OrderSource = "Telefon"
	SourceGetir       OrderSource = "Getir"
	SourceTrendyol    OrderSource = "Trendyol"
	SourceYemeksepeti OrderSource = "Yemeksepeti"
	SourcePhoneBot    OrderSource = "telefon-robot"
	SourceWhatsApp    OrderSource = "whatsapp"
)

// KnownSources returns every source channel in reporting order. Source
// breakdowns list all of them, including channels with zero orders.
func KnownSources() []OrderSource {
	return []OrderSource{
		SourceWeb,
		SourcePhone,
		SourceGetir,
		SourceTrendyol,
		SourceYemeksepeti,
		SourcePhoneBot,
		SourceWhatsApp,
	}
}

// PaymentMethod is how the courier collected payment, if at all.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Nakit"
	PaymentPOS          PaymentMethod = "POS"
	PaymentNotCollected PaymentMethod = "Alınmadı"
)

// OrderItem is a single line of an order. ProductName and Price are
// resolved against inventory by the caller at order time and stored
// denormalized; later price changes do not rewrite history.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order is a purchase request. TotalAmount is computed by the caller and
// stored as given; it is not re-validated against the item lines.
// CourierName is a point-in-time copy of the courier's name taken at
// assignment, kept even if the courier is later renamed.
type Order struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Items         []OrderItem   `json:"items"`
	TotalAmount   float64       `json:"totalAmount"`
	CourierID     string        `json:"courierId"`
	CourierName   string        `json:"courierName"`
	Status        OrderStatus   `json:"status"`
	Source        OrderSource   `json:"source"`
	Note          string        `json:"note,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Neighborhood extracts the delivery neighborhood from the formatted
// address: the second comma-separated segment, or "Merkez" when the
// address has no second segment.
func (o Order) Neighborhood() string {
	return NeighborhoodFromAddress(o.Address)
}
