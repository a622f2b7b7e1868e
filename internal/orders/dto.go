package orders

import (
	"fmt"
	"strings"

	"github.com/sudepo/sudepo/internal/customers"
	"github.com/sudepo/sudepo/internal/domain"
)

// OrderItemRequest is one resolved order line. Product name and price are
// resolved against inventory by the form layer before submission.
type OrderItemRequest struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest covers both the self-checkout and manual entry paths.
// TotalAmount is the caller's computation; the service stores it as given.
type CreateOrderRequest struct {
	CustomerName string             `json:"customerName" validate:"required,max=120"`
	Phone        string             `json:"phone" validate:"required,max=32"`
	District     string             `json:"district" validate:"max=80"`
	Neighborhood string             `json:"neighborhood" validate:"max=120"`
	Street       string             `json:"street" validate:"max=200"`
	BuildingNo   string             `json:"buildingNo" validate:"max=20"`
	ApartmentNo  string             `json:"apartmentNo" validate:"max=20"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount  float64            `json:"totalAmount" validate:"gte=0"`
	CourierID    string             `json:"courierId"`
	Source       string             `json:"source" validate:"omitempty,oneof=Web/Müşteri Telefon Getir Trendyol Yemeksepeti telefon-robot whatsapp"`
	Note         string             `json:"note" validate:"max=500"`
}

// UpdateStatusRequest moves an order to any of the four states.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Bekliyor Yolda 'Teslim Edildi' İptal"`
}

// ReassignRequest changes the assigned courier; empty unassigns.
type ReassignRequest struct {
	CourierID string `json:"courierId"`
}

// SetPaymentRequest records the collection method.
type SetPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=Nakit POS Alınmadı"`
}

// BuildAddress composes the single formatted address string the order
// carries. The neighborhood lands in the second comma segment, which is
// where reporting reads it back from.
func BuildAddress(district, neighborhood, street, buildingNo, apartmentNo string) string {
	detail := strings.TrimSpace(street)
	if buildingNo != "" {
		detail = strings.TrimSpace(detail + " No:" + buildingNo)
	}
	if apartmentNo != "" {
		detail = strings.TrimSpace(detail + " Daire:" + apartmentNo)
	}
	return fmt.Sprintf("%s, %s, %s", strings.TrimSpace(district), strings.TrimSpace(neighborhood), detail)
}

func (r CreateOrderRequest) toDraft() (domain.Order, customers.Draft) {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	order := domain.Order{
		Address:     BuildAddress(r.District, r.Neighborhood, r.Street, r.BuildingNo, r.ApartmentNo),
		Items:       items,
		TotalAmount: r.TotalAmount,
		CourierID:   r.CourierID,
		Source:      domain.OrderSource(r.Source),
		Note:        r.Note,
	}

	draft := customers.Draft{
		Phone:        r.Phone,
		Name:         r.CustomerName,
		District:     r.District,
		Neighborhood: r.Neighborhood,
		Street:       r.Street,
		BuildingNo:   r.BuildingNo,
		ApartmentNo:  r.ApartmentNo,
		Note:         r.Note,
	}
	return order, draft
}
