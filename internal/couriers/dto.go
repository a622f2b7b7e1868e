package couriers

import "github.com/sudepo/sudepo/internal/domain"

// CreateCourierRequest registers a new delivery agent.
type CreateCourierRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"required,max=32"`
	ServiceRegion string `json:"serviceRegion" validate:"max=250"`
	Status        string `json:"status" validate:"omitempty,oneof=active busy offline"`
}

// UpdateCourierRequest overwrites a courier's editable fields.
type UpdateCourierRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	Phone          string `json:"phone" validate:"required,max=32"`
	ServiceRegion  string `json:"serviceRegion" validate:"max=250"`
	Status         string `json:"status" validate:"required,oneof=active busy offline"`
	FullInventory  int    `json:"fullInventory" validate:"gte=0"`
	EmptyInventory int    `json:"emptyInventory" validate:"gte=0"`
}

// SetStatusRequest changes only availability.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active busy offline"`
}

// ReportInventoryRequest records carried stock counts.
type ReportInventoryRequest struct {
	FullInventory  int `json:"fullInventory" validate:"gte=0"`
	EmptyInventory int `json:"emptyInventory" validate:"gte=0"`
}

func (r CreateCourierRequest) toDomain() domain.Courier {
	return domain.Courier{
		Name:          r.Name,
		Phone:         r.Phone,
		ServiceRegion: r.ServiceRegion,
		Status:        domain.CourierStatus(r.Status),
	}
}

func (r UpdateCourierRequest) toDomain() domain.Courier {
	return domain.Courier{
		Name:           r.Name,
		Phone:          r.Phone,
		ServiceRegion:  r.ServiceRegion,
		Status:         domain.CourierStatus(r.Status),
		FullInventory:  r.FullInventory,
		EmptyInventory: r.EmptyInventory,
	}
}
