package entities

import "coworking/internal/db"

type ServiceRequest struct {
	ServiceName string   `json:"service_name" validate:"required,max=100"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

func (r *ServiceRequest) Model() *db.AdditionalService {
	s := &db.AdditionalService{ServiceName: r.ServiceName, Description: r.Description}
	setFloat(&s.Price, r.Price)
	return s
}

type ServiceUpdate struct {
	ServiceName *string  `json:"service_name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (u *ServiceUpdate) Apply(s *db.AdditionalService) {
	setString(&s.ServiceName, u.ServiceName)
	setString(&s.Description, u.Description)
	setFloat(&s.Price, u.Price)
}
