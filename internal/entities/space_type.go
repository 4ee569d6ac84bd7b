package entities

import "coworking/internal/db"

type SpaceTypeRequest struct {
	TypeName    string `json:"type_name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (r *SpaceTypeRequest) Model() *db.SpaceType {
	return &db.SpaceType{TypeName: r.TypeName, Description: r.Description}
}

type SpaceTypeUpdate struct {
	TypeName    *string `json:"type_name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

func (u *SpaceTypeUpdate) Apply(st *db.SpaceType) {
	setString(&st.TypeName, u.TypeName)
	setString(&st.Description, u.Description)
}
