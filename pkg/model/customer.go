package model

import "cloud.google.com/go/civil"

type Customer struct {
	ID        string      `json:"id,omitempty" validate:"omitempty,mongodb"`
	Name      string      `json:"name" validate:"required,min=1,max=100"`
	Email     string      `json:"email" validate:"required,email,max=254"`
	Phone     string      `json:"phone" validate:"required,e164"`
	CreatedAt *civil.Date `json:"created_at,omitempty"`
}
