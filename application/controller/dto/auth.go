package dto

type MintAdminTokenDTO struct {
	AdminID    string `json:"adminID" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	TTLMinutes int    `json:"ttlMinutes" validate:"omitempty,min=1,max=1440"`
}
