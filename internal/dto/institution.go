package dto

type RegisterInstitutionRequest struct {
	Name           string `json:"name" validate:"required"`
	RegistrationNo string `json:"registration_no" validate:"required"`
	Type           string `json:"type" validate:"required,oneof=public private"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	ContactPerson  string `json:"contact_person"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type InstitutionResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RegistrationNo string `json:"registration_no"`
	Type           string `json:"type"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	ContactPerson  string `json:"contact_person"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}
