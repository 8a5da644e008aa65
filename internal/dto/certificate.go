package dto

type CertificateResponse struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institution_id"`
	CertificateNo string `json:"certificate_no"`
	IssuedAt      string `json:"issued_at"`
	ExpiresAt     string `json:"expires_at"`
	Status        string `json:"status"`
}
