package dto

type InitiatePaymentRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

type PaymentResponse struct {
	ID          string `json:"id"`
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type PaymentCallbackRequest struct {
	Reference string `json:"reference" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=completed failed"`
}
