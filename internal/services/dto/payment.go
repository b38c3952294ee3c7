package dto

import "time"

type InitiatePaymentRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// VerifyPaymentQuery - recruiterId или userId должен совпадать с вызывающим, кроме admin
type VerifyPaymentQuery struct {
	Reference   string `form:"reference" validate:"required"`
	RecruiterID string `form:"recruiterId"`
	UserID      string `form:"userId"`
}

type VerifyReferenceRequest struct {
	Reference string `json:"reference" validate:"required"`
}

type PaymentVerifiedResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Reference  string     `json:"reference"`
	AmountPaid float64    `json:"amountPaid"`
	VerifiedAt *time.Time `json:"paymentVerifiedAt,omitempty"`
}

type RecruiterPaymentStatusResponse struct {
	PaymentStatus string `json:"paymentStatus"`
}

type UserPaymentStatusResponse struct {
	HasPaid       bool   `json:"hasPaid"`
	PaymentStatus string `json:"paymentStatus"`
}

// InitializePaymentRequest - email берется из аккаунта вызывающего
type InitializePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
