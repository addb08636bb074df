package models

import "tariff-engine/internal/billing"

// CalculateResponse represents the response from a cost calculation.
type CalculateResponse struct {
	Status string              `json:"status"`
	Cost   billing.Cost        `json:"cost"`
	Ledger []billing.LedgerRow `json:"ledger,omitempty"`
}

// TariffInfo describes one example tariff document available to the API.
type TariffInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code,omitempty"`
	Service string `json:"service,omitempty"`
	File    string `json:"file"`
}

// ErrorResponse is the error body shape for all API errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
