package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// CreatePolicyRequest defines the structure for creating a new policy.
type CreatePolicyRequest struct {
	Category            domain.ExpenseCategory `json:"category" binding:"required,oneof=FOOD ACCOMMODATION TRANSPORT FUEL PARKING TOLL OTHER"`
	ReceiptRequiredOver *decimal.Decimal       `json:"receiptRequiredOver,omitempty"`
	DailyLimit          *decimal.Decimal       `json:"dailyLimit,omitempty"`
	KmRate              *decimal.Decimal       `json:"kmRate,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
}

// UpdatePolicyRequest defines the structure for updating a policy.
type UpdatePolicyRequest struct {
	ReceiptRequiredOver *decimal.Decimal `json:"receiptRequiredOver,omitempty"`
	DailyLimit          *decimal.Decimal `json:"dailyLimit,omitempty"`
	KmRate              *decimal.Decimal `json:"kmRate,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
}

// PolicyResponse defines the structure for API responses containing policy details.
type PolicyResponse struct {
	PolicyID            string                 `json:"policyID"`
	TenantID            string                 `json:"tenantID"`
	Category            domain.ExpenseCategory `json:"category"`
	ReceiptRequiredOver *decimal.Decimal       `json:"receiptRequiredOver,omitempty"`
	DailyLimit          *decimal.Decimal       `json:"dailyLimit,omitempty"`
	KmRate              *decimal.Decimal       `json:"kmRate,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
	IsActive            bool                   `json:"isActive"`
	CreatedAt           time.Time              `json:"createdAt"`
	LastUpdated         time.Time              `json:"lastUpdatedAt"`
}

// ToPolicyResponse converts a domain.Policy to PolicyResponse DTO
func ToPolicyResponse(p *domain.Policy) PolicyResponse {
	return PolicyResponse{
		PolicyID:            p.PolicyID,
		TenantID:            p.TenantID,
		Category:            p.Category,
		ReceiptRequiredOver: p.ReceiptRequiredOver,
		DailyLimit:          p.DailyLimit,
		KmRate:              p.KmRate,
		Notes:               p.Notes,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		LastUpdated:         p.LastUpdatedAt,
	}
}

// ToListPolicyResponse converts a slice of domain policies to DTOs.
func ToListPolicyResponse(policies []domain.Policy) []PolicyResponse {
	out := make([]PolicyResponse, len(policies))
	for i := range policies {
		out[i] = ToPolicyResponse(&policies[i])
	}
	return out
}
