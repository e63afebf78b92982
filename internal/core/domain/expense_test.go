package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

func TestExpense_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.ExpenseStatus
		to   domain.ExpenseStatus
		want bool
	}{
		{name: "draft to submitted", from: domain.ExpenseDraft, to: domain.ExpenseSubmitted, want: true},
		{name: "draft straight to approved", from: domain.ExpenseDraft, to: domain.ExpenseApproved, want: false},
		{name: "submitted to approved", from: domain.ExpenseSubmitted, to: domain.ExpenseApproved, want: true},
		{name: "submitted to rejected", from: domain.ExpenseSubmitted, to: domain.ExpenseRejected, want: true},
		{name: "submitted to adjusted", from: domain.ExpenseSubmitted, to: domain.ExpenseAdjusted, want: true},
		{name: "submitted back to draft", from: domain.ExpenseSubmitted, to: domain.ExpenseDraft, want: false},
		{name: "approved to reimbursed", from: domain.ExpenseApproved, to: domain.ExpenseReimbursed, want: true},
		{name: "adjusted to reimbursed", from: domain.ExpenseAdjusted, to: domain.ExpenseReimbursed, want: true},
		{name: "rejected is terminal", from: domain.ExpenseRejected, to: domain.ExpenseSubmitted, want: false},
		{name: "reimbursed is terminal", from: domain.ExpenseReimbursed, to: domain.ExpenseApproved, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.Expense{Status: tt.from}
			assert.Equal(t, tt.want, e.CanTransitionTo(tt.to))
		})
	}
}

func TestTrip_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.TripStatus
		to   domain.TripStatus
		want bool
	}{
		{name: "draft to pending approval", from: domain.TripDraft, to: domain.TripPendingApproval, want: true},
		{name: "draft straight to approved", from: domain.TripDraft, to: domain.TripApproved, want: false},
		{name: "pending to approved", from: domain.TripPendingApproval, to: domain.TripApproved, want: true},
		{name: "pending to rejected", from: domain.TripPendingApproval, to: domain.TripRejected, want: true},
		{name: "approved to in progress", from: domain.TripApproved, to: domain.TripInProgress, want: true},
		{name: "in progress to completed", from: domain.TripInProgress, to: domain.TripCompleted, want: true},
		{name: "completed to archived", from: domain.TripCompleted, to: domain.TripArchived, want: true},
		{name: "rejected to archived", from: domain.TripRejected, to: domain.TripArchived, want: true},
		{name: "in progress to archived", from: domain.TripInProgress, to: domain.TripArchived, want: false},
		{name: "archived is terminal", from: domain.TripArchived, to: domain.TripDraft, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := domain.Trip{Status: tt.from}
			assert.Equal(t, tt.want, trip.CanTransitionTo(tt.to))
		})
	}
}

func TestAdvance_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.AdvanceStatus
		to   domain.AdvanceStatus
		want bool
	}{
		{name: "draft to submitted", from: domain.AdvanceDraft, to: domain.AdvanceSubmitted, want: true},
		{name: "submitted to approved", from: domain.AdvanceSubmitted, to: domain.AdvanceApproved, want: true},
		{name: "submitted to rejected", from: domain.AdvanceSubmitted, to: domain.AdvanceRejected, want: true},
		{name: "approved to paid", from: domain.AdvanceApproved, to: domain.AdvancePaid, want: true},
		{name: "draft straight to paid", from: domain.AdvanceDraft, to: domain.AdvancePaid, want: false},
		{name: "rejected is terminal", from: domain.AdvanceRejected, to: domain.AdvanceSubmitted, want: false},
		{name: "paid is terminal", from: domain.AdvancePaid, to: domain.AdvanceApproved, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Advance{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}
