package domain_test

import (
	"testing"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.SubmissionStatus
		to   domain.SubmissionStatus
		want bool
	}{
		{"draft to submitted", domain.StatusDraft, domain.StatusSubmitted, true},
		{"draft straight to approved", domain.StatusDraft, domain.StatusApproved, false},
		{"submitted to approved", domain.StatusSubmitted, domain.StatusApproved, true},
		{"submitted to flagged", domain.StatusSubmitted, domain.StatusFlagged, true},
		{"submitted to unliquidated", domain.StatusSubmitted, domain.StatusUnliquidated, true},
		{"submitted to returned", domain.StatusSubmitted, domain.StatusReturned, true},
		{"returned back to submitted", domain.StatusReturned, domain.StatusSubmitted, true},
		{"approved is terminal", domain.StatusApproved, domain.StatusSubmitted, false},
		{"flagged is terminal", domain.StatusFlagged, domain.StatusReturned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSubmissionStatus_IsEditable(t *testing.T) {
	assert.True(t, domain.StatusDraft.IsEditable())
	assert.True(t, domain.StatusReturned.IsEditable())
	assert.False(t, domain.StatusSubmitted.IsEditable())
	assert.False(t, domain.StatusApproved.IsEditable())
	assert.False(t, domain.StatusFlagged.IsEditable())
	assert.False(t, domain.StatusUnliquidated.IsEditable())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, domain.IsValidStatus("submitted"))
	assert.False(t, domain.IsValidStatus("pending"))
}
