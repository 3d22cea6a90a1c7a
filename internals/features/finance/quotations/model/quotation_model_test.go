package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from QuotationStatus
		to   QuotationStatus
		want bool
	}{
		{"draft ke sent", QuotationStatusDraft, QuotationStatusSent, true},
		{"sent ke in review", QuotationStatusSent, QuotationStatusInReview, true},
		{"in review ke accepted", QuotationStatusInReview, QuotationStatusAcceptedByStudent, true},
		{"accepted ke agreed", QuotationStatusAcceptedByStudent, QuotationStatusAgreed, true},

		// skip maju diperbolehkan, mundur tidak
		{"draft langsung ke in review", QuotationStatusDraft, QuotationStatusInReview, true},
		{"sent langsung ke agreed", QuotationStatusSent, QuotationStatusAgreed, true},
		{"mundur sent ke draft", QuotationStatusSent, QuotationStatusDraft, false},
		{"mundur accepted ke sent", QuotationStatusAcceptedByStudent, QuotationStatusSent, false},

		// Rejected bisa dari status aktif mana pun
		{"draft ke rejected", QuotationStatusDraft, QuotationStatusRejected, true},
		{"in review ke rejected", QuotationStatusInReview, QuotationStatusRejected, true},
		{"accepted ke rejected", QuotationStatusAcceptedByStudent, QuotationStatusRejected, true},

		// terminal tidak bisa keluar
		{"agreed ke rejected", QuotationStatusAgreed, QuotationStatusRejected, false},
		{"agreed ke sent", QuotationStatusAgreed, QuotationStatusSent, false},
		{"rejected ke draft", QuotationStatusRejected, QuotationStatusDraft, false},
		{"rejected ke agreed", QuotationStatusRejected, QuotationStatusAgreed, false},

		// no-op & status asing
		{"sent ke sent", QuotationStatusSent, QuotationStatusSent, false},
		{"status tidak dikenal", QuotationStatus("Archived"), QuotationStatusSent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, QuotationStatusAgreed.IsTerminal())
	assert.True(t, QuotationStatusRejected.IsTerminal())
	assert.False(t, QuotationStatusDraft.IsTerminal())
	assert.False(t, QuotationStatusAcceptedByStudent.IsTerminal())
}

func TestTotalPaise(t *testing.T) {
	items := []LineItem{
		{Description: "Visa counselling", PricePaise: 5_000_00},
		{Description: "University shortlisting", PricePaise: 12_500_00},
		{Description: "Document review", PricePaise: 0},
	}
	assert.Equal(t, int64(17_500_00), TotalPaise(items))
	assert.Equal(t, int64(0), TotalPaise(nil))
}

func TestResolvedThreshold(t *testing.T) {
	full := UnlockStage{Kind: ThresholdFull, ThresholdAmountPaise: 999}
	assert.Equal(t, int64(10_000_00), full.ResolvedThreshold(10_000_00),
		"Full harus ikut harga item saat ini, bukan nominal tersimpan")

	custom := UnlockStage{Kind: ThresholdCustom, ThresholdAmountPaise: 2_500_00}
	assert.Equal(t, int64(2_500_00), custom.ResolvedThreshold(10_000_00))
	assert.Equal(t, int64(2_500_00), custom.ResolvedThreshold(1_000_00),
		"Custom tidak boleh ikut berubah saat harga item berubah")
}
