package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "lyceum_backend/internals/features/finance/ledger/model"
)

func TestSummaryOf(t *testing.T) {
	entries := []model.LedgerEntry{
		{LedgerEntryTotalPaise: 10_000_00, LedgerEntryPaidPaise: 0, LedgerEntryStatus: model.LedgerStatusOutstanding},
		{LedgerEntryTotalPaise: 8_000_00, LedgerEntryPaidPaise: 3_000_00, LedgerEntryStatus: model.LedgerStatusPartial},
		{LedgerEntryTotalPaise: 5_000_00, LedgerEntryPaidPaise: 6_000_00, LedgerEntryStatus: model.LedgerStatusPaid},
		// voided tidak boleh ikut agregat apa pun
		{LedgerEntryTotalPaise: 99_000_00, LedgerEntryPaidPaise: 99_000_00, LedgerEntryStatus: model.LedgerStatusVoided},
	}

	s := SummaryOf(entries)

	assert.Equal(t, int64(3), s.EntryCount)
	assert.Equal(t, int64(23_000_00), s.TotalPaise)
	assert.Equal(t, int64(9_000_00), s.CollectedPaise)
	// outstanding hanya dari entry terbuka: 10k + 5k
	assert.Equal(t, int64(15_000_00), s.OutstandingPaise)
	assert.Equal(t, int64(1_000_00), s.OverpaidPaise)
}

func TestSummaryOfEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, SummaryOf(nil))
}

func TestSummaryOfAllVoided(t *testing.T) {
	entries := []model.LedgerEntry{
		{LedgerEntryTotalPaise: 10_000_00, LedgerEntryStatus: model.LedgerStatusVoided},
	}
	assert.Equal(t, Summary{}, SummaryOf(entries))
}
