package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		paid  int64
		want  LedgerStatus
	}{
		{"belum bayar", 10_000_00, 0, LedgerStatusOutstanding},
		{"paid negatif tetap outstanding", 10_000_00, -5, LedgerStatusOutstanding},
		{"partial", 10_000_00, 1, LedgerStatusPartial},
		{"hampir lunas", 10_000_00, 9_999_99, LedgerStatusPartial},
		{"pas lunas", 10_000_00, 10_000_00, LedgerStatusPaid},
		{"overpaid tetap Paid", 10_000_00, 12_000_00, LedgerStatusPaid},
		{"total nol langsung lunas", 0, 1, LedgerStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.total, tt.paid))
		})
	}
}

// paid + remaining - overpaid == total harus selalu berlaku.
func TestRemainingOverpaidBalance(t *testing.T) {
	cases := []struct{ total, paid int64 }{
		{10_000_00, 0},
		{10_000_00, 4_000_00},
		{10_000_00, 10_000_00},
		{10_000_00, 13_500_00},
		{0, 0},
	}
	for _, c := range cases {
		remaining := RemainingPaise(c.total, c.paid)
		overpaid := OverpaidPaise(c.total, c.paid)
		assert.GreaterOrEqual(t, remaining, int64(0))
		assert.GreaterOrEqual(t, overpaid, int64(0))
		assert.Equal(t, c.total, c.paid+remaining-overpaid,
			"total=%d paid=%d", c.total, c.paid)
	}
}

// Kelebihan bayar tidak dibuang: remaining 0, overpaid terlihat.
func TestOverpaymentVisible(t *testing.T) {
	assert.Equal(t, int64(0), RemainingPaise(10_000_00, 12_000_00))
	assert.Equal(t, int64(2_000_00), OverpaidPaise(10_000_00, 12_000_00))
	assert.Equal(t, int64(0), OverpaidPaise(10_000_00, 10_000_00))
}

func TestClampPaid(t *testing.T) {
	assert.Equal(t, int64(0), ClampPaid(-250))
	assert.Equal(t, int64(0), ClampPaid(0))
	assert.Equal(t, int64(7), ClampPaid(7))
}

func TestLedgerEntryIsOpen(t *testing.T) {
	assert.True(t, (&LedgerEntry{LedgerEntryStatus: LedgerStatusOutstanding}).IsOpen())
	assert.True(t, (&LedgerEntry{LedgerEntryStatus: LedgerStatusPartial}).IsOpen())
	assert.False(t, (&LedgerEntry{LedgerEntryStatus: LedgerStatusPaid}).IsOpen())
	assert.False(t, (&LedgerEntry{LedgerEntryStatus: LedgerStatusVoided}).IsOpen())
}
