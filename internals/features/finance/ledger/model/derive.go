// file: internals/features/finance/ledger/model/derive.go
package model

/* =========================================================
   DERIVASI MURNI — remaining, overpaid, dan status AR selalu
   fungsi dari (total, paid). Dipakai store, reconciler, dan test.
========================================================= */

// RemainingPaise floor di 0; kelebihan bayar TIDAK dibuang,
// muncul lewat OverpaidPaise supaya audit tetap balance.
func RemainingPaise(totalPaise, paidPaise int64) int64 {
	if paidPaise >= totalPaise {
		return 0
	}
	return totalPaise - paidPaise
}

// OverpaidPaise > 0 hanya saat paid melebihi total.
func OverpaidPaise(totalPaise, paidPaise int64) int64 {
	if paidPaise > totalPaise {
		return paidPaise - totalPaise
	}
	return 0
}

// DeriveStatus: 0 → Outstanding, (0,total) → Partial, ≥ total → Paid.
func DeriveStatus(totalPaise, paidPaise int64) LedgerStatus {
	switch {
	case paidPaise <= 0:
		return LedgerStatusOutstanding
	case paidPaise < totalPaise:
		return LedgerStatusPartial
	default:
		return LedgerStatusPaid
	}
}

// ClampPaid menahan paid di ≥ 0 (reversal tidak boleh bikin negatif).
func ClampPaid(paidPaise int64) int64 {
	if paidPaise < 0 {
		return 0
	}
	return paidPaise
}
