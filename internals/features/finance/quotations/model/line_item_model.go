// file: internals/features/finance/quotations/model/line_item_model.go
package model

import (
	"github.com/google/uuid"

	"lyceum_backend/internals/constants"
)

/* ==============================
   ENUM — jenis threshold unlock
============================== */

type ThresholdKind string

const (
	// Full: threshold mengikuti harga line item saat ini.
	ThresholdFull ThresholdKind = "Full"
	// Custom: nominal eksplisit, tidak ikut perubahan harga.
	ThresholdCustom ThresholdKind = "Custom"
)

/* ==============================================
   VALUE TYPES — snapshot di kolom JSONB
   (template & quotation memakai bentuk yang sama)
============================================== */

// UnlockStage adalah satu ambang pembayaran pada line item beserta
// kategori dokumen yang dilepas saat ambang tercapai. ID stabil:
// dirujuk dari ledger_events.
type UnlockStage struct {
	StageID              uuid.UUID                    `json:"stage_id"`
	Kind                 ThresholdKind                `json:"kind"`
	ThresholdAmountPaise int64                        `json:"threshold_amount_paise"`
	LinkedCategories     []constants.DocumentCategory `json:"linked_categories"`
}

// LineItem dibekukan (deep copy) dari template saat quotation dibuat;
// edit template tidak pernah mengubah quotation yang sudah terbit.
type LineItem struct {
	Description   string        `json:"description"`
	PricePaise    int64         `json:"price_paise"`
	UnlockEnabled bool          `json:"unlock_enabled"`
	UnlockStages  []UnlockStage `json:"unlock_stages,omitempty"`

	// ===== Field legacy (template lama, single-stage per item) =====
	// Diisi hanya pada data pra-migrasi; load path mensintesis satu
	// UnlockStage dari ketiganya lalu field ini diabaikan downstream.
	LegacyThresholdType        *ThresholdKind               `json:"unlock_threshold_type,omitempty"`
	LegacyThresholdAmountPaise *int64                       `json:"unlock_threshold_amount_paise,omitempty"`
	LegacyLinkedCategories     []constants.DocumentCategory `json:"linked_document_categories,omitempty"`
}

// ResolvedThreshold: Full mengikuti harga line item saat ini,
// Custom memakai nominal eksplisit apa adanya.
func (s UnlockStage) ResolvedThreshold(currentPricePaise int64) int64 {
	if s.Kind == ThresholdFull {
		return currentPricePaise
	}
	return s.ThresholdAmountPaise
}

// TotalPaise menjumlahkan harga seluruh line item.
func TotalPaise(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.PricePaise
	}
	return total
}
