// file: internals/features/finance/ledger/service/unlock_evaluator.go
package service

import (
	"lyceum_backend/internals/constants"
	qmodel "lyceum_backend/internals/features/finance/quotations/model"
)

/* =========================================================
   UNLOCK EVALUATOR — fungsi murni atas snapshot line item +
   paid kumulatif. Aman dipanggil berulang kapan pun.

   Kebijakan atribusi: paid adalah satu pool yang diisi greedy
   ke line item sesuai urutan deklarasi; tiap item menyerap
   sampai sebesar harganya, sisanya mengalir ke item berikut.
   Item tanpa stage tetap menyerap pembayaran tapi tidak
   membuka apa pun.
========================================================= */

// AttributedPaise menghitung porsi paid yang teratribusi per line item.
func AttributedPaise(items []qmodel.LineItem, paidPaise int64) []int64 {
	out := make([]int64, len(items))
	remaining := paidPaise
	if remaining < 0 {
		remaining = 0
	}
	for i, it := range items {
		if remaining <= 0 {
			break
		}
		take := it.PricePaise
		if take > remaining {
			take = remaining
		}
		if take < 0 {
			take = 0
		}
		out[i] = take
		remaining -= take
	}
	return out
}

// stageSatisfied: ambang stage tercapai oleh porsi item tersebut.
// Stage list tidak dijamin terurut by threshold; tiap stage dicek sendiri.
// Custom dengan nominal 0 sah dan langsung terpenuhi (0 ≤ attributed).
func stageSatisfied(stage qmodel.UnlockStage, item qmodel.LineItem, attributedPaise int64) bool {
	if stage.Kind == qmodel.ThresholdFull && item.PricePaise <= 0 {
		// Full pada item harga 0 tidak pernah menggate (config invalid di authoring).
		return false
	}
	return attributedPaise >= stage.ResolvedThreshold(item.PricePaise)
}

// SatisfiedStageIDs: seluruh stage id yang ambangnya sudah tercapai.
func SatisfiedStageIDs(items []qmodel.LineItem, paidPaise int64) []string {
	attributed := AttributedPaise(items, paidPaise)
	var ids []string
	for i, it := range items {
		if !it.UnlockEnabled {
			continue
		}
		for _, st := range it.UnlockStages {
			if stageSatisfied(st, it, attributed[i]) {
				ids = append(ids, st.StageID.String())
			}
		}
	}
	return ids
}

// UnlockedCategories: union kategori dari semua stage yang terpenuhi,
// dedupe dengan urutan kemunculan. Monotonik terhadap paid: atribusi
// greedy naik bersama paid, jadi stage yang sudah terbuka tidak pernah
// tertutup selama konfigurasi tetap.
func UnlockedCategories(items []qmodel.LineItem, paidPaise int64) []constants.DocumentCategory {
	attributed := AttributedPaise(items, paidPaise)
	seen := make(map[constants.DocumentCategory]struct{})
	var out []constants.DocumentCategory
	for i, it := range items {
		if !it.UnlockEnabled {
			continue
		}
		for _, st := range it.UnlockStages {
			if !stageSatisfied(st, it, attributed[i]) {
				continue
			}
			for _, cat := range st.LinkedCategories {
				if _, ok := seen[cat]; ok {
					continue
				}
				seen[cat] = struct{}{}
				out = append(out, cat)
			}
		}
	}
	return out
}

// NewlySatisfiedStageIDs: stage yang terpenuhi di paidAfter tapi belum
// di paidBefore — direkam ke ledger_events oleh store.
func NewlySatisfiedStageIDs(items []qmodel.LineItem, paidBefore, paidAfter int64) []string {
	before := make(map[string]struct{})
	for _, id := range SatisfiedStageIDs(items, paidBefore) {
		before[id] = struct{}{}
	}
	var out []string
	for _, id := range SatisfiedStageIDs(items, paidAfter) {
		if _, ok := before[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
