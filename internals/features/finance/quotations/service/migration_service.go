// file: internals/features/finance/quotations/service/migration_service.go
package service

import (
	"fmt"

	"github.com/google/uuid"

	"lyceum_backend/internals/constants"
	model "lyceum_backend/internals/features/finance/quotations/model"
)

/* =========================================================
   LEGACY MIGRATION — template lama menyimpan satu triple
   (unlock_threshold_type, unlock_threshold_amount_paise,
   linked_document_categories) langsung di line item. Load path
   mensintesis satu UnlockStage dari triple itu supaya downstream
   hanya melihat bentuk stage-list.
========================================================= */

// Namespace tetap untuk stage hasil migrasi: id stage deterministik
// terhadap isi legacy field + posisi item, jadi migrasi ulang
// menghasilkan unlockStages yang byte-identical.
var legacyStageNamespace = uuid.MustParse("9c1f3c1e-5b77-4a2e-8f43-2c6a0d6e91aa")

// MigrateLineItem mengembalikan line item dalam bentuk stage-list.
// Idempoten: item yang sudah punya stage dikembalikan apa adanya.
func MigrateLineItem(item model.LineItem, itemIndex int) model.LineItem {
	if len(item.UnlockStages) > 0 {
		return item
	}
	if item.LegacyThresholdType == nil && item.LegacyThresholdAmountPaise == nil && len(item.LegacyLinkedCategories) == 0 {
		return item
	}

	kind := model.ThresholdFull
	if item.LegacyThresholdType != nil {
		kind = *item.LegacyThresholdType
	}
	var amount int64
	if kind == model.ThresholdCustom && item.LegacyThresholdAmountPaise != nil {
		amount = *item.LegacyThresholdAmountPaise
	}

	name := fmt.Sprintf("%d|%s|%d|%s", itemIndex, kind, amount, item.Description)
	stage := model.UnlockStage{
		StageID:              uuid.NewSHA1(legacyStageNamespace, []byte(name)),
		Kind:                 kind,
		ThresholdAmountPaise: amount,
		LinkedCategories:     cloneCategories(item.LegacyLinkedCategories),
	}

	migrated := item
	migrated.UnlockEnabled = true
	migrated.UnlockStages = []model.UnlockStage{stage}
	migrated.LegacyThresholdType = nil
	migrated.LegacyThresholdAmountPaise = nil
	migrated.LegacyLinkedCategories = nil
	return migrated
}

// MigrateLineItems menjalankan migrasi untuk seluruh item.
func MigrateLineItems(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, len(items))
	for i, it := range items {
		out[i] = MigrateLineItem(it, i)
	}
	return out
}

func cloneCategories(in []constants.DocumentCategory) []constants.DocumentCategory {
	if len(in) == 0 {
		return nil
	}
	out := make([]constants.DocumentCategory, len(in))
	copy(out, in)
	return out
}
