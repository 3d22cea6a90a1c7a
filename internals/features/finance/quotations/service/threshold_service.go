// file: internals/features/finance/quotations/service/threshold_service.go
package service

import (
	"github.com/gofiber/fiber/v2"

	"lyceum_backend/internals/constants"
	model "lyceum_backend/internals/features/finance/quotations/model"
)

/* =========================================================
   THRESHOLD — validasi & derivasi murni (tanpa side effect).
   Dipanggil catalog saat save dan evaluator saat read.
========================================================= */

// ResolvedThreshold — lihat model.UnlockStage.ResolvedThreshold;
// alias dipertahankan untuk pemanggil sisi authoring.
func ResolvedThreshold(stage model.UnlockStage, currentPricePaise int64) int64 {
	return stage.ResolvedThreshold(currentPricePaise)
}

// ValidateStage menolak konfigurasi yang tidak bisa dieksekusi.
// Pelanggaran adalah error validasi, BUKAN di-clamp diam-diam.
func ValidateStage(stage model.UnlockStage, lineItemPricePaise int64) error {
	switch stage.Kind {
	case model.ThresholdFull:
		if lineItemPricePaise <= 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				"stage Full pada line item berharga 0 tidak bisa menggate dokumen apa pun")
		}
	case model.ThresholdCustom:
		if stage.ThresholdAmountPaise < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "threshold_amount_paise tidak boleh negatif")
		}
		if stage.ThresholdAmountPaise > lineItemPricePaise {
			return fiber.NewError(fiber.StatusBadRequest,
				"threshold_amount_paise melebihi harga line item")
		}
		if len(stage.LinkedCategories) == 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				"stage Custom tanpa linked_categories tidak melepas apa pun (config error)")
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "kind stage harus Full atau Custom")
	}

	for _, cat := range stage.LinkedCategories {
		if !constants.IsValidDocumentCategory(cat) {
			return fiber.NewError(fiber.StatusBadRequest, "kategori dokumen tidak dikenal: "+string(cat))
		}
	}
	return nil
}

// ValidateLineItem memeriksa harga & seluruh stage. Item yang
// unlock-nya aktif tapi tanpa stage bukan error fatal — dikembalikan
// sebagai warning konfigurasi supaya tidak hilang diam-diam.
func ValidateLineItem(item model.LineItem) (warnings []string, err error) {
	if item.PricePaise < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "price_paise tidak boleh negatif")
	}
	if item.Description == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "description line item wajib diisi")
	}

	for _, st := range item.UnlockStages {
		if err := ValidateStage(st, item.PricePaise); err != nil {
			return nil, err
		}
	}

	if item.UnlockEnabled && len(item.UnlockStages) == 0 {
		warnings = append(warnings,
			"line item '"+item.Description+"': unlock aktif tapi tidak punya stage — tidak ada kategori yang akan terbuka")
	}
	return warnings, nil
}
