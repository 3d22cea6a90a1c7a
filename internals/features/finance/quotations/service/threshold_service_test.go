package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyceum_backend/internals/constants"
	model "lyceum_backend/internals/features/finance/quotations/model"
)

func TestValidateStage(t *testing.T) {
	tests := []struct {
		name    string
		stage   model.UnlockStage
		price   int64
		wantErr bool
	}{
		{
			name:  "full pada item berharga",
			stage: model.UnlockStage{Kind: model.ThresholdFull},
			price: 10_000_00,
		},
		{
			name:    "full pada item harga nol ditolak",
			stage:   model.UnlockStage{Kind: model.ThresholdFull},
			price:   0,
			wantErr: true,
		},
		{
			name: "custom valid",
			stage: model.UnlockStage{
				Kind:                 model.ThresholdCustom,
				ThresholdAmountPaise: 5_000_00,
				LinkedCategories:     []constants.DocumentCategory{constants.DocPassport},
			},
			price: 10_000_00,
		},
		{
			name: "custom sama dengan harga masih valid",
			stage: model.UnlockStage{
				Kind:                 model.ThresholdCustom,
				ThresholdAmountPaise: 10_000_00,
				LinkedCategories:     []constants.DocumentCategory{constants.DocI20},
			},
			price: 10_000_00,
		},
		{
			name: "custom negatif ditolak",
			stage: model.UnlockStage{
				Kind:                 model.ThresholdCustom,
				ThresholdAmountPaise: -1,
				LinkedCategories:     []constants.DocumentCategory{constants.DocPassport},
			},
			price:   10_000_00,
			wantErr: true,
		},
		{
			name: "custom melebihi harga ditolak",
			stage: model.UnlockStage{
				Kind:                 model.ThresholdCustom,
				ThresholdAmountPaise: 10_000_01,
				LinkedCategories:     []constants.DocumentCategory{constants.DocPassport},
			},
			price:   10_000_00,
			wantErr: true,
		},
		{
			name: "custom tanpa kategori ditolak",
			stage: model.UnlockStage{
				Kind:                 model.ThresholdCustom,
				ThresholdAmountPaise: 5_000_00,
			},
			price:   10_000_00,
			wantErr: true,
		},
		{
			name: "kategori tidak dikenal ditolak",
			stage: model.UnlockStage{
				Kind:                 model.ThresholdCustom,
				ThresholdAmountPaise: 5_000_00,
				LinkedCategories:     []constants.DocumentCategory{"Random Papers"},
			},
			price:   10_000_00,
			wantErr: true,
		},
		{
			name:    "kind asing ditolak",
			stage:   model.UnlockStage{Kind: "Partial"},
			price:   10_000_00,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStage(tt.stage, tt.price)
			if tt.wantErr {
				require.Error(t, err)
				fe, ok := err.(*fiber.Error)
				require.True(t, ok)
				assert.Equal(t, fiber.StatusBadRequest, fe.Code)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateLineItem(t *testing.T) {
	t.Run("harga negatif error", func(t *testing.T) {
		_, err := ValidateLineItem(model.LineItem{Description: "x", PricePaise: -1})
		require.Error(t, err)
	})

	t.Run("deskripsi kosong error", func(t *testing.T) {
		_, err := ValidateLineItem(model.LineItem{PricePaise: 100})
		require.Error(t, err)
	})

	t.Run("unlock aktif tanpa stage jadi warning bukan error", func(t *testing.T) {
		warnings, err := ValidateLineItem(model.LineItem{
			Description:   "Visa counselling",
			PricePaise:    10_000_00,
			UnlockEnabled: true,
		})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "Visa counselling")
	})

	t.Run("stage invalid menghentikan save", func(t *testing.T) {
		_, err := ValidateLineItem(model.LineItem{
			Description:   "Visa counselling",
			PricePaise:    10_000_00,
			UnlockEnabled: true,
			UnlockStages: []model.UnlockStage{
				{Kind: model.ThresholdCustom, ThresholdAmountPaise: 99_000_00,
					LinkedCategories: []constants.DocumentCategory{constants.DocPassport}},
			},
		})
		require.Error(t, err)
	})
}
