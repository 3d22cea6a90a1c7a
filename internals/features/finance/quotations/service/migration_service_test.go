package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyceum_backend/internals/constants"
	model "lyceum_backend/internals/features/finance/quotations/model"
)

func legacyItem() model.LineItem {
	kind := model.ThresholdCustom
	amount := int64(4_000_00)
	return model.LineItem{
		Description:                "University shortlisting",
		PricePaise:                 10_000_00,
		LegacyThresholdType:        &kind,
		LegacyThresholdAmountPaise: &amount,
		LegacyLinkedCategories:     []constants.DocumentCategory{constants.DocPassport, constants.DocI20},
	}
}

func TestMigrateLineItem(t *testing.T) {
	t.Run("legacy triple jadi satu stage", func(t *testing.T) {
		got := MigrateLineItem(legacyItem(), 0)

		require.Len(t, got.UnlockStages, 1)
		st := got.UnlockStages[0]
		assert.Equal(t, model.ThresholdCustom, st.Kind)
		assert.Equal(t, int64(4_000_00), st.ThresholdAmountPaise)
		assert.Equal(t, []constants.DocumentCategory{constants.DocPassport, constants.DocI20}, st.LinkedCategories)

		assert.True(t, got.UnlockEnabled)
		assert.Nil(t, got.LegacyThresholdType)
		assert.Nil(t, got.LegacyThresholdAmountPaise)
		assert.Nil(t, got.LegacyLinkedCategories)
	})

	t.Run("migrasi ulang byte-identical", func(t *testing.T) {
		first := MigrateLineItem(legacyItem(), 3)
		second := MigrateLineItem(legacyItem(), 3)
		assert.Equal(t, first, second)
		assert.Equal(t, first.UnlockStages[0].StageID, second.UnlockStages[0].StageID,
			"stage id hasil migrasi harus deterministik")
	})

	t.Run("item index membedakan stage id", func(t *testing.T) {
		a := MigrateLineItem(legacyItem(), 0)
		b := MigrateLineItem(legacyItem(), 1)
		assert.NotEqual(t, a.UnlockStages[0].StageID, b.UnlockStages[0].StageID)
	})

	t.Run("item yang sudah punya stage tidak disentuh", func(t *testing.T) {
		it := legacyItem()
		it.UnlockStages = []model.UnlockStage{{Kind: model.ThresholdFull}}
		got := MigrateLineItem(it, 0)
		assert.Equal(t, it, got)
	})

	t.Run("item tanpa legacy field tidak disentuh", func(t *testing.T) {
		it := model.LineItem{Description: "Visa counselling", PricePaise: 100}
		assert.Equal(t, it, MigrateLineItem(it, 0))
	})

	t.Run("legacy type Full mengabaikan nominal", func(t *testing.T) {
		kind := model.ThresholdFull
		amount := int64(123)
		it := model.LineItem{
			Description:                "Doc review",
			PricePaise:                 5_000_00,
			LegacyThresholdType:        &kind,
			LegacyThresholdAmountPaise: &amount,
			LegacyLinkedCategories:     []constants.DocumentCategory{constants.DocAcceptance},
		}
		got := MigrateLineItem(it, 0)
		require.Len(t, got.UnlockStages, 1)
		assert.Equal(t, model.ThresholdFull, got.UnlockStages[0].Kind)
		assert.Equal(t, int64(0), got.UnlockStages[0].ThresholdAmountPaise)
		assert.Equal(t, int64(5_000_00), got.UnlockStages[0].ResolvedThreshold(it.PricePaise))
	})
}

func TestMigrateLineItems(t *testing.T) {
	items := []model.LineItem{
		legacyItem(),
		{Description: "Visa counselling", PricePaise: 2_000_00},
	}
	out := MigrateLineItems(items)
	require.Len(t, out, 2)
	assert.Len(t, out[0].UnlockStages, 1)
	assert.Empty(t, out[1].UnlockStages)

	// input tidak dimutasi
	assert.NotNil(t, items[0].LegacyThresholdType)
}
