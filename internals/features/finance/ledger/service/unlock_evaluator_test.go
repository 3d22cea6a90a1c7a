package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyceum_backend/internals/constants"
	qmodel "lyceum_backend/internals/features/finance/quotations/model"
)

var (
	stageA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	stageB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	stageC = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

// Dua line item: counselling 10k (Custom 4k → Passport; Full →
// I20+DS-160), shortlisting 6k (Full → Acceptance).
func evaluatorItems() []qmodel.LineItem {
	return []qmodel.LineItem{
		{
			Description:   "Visa counselling",
			PricePaise:    10_000_00,
			UnlockEnabled: true,
			UnlockStages: []qmodel.UnlockStage{
				{StageID: stageA, Kind: qmodel.ThresholdCustom, ThresholdAmountPaise: 4_000_00,
					LinkedCategories: []constants.DocumentCategory{constants.DocPassport}},
				{StageID: stageB, Kind: qmodel.ThresholdFull,
					LinkedCategories: []constants.DocumentCategory{constants.DocI20, constants.DocDS160}},
			},
		},
		{
			Description:   "University shortlisting",
			PricePaise:    6_000_00,
			UnlockEnabled: true,
			UnlockStages: []qmodel.UnlockStage{
				{StageID: stageC, Kind: qmodel.ThresholdFull,
					LinkedCategories: []constants.DocumentCategory{constants.DocAcceptance, constants.DocPassport}},
			},
		},
	}
}

func TestAttributedPaise(t *testing.T) {
	items := evaluatorItems()

	tests := []struct {
		name string
		paid int64
		want []int64
	}{
		{"nol", 0, []int64{0, 0}},
		{"sebagian item pertama", 3_000_00, []int64{3_000_00, 0}},
		{"pas item pertama", 10_000_00, []int64{10_000_00, 0}},
		{"spill ke item kedua", 12_000_00, []int64{10_000_00, 2_000_00}},
		{"lunas semua", 16_000_00, []int64{10_000_00, 6_000_00}},
		{"overpaid tidak menambah atribusi", 20_000_00, []int64{10_000_00, 6_000_00}},
		{"paid negatif dianggap nol", -100, []int64{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttributedPaise(items, tt.paid))
		})
	}
}

func TestSatisfiedStageIDs(t *testing.T) {
	items := evaluatorItems()

	assert.Empty(t, SatisfiedStageIDs(items, 0))

	// 4k: custom stage item pertama terpenuhi
	assert.Equal(t, []string{stageA.String()}, SatisfiedStageIDs(items, 4_000_00))

	// 10k: item pertama lunas (A dan B), item kedua belum tersentuh
	assert.ElementsMatch(t,
		[]string{stageA.String(), stageB.String()},
		SatisfiedStageIDs(items, 10_000_00))

	// 12k: spill 2k belum mencapai Full 6k item kedua
	assert.ElementsMatch(t,
		[]string{stageA.String(), stageB.String()},
		SatisfiedStageIDs(items, 12_000_00))

	// 16k: semua stage
	assert.ElementsMatch(t,
		[]string{stageA.String(), stageB.String(), stageC.String()},
		SatisfiedStageIDs(items, 16_000_00))
}

func TestSatisfiedStageIDsSkipsDisabledAndZeroThreshold(t *testing.T) {
	items := []qmodel.LineItem{
		{
			Description: "Unlock mati",
			PricePaise:  1_000_00,
			UnlockStages: []qmodel.UnlockStage{
				{StageID: stageA, Kind: qmodel.ThresholdFull,
					LinkedCategories: []constants.DocumentCategory{constants.DocPassport}},
			},
		},
		{
			Description:   "Harga nol",
			PricePaise:    0,
			UnlockEnabled: true,
			UnlockStages: []qmodel.UnlockStage{
				{StageID: stageB, Kind: qmodel.ThresholdFull,
					LinkedCategories: []constants.DocumentCategory{constants.DocI20}},
			},
		},
	}
	// item pertama unlock_enabled=false, item kedua stage Full pada
	// harga 0 tidak pernah dianggap tercapai
	assert.Empty(t, SatisfiedStageIDs(items, 5_000_00))
}

// Custom dengan nominal 0 lolos authoring dan harus langsung membuka
// kategorinya — 0 ≤ attributed berlaku bahkan sebelum ada pembayaran.
func TestCustomZeroThresholdUnlocksImmediately(t *testing.T) {
	items := []qmodel.LineItem{
		{
			Description:   "Registration",
			PricePaise:    1_000_00,
			UnlockEnabled: true,
			UnlockStages: []qmodel.UnlockStage{
				{StageID: stageA, Kind: qmodel.ThresholdCustom, ThresholdAmountPaise: 0,
					LinkedCategories: []constants.DocumentCategory{constants.DocOther}},
			},
		},
	}

	assert.Equal(t, []constants.DocumentCategory{constants.DocOther},
		UnlockedCategories(items, 0))
	assert.Equal(t, []constants.DocumentCategory{constants.DocOther},
		UnlockedCategories(items, 1_000_00))
	assert.Equal(t, []string{stageA.String()}, SatisfiedStageIDs(items, 0))
}

func TestUnlockedCategories(t *testing.T) {
	items := evaluatorItems()

	assert.Empty(t, UnlockedCategories(items, 3_999_99))

	got := UnlockedCategories(items, 4_000_00)
	assert.Equal(t, []constants.DocumentCategory{constants.DocPassport}, got)

	// lunas penuh: union dedupe — Passport muncul sekali walau ada di
	// dua stage
	full := UnlockedCategories(items, 16_000_00)
	assert.Equal(t, []constants.DocumentCategory{
		constants.DocPassport, constants.DocI20, constants.DocDS160, constants.DocAcceptance,
	}, full)
}

// Stage yang sudah terbuka tidak boleh tertutup saat paid naik.
func TestUnlockMonotonic(t *testing.T) {
	items := evaluatorItems()
	prev := map[string]struct{}{}
	for paid := int64(0); paid <= 20_000_00; paid += 250_00 {
		cur := SatisfiedStageIDs(items, paid)
		curSet := make(map[string]struct{}, len(cur))
		for _, id := range cur {
			curSet[id] = struct{}{}
		}
		for id := range prev {
			_, still := curSet[id]
			require.True(t, still, "stage %s tertutup lagi di paid=%d", id, paid)
		}
		prev = curSet
	}
}

func TestNewlySatisfiedStageIDs(t *testing.T) {
	items := evaluatorItems()

	assert.Empty(t, NewlySatisfiedStageIDs(items, 0, 3_000_00))
	assert.Equal(t, []string{stageA.String()}, NewlySatisfiedStageIDs(items, 0, 4_000_00))
	assert.ElementsMatch(t,
		[]string{stageB.String(), stageC.String()},
		NewlySatisfiedStageIDs(items, 4_000_00, 16_000_00))
	// tidak ada yang baru saat replay level paid yang sama
	assert.Empty(t, NewlySatisfiedStageIDs(items, 16_000_00, 16_000_00))
}
