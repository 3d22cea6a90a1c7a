// file: internals/features/finance/payments/model/contribution_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — transaction_contributions

   Peta transaksi → ledger entry + nominal TERAKHIR yang
   dikontribusikan. Edit/void di-net terhadap nilai ini supaya
   tidak double-count, dan replay event jadi idempoten.
   Dipersist bareng entry yang terakhir dipengaruhi supaya
   crash-recovery bisa replay dengan benar.
============================================== */

type TransactionContribution struct {
	ContributionTransactionID string    `gorm:"column:contribution_transaction_id;type:text;primaryKey" json:"contribution_transaction_id"`
	ContributionLedgerEntryID uuid.UUID `gorm:"column:contribution_ledger_entry_id;type:uuid;not null;index" json:"contribution_ledger_entry_id"`

	// Nominal terakhir yang masuk ke paid (0 setelah void).
	ContributionAmountPaise int64 `gorm:"column:contribution_amount_paise;type:bigint;not null;default:0" json:"contribution_amount_paise"`

	ContributionCreatedAt time.Time `gorm:"column:contribution_created_at;type:timestamptz;not null;default:now()" json:"contribution_created_at"`
	ContributionUpdatedAt time.Time `gorm:"column:contribution_updated_at;type:timestamptz;not null;default:now()" json:"contribution_updated_at"`
}

func (TransactionContribution) TableName() string { return "transaction_contributions" }

func (m *TransactionContribution) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.ContributionCreatedAt.IsZero() {
		m.ContributionCreatedAt = now
	}
	m.ContributionUpdatedAt = now
	return nil
}

func (m *TransactionContribution) BeforeUpdate(tx *gorm.DB) error {
	m.ContributionUpdatedAt = time.Now()
	return nil
}
