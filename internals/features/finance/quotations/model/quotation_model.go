// file: internals/features/finance/quotations/model/quotation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — status quotation
============================== */

type QuotationStatus string

const (
	QuotationStatusDraft             QuotationStatus = "Draft"
	QuotationStatusSent              QuotationStatus = "Sent"
	QuotationStatusInReview          QuotationStatus = "In Review"
	QuotationStatusAcceptedByStudent QuotationStatus = "Accepted by Student"
	QuotationStatusAgreed            QuotationStatus = "Agreed"
	QuotationStatusRejected          QuotationStatus = "Rejected"
)

// IsTerminal: Agreed & Rejected menutup quotation untuk billing.
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusAgreed || s == QuotationStatusRejected
}

var forwardOrder = map[QuotationStatus]int{
	QuotationStatusDraft:             0,
	QuotationStatusSent:              1,
	QuotationStatusInReview:          2,
	QuotationStatusAcceptedByStudent: 3,
	QuotationStatusAgreed:            4,
}

// CanTransition: maju mengikuti urutan lifecycle; Rejected boleh dari
// status non-terminal mana pun; tidak ada jalan keluar dari terminal.
func CanTransition(from, to QuotationStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == QuotationStatusRejected {
		return true
	}
	fi, okF := forwardOrder[from]
	ti, okT := forwardOrder[to]
	return okF && okT && ti > fi
}

/* ==============================================
   MODEL — quotations
============================================== */

type Quotation struct {
	QuotationID     uuid.UUID `gorm:"column:quotation_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quotation_id"`
	QuotationNumber string    `gorm:"column:quotation_number;type:varchar(20);not null;uniqueIndex" json:"quotation_number"`

	// Subject
	QuotationContactID  uuid.UUID  `gorm:"column:quotation_contact_id;type:uuid;not null;index" json:"quotation_contact_id"`
	QuotationTemplateID *uuid.UUID `gorm:"column:quotation_template_id;type:uuid;index" json:"quotation_template_id,omitempty"`

	QuotationTitle       string `gorm:"column:quotation_title;type:text;not null" json:"quotation_title"`
	QuotationDescription string `gorm:"column:quotation_description;type:text" json:"quotation_description"`

	// Snapshot line items (beku sejak instansiasi)
	QuotationLineItems  datatypes.JSONType[[]LineItem] `gorm:"column:quotation_line_items;type:jsonb;not null" json:"quotation_line_items"`
	QuotationTotalPaise int64                          `gorm:"column:quotation_total_paise;type:bigint;not null;check:quotation_total_paise>=0" json:"quotation_total_paise"`

	QuotationStatus            QuotationStatus `gorm:"column:quotation_status;type:varchar(30);not null;default:'Draft';index" json:"quotation_status"`
	QuotationStudentAcceptedAt *time.Time      `gorm:"column:quotation_student_accepted_at;type:timestamptz" json:"quotation_student_accepted_at,omitempty"`
	QuotationAgreedAt          *time.Time      `gorm:"column:quotation_agreed_at;type:timestamptz" json:"quotation_agreed_at,omitempty"`

	// Audit
	QuotationCreatedAt time.Time      `gorm:"column:quotation_created_at;type:timestamptz;not null;default:now();index" json:"quotation_created_at"`
	QuotationUpdatedAt time.Time      `gorm:"column:quotation_updated_at;type:timestamptz;not null;default:now()" json:"quotation_updated_at"`
	QuotationDeletedAt gorm.DeletedAt `gorm:"column:quotation_deleted_at;type:timestamptz;index" json:"-"`
}

func (Quotation) TableName() string { return "quotations" }

func (m *Quotation) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.QuotationCreatedAt.IsZero() {
		m.QuotationCreatedAt = now
	}
	m.QuotationUpdatedAt = now
	if m.QuotationStatus == "" {
		m.QuotationStatus = QuotationStatusDraft
	}
	return nil
}

func (m *Quotation) BeforeUpdate(tx *gorm.DB) error {
	m.QuotationUpdatedAt = time.Now()
	return nil
}
