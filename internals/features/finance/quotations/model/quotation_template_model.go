// file: internals/features/finance/quotations/model/quotation_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuotationTemplate struct {
	QuotationTemplateID uuid.UUID `gorm:"column:quotation_template_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quotation_template_id"`

	QuotationTemplateTitle       string `gorm:"column:quotation_template_title;type:text;not null" json:"quotation_template_title"`
	QuotationTemplateDescription string `gorm:"column:quotation_template_description;type:text" json:"quotation_template_description"`

	QuotationTemplateLineItems  datatypes.JSONType[[]LineItem] `gorm:"column:quotation_template_line_items;type:jsonb;not null" json:"quotation_template_line_items"`
	QuotationTemplateTotalPaise int64                          `gorm:"column:quotation_template_total_paise;type:bigint;not null;check:quotation_template_total_paise>=0" json:"quotation_template_total_paise"`

	// Audit
	QuotationTemplateCreatedAt time.Time      `gorm:"column:quotation_template_created_at;type:timestamptz;not null;default:now();index" json:"quotation_template_created_at"`
	QuotationTemplateUpdatedAt time.Time      `gorm:"column:quotation_template_updated_at;type:timestamptz;not null;default:now()" json:"quotation_template_updated_at"`
	QuotationTemplateDeletedAt gorm.DeletedAt `gorm:"column:quotation_template_deleted_at;type:timestamptz;index" json:"-"`
}

func (QuotationTemplate) TableName() string { return "quotation_templates" }

func (m *QuotationTemplate) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.QuotationTemplateCreatedAt.IsZero() {
		m.QuotationTemplateCreatedAt = now
	}
	m.QuotationTemplateUpdatedAt = now
	return nil
}

func (m *QuotationTemplate) BeforeUpdate(tx *gorm.DB) error {
	m.QuotationTemplateUpdatedAt = time.Now()
	return nil
}
