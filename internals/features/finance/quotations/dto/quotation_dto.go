// file: internals/features/finance/quotations/dto/quotation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lyceum_backend/internals/constants"
	model "lyceum_backend/internals/features/finance/quotations/model"
)

////////////////////////////////////////////////////////////////////////////////
// LINE ITEM + STAGE — DTO (dipakai template & quotation)
////////////////////////////////////////////////////////////////////////////////

type UnlockStageDTO struct {
	StageID              *uuid.UUID                   `json:"stage_id,omitempty"` // kosong saat authoring baru
	Kind                 model.ThresholdKind          `json:"kind" validate:"required,oneof=Full Custom"`
	ThresholdAmountPaise int64                        `json:"threshold_amount_paise" validate:"min=0"`
	LinkedCategories     []constants.DocumentCategory `json:"linked_categories"`
}

type LineItemDTO struct {
	Description   string           `json:"description" validate:"required"`
	PricePaise    int64            `json:"price_paise" validate:"min=0"`
	UnlockEnabled bool             `json:"unlock_enabled"`
	UnlockStages  []UnlockStageDTO `json:"unlock_stages,omitempty" validate:"dive"`

	// Legacy single-stage (hanya muncul pada payload import data lama)
	LegacyThresholdType        *model.ThresholdKind         `json:"unlock_threshold_type,omitempty"`
	LegacyThresholdAmountPaise *int64                       `json:"unlock_threshold_amount_paise,omitempty"`
	LegacyLinkedCategories     []constants.DocumentCategory `json:"linked_document_categories,omitempty"`
}

func (d LineItemDTO) ToModel() model.LineItem {
	stages := make([]model.UnlockStage, 0, len(d.UnlockStages))
	for _, s := range d.UnlockStages {
		id := uuid.New()
		if s.StageID != nil && *s.StageID != uuid.Nil {
			id = *s.StageID // stage id stabil antar edit
		}
		stages = append(stages, model.UnlockStage{
			StageID:              id,
			Kind:                 s.Kind,
			ThresholdAmountPaise: s.ThresholdAmountPaise,
			LinkedCategories:     s.LinkedCategories,
		})
	}
	return model.LineItem{
		Description:                d.Description,
		PricePaise:                 d.PricePaise,
		UnlockEnabled:              d.UnlockEnabled,
		UnlockStages:               stages,
		LegacyThresholdType:        d.LegacyThresholdType,
		LegacyThresholdAmountPaise: d.LegacyThresholdAmountPaise,
		LegacyLinkedCategories:     d.LegacyLinkedCategories,
	}
}

func LineItemsToModel(items []LineItemDTO) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.ToModel())
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// TEMPLATE — DTO
////////////////////////////////////////////////////////////////////////////////

type TemplateCreateDTO struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	LineItems   []LineItemDTO `json:"line_items" validate:"required,min=1,dive"`
}

type TemplateUpdateDTO struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	LineItems   []LineItemDTO `json:"line_items,omitempty" validate:"omitempty,min=1,dive"`
}

type TemplateResponse struct {
	QuotationTemplateID          uuid.UUID        `json:"quotation_template_id"`
	QuotationTemplateTitle       string           `json:"quotation_template_title"`
	QuotationTemplateDescription string           `json:"quotation_template_description"`
	QuotationTemplateLineItems   []model.LineItem `json:"quotation_template_line_items"`
	QuotationTemplateTotalPaise  int64            `json:"quotation_template_total_paise"`
	QuotationTemplateCreatedAt   time.Time        `json:"quotation_template_created_at"`
	QuotationTemplateUpdatedAt   time.Time        `json:"quotation_template_updated_at"`
	Warnings                     []string         `json:"warnings,omitempty"`
}

func ToTemplateResponse(m model.QuotationTemplate, warnings []string) TemplateResponse {
	return TemplateResponse{
		QuotationTemplateID:          m.QuotationTemplateID,
		QuotationTemplateTitle:       m.QuotationTemplateTitle,
		QuotationTemplateDescription: m.QuotationTemplateDescription,
		QuotationTemplateLineItems:   m.QuotationTemplateLineItems.Data(),
		QuotationTemplateTotalPaise:  m.QuotationTemplateTotalPaise,
		QuotationTemplateCreatedAt:   m.QuotationTemplateCreatedAt,
		QuotationTemplateUpdatedAt:   m.QuotationTemplateUpdatedAt,
		Warnings:                     warnings,
	}
}

////////////////////////////////////////////////////////////////////////////////
// QUOTATION — DTO
////////////////////////////////////////////////////////////////////////////////

// Dari template: isi template_id; dari scratch: isi title + line_items.
type QuotationCreateDTO struct {
	ContactID   uuid.UUID     `json:"contact_id" validate:"required"`
	TemplateID  *uuid.UUID    `json:"template_id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	LineItems   []LineItemDTO `json:"line_items,omitempty" validate:"omitempty,min=1,dive"`
}

type QuotationUpdateDTO struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	LineItems   []LineItemDTO `json:"line_items,omitempty" validate:"omitempty,min=1,dive"`
}

type QuotationTransitionDTO struct {
	Status model.QuotationStatus `json:"status" validate:"required"`
}

type QuotationResponse struct {
	QuotationID                uuid.UUID        `json:"quotation_id"`
	QuotationNumber            string           `json:"quotation_number"`
	QuotationContactID         uuid.UUID        `json:"quotation_contact_id"`
	QuotationTemplateID        *uuid.UUID       `json:"quotation_template_id,omitempty"`
	QuotationTitle             string           `json:"quotation_title"`
	QuotationDescription       string           `json:"quotation_description"`
	QuotationLineItems         []model.LineItem `json:"quotation_line_items"`
	QuotationTotalPaise        int64            `json:"quotation_total_paise"`
	QuotationStatus            string           `json:"quotation_status"`
	QuotationStudentAcceptedAt *time.Time       `json:"quotation_student_accepted_at,omitempty"`
	QuotationAgreedAt          *time.Time       `json:"quotation_agreed_at,omitempty"`
	QuotationCreatedAt         time.Time        `json:"quotation_created_at"`
	QuotationUpdatedAt         time.Time        `json:"quotation_updated_at"`
	Warnings                   []string         `json:"warnings,omitempty"`
}

func ToQuotationResponse(m model.Quotation, warnings []string) QuotationResponse {
	return QuotationResponse{
		QuotationID:                m.QuotationID,
		QuotationNumber:            m.QuotationNumber,
		QuotationContactID:         m.QuotationContactID,
		QuotationTemplateID:        m.QuotationTemplateID,
		QuotationTitle:             m.QuotationTitle,
		QuotationDescription:       m.QuotationDescription,
		QuotationLineItems:         m.QuotationLineItems.Data(),
		QuotationTotalPaise:        m.QuotationTotalPaise,
		QuotationStatus:            string(m.QuotationStatus),
		QuotationStudentAcceptedAt: m.QuotationStudentAcceptedAt,
		QuotationAgreedAt:          m.QuotationAgreedAt,
		QuotationCreatedAt:         m.QuotationCreatedAt,
		QuotationUpdatedAt:         m.QuotationUpdatedAt,
		Warnings:                   warnings,
	}
}
