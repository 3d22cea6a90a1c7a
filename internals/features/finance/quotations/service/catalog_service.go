// file: internals/features/finance/quotations/service/catalog_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ledgerservice "lyceum_backend/internals/features/finance/ledger/service"
	model "lyceum_backend/internals/features/finance/quotations/model"
)

/* =========================================================
   CATALOG — template CRUD, instansiasi quotation, lifecycle.
========================================================= */

var (
	ErrTemplateNotFound  = fiber.NewError(fiber.StatusNotFound, "quotation template tidak ditemukan")
	ErrQuotationNotFound = fiber.NewError(fiber.StatusNotFound, "quotation tidak ditemukan")
	// Edit setelah Agreed/Rejected ditolak, caller harus re-read state.
	ErrQuotationFinalized = fiber.NewError(fiber.StatusConflict, "quotation sudah final (Agreed/Rejected)")
	ErrInvalidTransition  = fiber.NewError(fiber.StatusConflict, "transisi status quotation tidak valid")
)

// prepareLineItems: migrasi legacy → stage-list, lalu validasi semua.
func prepareLineItems(items []model.LineItem) ([]model.LineItem, []string, error) {
	migrated := MigrateLineItems(items)
	var warnings []string
	for _, it := range migrated {
		w, err := ValidateLineItem(it)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}
	return migrated, warnings, nil
}

/* ======================
   TEMPLATES
====================== */

func CreateTemplate(ctx context.Context, db *gorm.DB, tpl *model.QuotationTemplate) ([]string, error) {
	items, warnings, err := prepareLineItems(tpl.QuotationTemplateLineItems.Data())
	if err != nil {
		return nil, err
	}
	tpl.QuotationTemplateLineItems = datatypes.NewJSONType(items)
	tpl.QuotationTemplateTotalPaise = model.TotalPaise(items)

	if err := db.WithContext(ctx).Create(tpl).Error; err != nil {
		return nil, err
	}
	return warnings, nil
}

func UpdateTemplate(ctx context.Context, db *gorm.DB, id uuid.UUID, title, description *string, items []model.LineItem) (*model.QuotationTemplate, []string, error) {
	var tpl model.QuotationTemplate
	if err := db.WithContext(ctx).
		Where("quotation_template_id = ?", id).
		Take(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTemplateNotFound
		}
		return nil, nil, err
	}

	if title != nil {
		tpl.QuotationTemplateTitle = *title
	}
	if description != nil {
		tpl.QuotationTemplateDescription = *description
	}

	var warnings []string
	if items != nil {
		prepared, w, err := prepareLineItems(items)
		if err != nil {
			return nil, nil, err
		}
		warnings = w
		tpl.QuotationTemplateLineItems = datatypes.NewJSONType(prepared)
		tpl.QuotationTemplateTotalPaise = model.TotalPaise(prepared)
	}

	if err := db.WithContext(ctx).Save(&tpl).Error; err != nil {
		return nil, nil, err
	}
	return &tpl, warnings, nil
}

// GetTemplate memigrasi bentuk legacy saat load; migrasi idempoten
// jadi aman dipanggil berulang tanpa menduplikasi stage sintetis.
func GetTemplate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.QuotationTemplate, error) {
	var tpl model.QuotationTemplate
	if err := db.WithContext(ctx).
		Where("quotation_template_id = ?", id).
		Take(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	tpl.QuotationTemplateLineItems = datatypes.NewJSONType(MigrateLineItems(tpl.QuotationTemplateLineItems.Data()))
	return &tpl, nil
}

func DeleteTemplate(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).
		Where("quotation_template_id = ?", id).
		Delete(&model.QuotationTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

/* ======================
   QUOTATIONS
====================== */

// copyLineItemsFreshStageIDs: deep copy snapshot; stage id baru supaya
// edit template tidak pernah menyentuh quotation yang sudah terbit.
func copyLineItemsFreshStageIDs(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, len(items))
	for i, it := range items {
		cp := it
		cp.UnlockStages = make([]model.UnlockStage, len(it.UnlockStages))
		for j, st := range it.UnlockStages {
			sc := st
			sc.StageID = uuid.New()
			sc.LinkedCategories = cloneCategories(st.LinkedCategories)
			cp.UnlockStages[j] = sc
		}
		out[i] = cp
	}
	return out
}

func nextQuotationNumber(tx *gorm.DB) (string, error) {
	var n int64
	if err := tx.Model(&model.Quotation{}).Unscoped().Count(&n).Error; err != nil {
		return "", err
	}
	// Q-1001, Q-1002, ... (unique index menjaga race; caller boleh retry)
	return fmt.Sprintf("Q-%d", 1001+n), nil
}

// InstantiateFromTemplate membuat quotation Draft dari template.
func InstantiateFromTemplate(ctx context.Context, db *gorm.DB, templateID, contactID uuid.UUID) (*model.Quotation, error) {
	tpl, err := GetTemplate(ctx, db, templateID)
	if err != nil {
		return nil, err
	}

	items := copyLineItemsFreshStageIDs(tpl.QuotationTemplateLineItems.Data())
	q := &model.Quotation{
		QuotationContactID:   contactID,
		QuotationTemplateID:  &tpl.QuotationTemplateID,
		QuotationTitle:       tpl.QuotationTemplateTitle,
		QuotationDescription: tpl.QuotationTemplateDescription,
		QuotationLineItems:   datatypes.NewJSONType(items),
		QuotationTotalPaise:  model.TotalPaise(items),
		QuotationStatus:      model.QuotationStatusDraft,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		num, err := nextQuotationNumber(tx)
		if err != nil {
			return err
		}
		q.QuotationNumber = num
		return tx.Create(q).Error
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// CreateQuotation membuat quotation Draft dari scratch (tanpa template).
func CreateQuotation(ctx context.Context, db *gorm.DB, q *model.Quotation) ([]string, error) {
	items, warnings, err := prepareLineItems(q.QuotationLineItems.Data())
	if err != nil {
		return nil, err
	}
	q.QuotationLineItems = datatypes.NewJSONType(items)
	q.QuotationTotalPaise = model.TotalPaise(items)
	q.QuotationStatus = model.QuotationStatusDraft

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		num, err := nextQuotationNumber(tx)
		if err != nil {
			return err
		}
		q.QuotationNumber = num
		return tx.Create(q).Error
	})
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

func GetQuotation(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Quotation, error) {
	var q model.Quotation
	if err := db.WithContext(ctx).
		Where("quotation_id = ?", id).
		Take(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuotationNotFound
		}
		return nil, err
	}
	q.QuotationLineItems = datatypes.NewJSONType(MigrateLineItems(q.QuotationLineItems.Data()))
	return &q, nil
}

// UpdateQuotation mengedit isi quotation selama belum final.
func UpdateQuotation(ctx context.Context, db *gorm.DB, id uuid.UUID, title, description *string, items []model.LineItem) (*model.Quotation, []string, error) {
	var q model.Quotation
	if err := db.WithContext(ctx).
		Where("quotation_id = ?", id).
		Take(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuotationNotFound
		}
		return nil, nil, err
	}
	if q.QuotationStatus.IsTerminal() {
		return nil, nil, ErrQuotationFinalized
	}

	if title != nil {
		q.QuotationTitle = *title
	}
	if description != nil {
		q.QuotationDescription = *description
	}

	var warnings []string
	if items != nil {
		prepared, w, err := prepareLineItems(items)
		if err != nil {
			return nil, nil, err
		}
		warnings = w
		q.QuotationLineItems = datatypes.NewJSONType(prepared)
		q.QuotationTotalPaise = model.TotalPaise(prepared)
	}

	if err := db.WithContext(ctx).Save(&q).Error; err != nil {
		return nil, nil, err
	}
	return &q, warnings, nil
}

// Transition memajukan lifecycle quotation. Agreed membuat AR entry,
// Rejected mem-void entry yang sempat ada. Semua dalam satu transaksi.
func Transition(ctx context.Context, db *gorm.DB, id uuid.UUID, to model.QuotationStatus) (*model.Quotation, error) {
	var q model.Quotation
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("quotation_id = ?", id).
			Take(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuotationNotFound
			}
			return err
		}

		if !model.CanTransition(q.QuotationStatus, to) {
			if q.QuotationStatus.IsTerminal() {
				return ErrQuotationFinalized
			}
			return ErrInvalidTransition
		}

		now := time.Now()
		q.QuotationStatus = to
		switch to {
		case model.QuotationStatusAcceptedByStudent:
			q.QuotationStudentAcceptedAt = &now
		case model.QuotationStatusAgreed:
			q.QuotationAgreedAt = &now
		}

		if err := tx.Save(&q).Error; err != nil {
			return err
		}

		switch to {
		case model.QuotationStatusAgreed:
			if _, err := ledgerservice.CreateEntry(tx, &q); err != nil {
				return err
			}
		case model.QuotationStatusRejected:
			if err := ledgerservice.VoidByQuotation(tx, q.QuotationID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}
