// file: internals/features/finance/ledger/controller/ledger_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lyceum_backend/internals/features/finance/ledger/dto"
	model "lyceum_backend/internals/features/finance/ledger/model"
	service "lyceum_backend/internals/features/finance/ledger/service"
	helper "lyceum_backend/internals/helpers"
)

type LedgerController struct {
	DB *gorm.DB
}

// -----------------------------------------
// List (GET /ledger)
// Query filters: contact_id, status, page, per_page
// -----------------------------------------
func (h *LedgerController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.LedgerEntry{})

	if v := c.Query("contact_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("ledger_entry_contact_id = ?", id)
		}
	}
	if v := c.Query("status"); v != "" {
		// Outstanding|Partial|Paid|Voided
		q = q.Where("ledger_entry_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var entries []model.LedgerEntry
	if err := q.Order("ledger_entry_agreed_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&entries).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      dto.ToLedgerEntryResponses(entries),
		"pagination": helper.BuildPagination(p, total, len(entries)),
	})
}

// GET /ledger/summary?contact_ids=a,b,c
func (h *LedgerController) Summary(c *fiber.Ctx) error {
	var ids []uuid.UUID
	if raw := strings.TrimSpace(c.Query("contact_ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(part)); err == nil {
				ids = append(ids, id)
			}
		}
	}

	sum, err := service.SummaryForContacts(c.UserContext(), h.DB, ids)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", sum)
}

// GET /ledger/quotation/:quotation_id
func (h *LedgerController) GetByQuotation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("quotation_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "quotation_id tidak valid")
	}

	entry, err := service.GetByQuotation(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", dto.ToLedgerEntryResponse(*entry))
}

// GET /contacts/:contact_id/ledger
func (h *LedgerController) ListForContact(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("contact_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "contact_id tidak valid")
	}

	entries, err := service.ListForContact(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.ToLedgerEntryResponses(entries))
}

// GET /ledger/quotation/:quotation_id/unlocked-categories
// UnlockState derived on demand — tidak pernah dipersist.
func (h *LedgerController) UnlockedCategories(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("quotation_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "quotation_id tidak valid")
	}

	entry, err := service.GetByQuotation(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := entry.LedgerEntryLineItems.Data()
	resp := dto.UnlockStateResponse{
		QuotationID:        entry.LedgerEntryQuotationID,
		PaidPaise:          entry.LedgerEntryPaidPaise,
		UnlockedCategories: service.UnlockedCategories(items, entry.LedgerEntryPaidPaise),
		SatisfiedStageIDs:  service.SatisfiedStageIDs(items, entry.LedgerEntryPaidPaise),
	}
	return helper.Success(c, "OK", resp)
}

// GET /ledger/:ledger_entry_id/events
func (h *LedgerController) ListEvents(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("ledger_entry_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ledger_entry_id tidak valid")
	}

	events, err := service.ListEvents(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.LedgerEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.ToLedgerEventResponse(ev))
	}
	return helper.Success(c, "OK", out)
}
