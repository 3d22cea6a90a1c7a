// file: internals/features/finance/quotations/controller/quotation_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lyceum_backend/internals/features/finance/quotations/dto"
	model "lyceum_backend/internals/features/finance/quotations/model"
	service "lyceum_backend/internals/features/finance/quotations/service"
	helper "lyceum_backend/internals/helpers"
)

type QuotationController struct {
	DB *gorm.DB
}

// POST /quotations — dari template (template_id) atau dari scratch.
func (h *QuotationController) Create(c *fiber.Ctx) error {
	var body dto.QuotationCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	if body.TemplateID != nil {
		q, err := service.InstantiateFromTemplate(c.UserContext(), h.DB, *body.TemplateID, body.ContactID)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Quotation berhasil dibuat dari template", dto.ToQuotationResponse(*q, nil))
	}

	if body.Title == "" || len(body.LineItems) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "title dan line_items wajib diisi bila tanpa template")
	}

	q := &model.Quotation{
		QuotationContactID:   body.ContactID,
		QuotationTitle:       body.Title,
		QuotationDescription: body.Description,
		QuotationLineItems:   datatypes.NewJSONType(dto.LineItemsToModel(body.LineItems)),
	}
	warnings, err := service.CreateQuotation(c.UserContext(), h.DB, q)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Quotation berhasil dibuat", dto.ToQuotationResponse(*q, warnings))
}

// GET /quotations/:id
func (h *QuotationController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	q, err := service.GetQuotation(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", dto.ToQuotationResponse(*q, nil))
}

// GET /quotations — filter: contact_id, status + paging
func (h *QuotationController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Quotation{})

	if v := c.Query("contact_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("quotation_contact_id = ?", id)
		}
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("quotation_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Quotation
	if err := q.Order("quotation_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	items := make([]dto.QuotationResponse, 0, len(rows))
	for _, row := range rows {
		row.QuotationLineItems = datatypes.NewJSONType(service.MigrateLineItems(row.QuotationLineItems.Data()))
		items = append(items, dto.ToQuotationResponse(row, nil))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      items,
		"pagination": helper.BuildPagination(p, total, len(items)),
	})
}

// PATCH /quotations/:id — ditolak bila sudah Agreed/Rejected.
func (h *QuotationController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var body dto.QuotationUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var items []model.LineItem
	if body.LineItems != nil {
		items = dto.LineItemsToModel(body.LineItems)
	}

	q, warnings, err := service.UpdateQuotation(c.UserContext(), h.DB, id, body.Title, body.Description, items)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Quotation berhasil diubah", dto.ToQuotationResponse(*q, warnings))
}

// POST /quotations/:id/transition
// Agreed membuat AR entry; Rejected mem-void entry yang sempat ada.
func (h *QuotationController) Transition(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var body dto.QuotationTransitionDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	q, err := service.Transition(c.UserContext(), h.DB, id, body.Status)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Status quotation berhasil diubah", dto.ToQuotationResponse(*q, nil))
}
