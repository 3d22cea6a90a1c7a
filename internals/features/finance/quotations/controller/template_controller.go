// file: internals/features/finance/quotations/controller/template_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lyceum_backend/internals/features/finance/quotations/dto"
	model "lyceum_backend/internals/features/finance/quotations/model"
	service "lyceum_backend/internals/features/finance/quotations/service"
	helper "lyceum_backend/internals/helpers"
)

var validate = validator.New()

type TemplateController struct {
	DB *gorm.DB
}

// POST /quotation-templates
func (h *TemplateController) Create(c *fiber.Ctx) error {
	var body dto.TemplateCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	tpl := &model.QuotationTemplate{
		QuotationTemplateTitle:       body.Title,
		QuotationTemplateDescription: body.Description,
		QuotationTemplateLineItems:   datatypes.NewJSONType(dto.LineItemsToModel(body.LineItems)),
	}

	warnings, err := service.CreateTemplate(c.UserContext(), h.DB, tpl)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Template berhasil dibuat", dto.ToTemplateResponse(*tpl, warnings))
}

// PATCH /quotation-templates/:id
func (h *TemplateController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var body dto.TemplateUpdateDTO
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

	tpl, warnings, err := service.UpdateTemplate(c.UserContext(), h.DB, id, body.Title, body.Description, items)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Template berhasil diubah", dto.ToTemplateResponse(*tpl, warnings))
}

// GET /quotation-templates/:id
func (h *TemplateController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	tpl, err := service.GetTemplate(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", dto.ToTemplateResponse(*tpl, nil))
}

// GET /quotation-templates
func (h *TemplateController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.QuotationTemplate{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var tpls []model.QuotationTemplate
	if err := q.Order("quotation_template_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&tpls).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	items := make([]dto.TemplateResponse, 0, len(tpls))
	for _, t := range tpls {
		// migrasi bentuk legacy saat load (idempoten)
		t.QuotationTemplateLineItems = datatypes.NewJSONType(service.MigrateLineItems(t.QuotationTemplateLineItems.Data()))
		items = append(items, dto.ToTemplateResponse(t, nil))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      items,
		"pagination": helper.BuildPagination(p, total, len(items)),
	})
}

// DELETE /quotation-templates/:id
func (h *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}
	if err := service.DeleteTemplate(c.UserContext(), h.DB, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Template berhasil dihapus", nil)
}
