// file: internals/features/finance/quotations/route/quotation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quotationapi "lyceum_backend/internals/features/finance/quotations/controller"
)

/*
Admin routes — template authoring admin-only (stage config menggate
dokumen, jangan dibuka ke staff biasa).
*/
func TemplateAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &quotationapi.TemplateController{DB: db}

	grp := admin.Group("/quotation-templates")
	{
		grp.Post("/", h.Create)
		grp.Get("/", h.List)
		grp.Get("/:id", h.Get)
		grp.Patch("/:id", h.Update)
		grp.Delete("/:id", h.Delete)
	}
}

/*
Finance routes (staff/admin) — quotation lifecycle.
*/
func QuotationRoutes(finance fiber.Router, db *gorm.DB) {
	h := &quotationapi.QuotationController{DB: db}

	grp := finance.Group("/quotations")
	{
		grp.Post("/", h.Create)
		grp.Get("/", h.List)
		grp.Get("/:id", h.Get)
		grp.Patch("/:id", h.Update)
		grp.Post("/:id/transition", h.Transition)
	}
}
