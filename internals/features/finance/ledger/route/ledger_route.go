// file: internals/features/finance/ledger/route/ledger_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerapi "lyceum_backend/internals/features/finance/ledger/controller"
)

/*
Finance routes (staff/admin) — AR read surface.
Urutan penting: /summary harus terdaftar sebelum /:param.
*/
func LedgerRoutes(finance fiber.Router, db *gorm.DB) {
	h := &ledgerapi.LedgerController{DB: db}

	grp := finance.Group("/ledger")
	{
		grp.Get("/", h.List)
		grp.Get("/summary", h.Summary)
		grp.Get("/quotation/:quotation_id", h.GetByQuotation)
		grp.Get("/quotation/:quotation_id/unlocked-categories", h.UnlockedCategories)
		grp.Get("/:ledger_entry_id/events", h.ListEvents)
	}

	finance.Get("/contacts/:contact_id/ledger", h.ListForContact)
}
