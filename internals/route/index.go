// file: internals/route/index.go
package route

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lyceum_backend/internals/configs"
	"lyceum_backend/internals/constants"
	ledgerroute "lyceum_backend/internals/features/finance/ledger/route"
	paymentroute "lyceum_backend/internals/features/finance/payments/route"
	quotationroute "lyceum_backend/internals/features/finance/quotations/route"
	"lyceum_backend/internals/middlewares"
	authmw "lyceum_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	public.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// Webhook gateway: tanpa JWT, dilindungi signature + limiter
	webhook := app.Group("/api/public", middlewares.WebhookRateLimiter())
	paymentroute.WebhookRoutes(webhook, db)

	// ===================== FINANCE (staff + admin) =====================
	log.Println("[INFO] Setting up FINANCE group (Auth + RoleCheck)...")
	finance := app.Group("/api/finance",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authmw.RequireRoles("keuangan", constants.FinanceRoles...),
	)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + admin only)...")
	admin := app.Group("/api/admin",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authmw.RequireRoles("template penawaran", constants.TemplateAuthorRoles...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Quotation routes...")
	quotationroute.TemplateAdminRoutes(admin, db)
	quotationroute.QuotationRoutes(finance, db)

	log.Println("[INFO] Mounting Ledger routes...")
	ledgerroute.LedgerRoutes(finance, db)

	log.Println("[INFO] Mounting Payment routes...")
	paymentroute.PaymentRoutes(finance, db)
}
