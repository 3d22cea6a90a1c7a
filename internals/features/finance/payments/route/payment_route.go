// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentapi "lyceum_backend/internals/features/finance/payments/controller"
)

// Finance routes (staff/admin) — ingest event, checkout, parked queue.
func PaymentRoutes(finance fiber.Router, db *gorm.DB) {
	h := paymentapi.NewPaymentController(db)

	finance.Post("/transaction-events", h.IngestTransactionEvent)
	finance.Post("/checkout", h.CreateCheckout)
	finance.Post("/reconciler/rebuild/:ledger_entry_id", h.RebuildEntry)

	parked := finance.Group("/parked-events")
	{
		parked.Get("/", h.ListParked)
		parked.Post("/:parked_event_id/retry", h.RetryParked)
		parked.Patch("/:parked_event_id/resolve", h.ResolveParked)
	}
}

// Public route — endpoint notifikasi Midtrans (diverifikasi lewat
// signature, bukan JWT).
func WebhookRoutes(public fiber.Router, db *gorm.DB) {
	h := paymentapi.NewWebhookController(db)
	public.Post("/webhooks/midtrans", h.HandleMidtransNotification)
}
