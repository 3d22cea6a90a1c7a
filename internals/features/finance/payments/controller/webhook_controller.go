// file: internals/features/finance/payments/controller/webhook_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lyceum_backend/internals/configs"
	"lyceum_backend/internals/features/finance/payments/service"
	helper "lyceum_backend/internals/helpers"
)

type WebhookController struct {
	DB *gorm.DB
}

func NewWebhookController(db *gorm.DB) *WebhookController {
	return &WebhookController{DB: db}
}

// 🟢 HANDLE MIDTRANS WEBHOOK: normalisasi notifikasi → event transaksi
func (h *WebhookController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid webhook payload")
	}

	if !service.VerifyMidtransSignature(body, configs.MidtransServerKey) {
		log.Printf("[WEBHOOK] invalid signature order_id=%v", body["order_id"])
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	out, err := service.HandleMidtransNotification(c.UserContext(), h.DB, body)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Midtrans hanya peduli 200; body tambahan untuk debugging
	return helper.Success(c, "Notification processed", fiber.Map{
		"applied": out.Applied,
	})
}
