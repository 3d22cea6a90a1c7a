// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	lmodel "lyceum_backend/internals/features/finance/ledger/model"
	"lyceum_backend/internals/features/finance/payments/dto"
	pmodel "lyceum_backend/internals/features/finance/payments/model"
	"lyceum_backend/internals/features/finance/payments/service"
	helper "lyceum_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

/* =========================================================
   POST /transaction-events
   Hook dari sistem akunting: satu event lifecycle transaksi.
   Upsert ke transaction store dulu, baru direkonsiliasi.
========================================================= */

func (h *PaymentController) IngestTransactionEvent(c *fiber.Ctx) error {
	var req dto.TransactionEventDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	txn := req.ToModel()
	if req.Type == string(service.TxnEventVoided) {
		// transaksi dibuang di sistem sumber — cermin lokal ikut dibuang
		// supaya Rebuild tidak menghidupkan lagi kontribusinya
		if err := h.DB.WithContext(c.UserContext()).
			Where("transaction_id = ?", txn.TransactionID).
			Delete(&pmodel.PaymentTransaction{}).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to drop voided transaction")
		}
	} else {
		if err := h.DB.WithContext(c.UserContext()).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "transaction_id"}},
				UpdateAll: true,
			}).
			Create(&txn).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to store transaction")
		}
	}

	out, err := service.HandleEvent(c.UserContext(), h.DB, service.TxnEvent{
		Type:        service.TxnEventType(req.Type),
		Transaction: txn,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Transaction event processed", dto.ToReconcileResult(out))
}

/* =========================================================
   POST /checkout — Snap token untuk sisa tagihan entry
========================================================= */

func (h *PaymentController) CreateCheckout(c *fiber.Ctx) error {
	var req dto.CheckoutRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var entry lmodel.LedgerEntry
	if err := h.DB.WithContext(c.UserContext()).
		Where("ledger_entry_id = ?", req.LedgerEntryID).
		Take(&entry).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Ledger entry not found")
	}

	token, redirectURL, orderID, err := service.GenerateSnapToken(&entry, service.CustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return helper.Error(c, fiber.StatusBadGateway, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Checkout created", dto.CheckoutResponseDTO{
		Token:       token,
		RedirectURL: redirectURL,
		OrderID:     orderID,
		AmountPaise: entry.RemainingPaise(),
	})
}

/* =========================================================
   POST /reconciler/rebuild/:ledger_entry_id
   Full recompute — dipakai operator saat event diduga hilang
   atau datang out-of-order.
========================================================= */

func (h *PaymentController) RebuildEntry(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("ledger_entry_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid ledger entry ID")
	}

	entry, err := service.Rebuild(c.UserContext(), h.DB, entryID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Ledger entry rebuilt", dto.ToReconcileResult(service.ReconcileOutcome{
		Applied: true,
		Entry:   entry,
	}))
}

/* =========================================================
   PARKED QUEUE
========================================================= */

// GET /parked-events?resolved=false&reason=
func (h *PaymentController) ListParked(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&pmodel.ParkedEvent{})
	switch strings.ToLower(strings.TrimSpace(c.Query("resolved"))) {
	case "true":
		q = q.Where("parked_event_resolved_at IS NOT NULL")
	case "", "false":
		q = q.Where("parked_event_resolved_at IS NULL")
	}
	if reason := strings.TrimSpace(c.Query("reason")); reason != "" {
		q = q.Where("parked_event_reason = ?", reason)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count parked events")
	}

	var rows []pmodel.ParkedEvent
	if err := q.Order("parked_event_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch parked events")
	}

	out := make([]dto.ParkedEventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToParkedEventResponse(&rows[i]))
	}
	return helper.Success(c, "Parked events fetched", fiber.Map{
		"parked_events": out,
		"pagination":    helper.BuildPagination(p, total, len(out)),
	})
}

// POST /parked-events/:parked_event_id/retry
func (h *PaymentController) RetryParked(c *fiber.Ctx) error {
	parkedID, err := uuid.Parse(c.Params("parked_event_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid parked event ID")
	}

	out, err := service.RetryParked(c.UserContext(), h.DB, parkedID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Parked event not found or already resolved")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Parked event retried", dto.ToReconcileResult(out))
}

// PATCH /parked-events/:parked_event_id/resolve
// Tanda tangan operator: event ditutup manual tanpa diterapkan
// (mis. pembayaran memang bukan untuk ledger mana pun).
func (h *PaymentController) ResolveParked(c *fiber.Ctx) error {
	parkedID, err := uuid.Parse(c.Params("parked_event_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid parked event ID")
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&pmodel.ParkedEvent{}).
		Where("parked_event_id = ?", parkedID).
		Where("parked_event_resolved_at IS NULL").
		Update("parked_event_resolved_at", gorm.Expr("now()"))
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to resolve parked event")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Parked event not found or already resolved")
	}
	return helper.Success(c, "Parked event resolved", fiber.Map{"parked_event_id": parkedID})
}
