// file: internals/features/finance/payments/service/webhook_service.go
package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	lmodel "lyceum_backend/internals/features/finance/ledger/model"
	pmodel "lyceum_backend/internals/features/finance/payments/model"
)

/* =========================================================
   MIDTRANS WEBHOOK

   Notifikasi gateway dinormalisasi jadi row transaksi Income
   Paid lalu dilempar ke reconciler lewat jalur event yang sama
   dengan transaksi manual — webhook TIDAK menulis paid sendiri.
========================================================= */

// VerifyMidtransSignature mengecek signature_key notifikasi:
// sha512(order_id + status_code + gross_amount + serverKey).
func VerifyMidtransSignature(body map[string]interface{}, serverKey string) bool {
	orderID, _ := body["order_id"].(string)
	statusCode, _ := body["status_code"].(string)
	grossAmount, _ := body["gross_amount"].(string)
	signature, _ := body["signature_key"].(string)
	if orderID == "" || signature == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:]) == signature
}

// entryIDFromOrderID: order id checkout berformat AR-<entry-uuid>-<unix>.
func entryIDFromOrderID(orderID string) (uuid.UUID, error) {
	parts := strings.Split(orderID, "-")
	if len(parts) < 7 || parts[0] != "AR" {
		return uuid.Nil, fmt.Errorf("unrecognized order_id format: %s", orderID)
	}
	return uuid.Parse(strings.Join(parts[1:6], "-"))
}

// HandleMidtransNotification memetakan status transaksi gateway:
//   - settlement / capture  → transaksi Paid (credit masuk)
//   - expire / cancel / deny → transaksi void (reverse bila sempat Paid)
//   - pending               → dicatat Pending, kontribusi 0
func HandleMidtransNotification(ctx context.Context, db *gorm.DB, body map[string]interface{}) (ReconcileOutcome, error) {
	orderID, _ := body["order_id"].(string)
	txnStatus, _ := body["transaction_status"].(string)
	if orderID == "" || txnStatus == "" {
		return ReconcileOutcome{}, fiber.NewError(fiber.StatusBadRequest, "order_id and transaction_status are required")
	}

	entryID, err := entryIDFromOrderID(orderID)
	if err != nil {
		return ReconcileOutcome{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var entry lmodel.LedgerEntry
	if err := db.WithContext(ctx).
		Where("ledger_entry_id = ?", entryID).
		Take(&entry).Error; err != nil {
		return ReconcileOutcome{}, fiber.NewError(fiber.StatusNotFound, "ledger entry for order not found")
	}

	evType := TxnEventCreated
	status := pmodel.TransactionStatusPending
	switch txnStatus {
	case "settlement", "capture":
		status = pmodel.TransactionStatusPaid
	case "expire", "cancel", "deny", "failure":
		evType = TxnEventVoided
	case "pending":
		// dicatat saja; kontribusi tetap 0 sampai settlement
	default:
		log.Printf("[WEBHOOK] ignoring transaction_status=%s order=%s", txnStatus, orderID)
		return ReconcileOutcome{Applied: true}, nil
	}

	txn := pmodel.PaymentTransaction{
		TransactionID:           "MT-" + orderID,
		TransactionContactID:    &entry.LedgerEntryContactID,
		TransactionQuotationRef: &entry.LedgerEntryQuotationNumber,
		TransactionAmountPaise:  parsePaise(body["gross_amount"]),
		TransactionKind:         pmodel.TransactionKindIncome,
		TransactionStatus:       status,
	}

	// upsert ke transaction store dulu supaya Rebuild selalu melihat
	// sumber kebenaran yang sama dengan jalur delta
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_id"}},
			UpdateAll: true,
		}).
		Create(&txn).Error; err != nil {
		return ReconcileOutcome{}, err
	}

	return HandleEvent(ctx, db, TxnEvent{Type: evType, Transaction: txn})
}
