package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	lmodel "lyceum_backend/internals/features/finance/ledger/model"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

/* =========================================================
   Generate Snap Token

   Checkout selalu untuk sisa tagihan entry (remaining), bukan
   total: partial payment sebelumnya sudah terhitung di paid.
   OrderID memuat entry id supaya webhook bisa balik ke entry.
========================================================= */

func GenerateSnapToken(entry *lmodel.LedgerEntry, cust CustomerInput) (string, string, string, error) {
	if entry == nil {
		return "", "", "", errors.New("ledger entry is required")
	}
	if !entry.IsOpen() {
		return "", "", "", errors.New("ledger entry is not open for payment")
	}
	remaining := entry.RemainingPaise()
	if remaining <= 0 {
		return "", "", "", errors.New("nothing remaining to pay")
	}

	orderID := fmt.Sprintf("AR-%s-%d", entry.LedgerEntryID.String(), time.Now().Unix())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: remaining,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       entry.LedgerEntryQuotationNumber,
				Price:    remaining,
				Qty:      1,
				Name:     truncate("Consultancy fee "+entry.LedgerEntryQuotationNumber, 50),
				Category: "Consultancy",
			},
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", "", err
	}
	return resp.Token, resp.RedirectURL, orderID, nil
}

/* =========================================================
   Utils
========================================================= */

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func parsePaise(v interface{}) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return int64(f)
	default:
		return 0
	}
}
