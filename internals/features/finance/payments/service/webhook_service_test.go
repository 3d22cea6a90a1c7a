package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryIDFromOrderID(t *testing.T) {
	entryID := uuid.MustParse("7f9c24e8-3b2a-4f1d-9e6b-0a1c2d3e4f5a")
	orderID := fmt.Sprintf("AR-%s-1756500000", entryID)

	got, err := entryIDFromOrderID(orderID)
	require.NoError(t, err)
	assert.Equal(t, entryID, got)
}

func TestEntryIDFromOrderIDRejectsGarbage(t *testing.T) {
	for _, orderID := range []string{
		"",
		"DONATION-123",
		"AR-not-a-uuid-at-all",
		"AR-7f9c24e8-3b2a-4f1d-9e6b", // uuid terpotong
	} {
		_, err := entryIDFromOrderID(orderID)
		assert.Error(t, err, "order_id %q", orderID)
	}
}

func TestVerifyMidtransSignature(t *testing.T) {
	serverKey := "SB-Mid-server-test"
	body := map[string]interface{}{
		"order_id":     "AR-7f9c24e8-3b2a-4f1d-9e6b-0a1c2d3e4f5a-1756500000",
		"status_code":  "200",
		"gross_amount": "40000.00",
	}
	sum := sha512.Sum512([]byte("AR-7f9c24e8-3b2a-4f1d-9e6b-0a1c2d3e4f5a-1756500000" + "200" + "40000.00" + serverKey))
	body["signature_key"] = hex.EncodeToString(sum[:])

	assert.True(t, VerifyMidtransSignature(body, serverKey))

	body["signature_key"] = "deadbeef"
	assert.False(t, VerifyMidtransSignature(body, serverKey))

	assert.False(t, VerifyMidtransSignature(map[string]interface{}{}, serverKey))
}

func TestParsePaise(t *testing.T) {
	assert.Equal(t, int64(40_000), parsePaise(float64(40000)))
	assert.Equal(t, int64(40_000), parsePaise("40000.00"))
	assert.Equal(t, int64(0), parsePaise("not-a-number"))
	assert.Equal(t, int64(0), parsePaise(nil))
}
