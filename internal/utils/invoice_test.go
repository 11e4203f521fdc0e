package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateInvoiceNumber(t *testing.T) {
	orderID := uuid.MustParse("1a2b3c4d-0000-4000-8000-000000000001")
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("WIB", 7*3600))

	t.Run("Format", func(t *testing.T) {
		inv := GenerateInvoiceNumber(now, orderID)

		parts := strings.Split(inv, "-")
		if assert.Len(t, parts, 3) {
			assert.Equal(t, "INV", parts[0])
			assert.Equal(t, "20240309", parts[1], "date is taken in UTC")
			assert.Equal(t, "1A2B3C4D", parts[2])
		}
	})

	t.Run("DifferentOrders", func(t *testing.T) {
		other := uuid.MustParse("ffffffff-0000-4000-8000-000000000001")
		assert.NotEqual(t, GenerateInvoiceNumber(now, orderID), GenerateInvoiceNumber(now, other))
	})
}
