package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateInvoiceNumber builds the reference sent to the payment gateway for an order:
// INV-YYYYMMDD-<first 8 hex chars of the order id>, upper case.
func GenerateInvoiceNumber(now time.Time, orderID uuid.UUID) string {
	short := strings.ReplaceAll(orderID.String(), "-", "")[:8]
	return fmt.Sprintf("INV-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(short))
}
