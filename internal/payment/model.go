package payment

import "github.com/shopspring/decimal"

const (
	StatusCompleted = "COMPLETED"
	ProviderPayPal  = "PayPal"
	DefaultCurrency = "USD"
)

type CreateOrderRequest struct {
	ReferenceID string
	Amount      decimal.Decimal
	Currency    string
}

// Intent is a provider-side order the buyer still has to approve.
type Intent struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ApproveURL string `json:"approveUrl,omitempty"`
}

// Capture is the provider's answer to a capture request. Amount sums the
// completed captures across purchase units.
type Capture struct {
	ID         string
	Status     string
	PayerEmail string
	Amount     decimal.Decimal
	Currency   string
}

func (c *Capture) Completed() bool {
	return c != nil && c.Status == StatusCompleted
}

type checkoutOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type purchaseUnit struct {
	ReferenceID string `json:"reference_id"`
	InvoiceID   string `json:"invoice_id"`
	Amount      amount `json:"amount"`
}

type capturedUnit struct {
	Payments struct {
		Captures []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Amount amount `json:"amount"`
		} `json:"captures"`
	} `json:"payments"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type checkoutOrderResponse struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Links         []link         `json:"links"`
	PurchaseUnits []capturedUnit `json:"purchase_units,omitempty"`
	Payer         *struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer,omitempty"`
}

type link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}
