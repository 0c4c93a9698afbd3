package orders

import (
	"burger-palace-api/models"

	"github.com/shopspring/decimal"
)

var (
	TaxRate               = decimal.RequireFromString("0.10")
	StandardDeliveryFee   = decimal.RequireFromString("4.99")
	FreeDeliveryThreshold = decimal.NewFromInt(30)
)

// CostBreakdown is derived from an order or cart total on demand and never stored
type CostBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// Breakdown applies 10% tax and a 4.99 delivery fee waived above 30 or for pickup
func Breakdown(total float64, orderType models.OrderType) CostBreakdown {
	subtotal := models.Money(total)
	tax := subtotal.Mul(TaxRate)

	fee := decimal.Zero
	if orderType == models.OrderTypeDelivery && !subtotal.GreaterThan(FreeDeliveryThreshold) {
		fee = StandardDeliveryFee
	}

	return CostBreakdown{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		GrandTotal:  subtotal.Add(tax).Add(fee),
	}
}

// DisplayBreakdown carries the breakdown rounded to cents
type DisplayBreakdown struct {
	Subtotal     string `json:"subtotal"`
	Tax          string `json:"tax"`
	DeliveryFee  string `json:"delivery_fee"`
	GrandTotal   string `json:"grand_total"`
	FreeDelivery bool   `json:"free_delivery"`
}

func (b CostBreakdown) Display() DisplayBreakdown {
	return DisplayBreakdown{
		Subtotal:     b.Subtotal.StringFixed(2),
		Tax:          b.Tax.StringFixed(2),
		DeliveryFee:  b.DeliveryFee.StringFixed(2),
		GrandTotal:   b.GrandTotal.StringFixed(2),
		FreeDelivery: b.DeliveryFee.IsZero(),
	}
}
