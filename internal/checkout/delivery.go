package checkout

import (
	"github.com/shopspring/decimal"
)

// DeliveryOption identifies one of the fixed shipping tiers.
type DeliveryOption string

const (
	DeliveryEconomic DeliveryOption = "economic"
	DeliveryStandard DeliveryOption = "standard"
	DeliveryExpress  DeliveryOption = "express"
)

type deliveryTier struct {
	Name string
	Fee  decimal.Decimal
	Time string
}

var deliveryTiers = map[DeliveryOption]deliveryTier{
	DeliveryEconomic: {Name: "Econômica", Fee: decimal.NewFromFloat(8.00), Time: "7-10 dias úteis"},
	DeliveryStandard: {Name: "Padrão", Fee: decimal.NewFromFloat(15.00), Time: "3-5 dias úteis"},
	DeliveryExpress:  {Name: "Expressa", Fee: decimal.NewFromFloat(25.00), Time: "1-2 dias úteis"},
}

// IsValid reports whether the option is one of the known tiers.
func (d DeliveryOption) IsValid() bool {
	_, ok := deliveryTiers[d]
	return ok
}

// Fee returns the shipping price for the tier. Unknown options fall back
// to the standard tier, matching the storefront default.
func (d DeliveryOption) Fee() decimal.Decimal {
	if tier, ok := deliveryTiers[d]; ok {
		return tier.Fee
	}
	return deliveryTiers[DeliveryStandard].Fee
}

// Time returns the delivery window label for the tier.
func (d DeliveryOption) Time() string {
	if tier, ok := deliveryTiers[d]; ok {
		return tier.Time
	}
	return deliveryTiers[DeliveryStandard].Time
}

// DisplayName returns the customer-facing tier name.
func (d DeliveryOption) DisplayName() string {
	if tier, ok := deliveryTiers[d]; ok {
		return tier.Name
	}
	return deliveryTiers[DeliveryStandard].Name
}

// PaymentMethod identifies one of the accepted payment methods.
type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentPix    PaymentMethod = "pix"
)

type paymentInfo struct {
	Name string
	Desc string
}

var paymentMethods = map[PaymentMethod]paymentInfo{
	PaymentCredit: {Name: "Cartão de Crédito", Desc: "Visa, Mastercard, Elo"},
	PaymentDebit:  {Name: "Cartão de Débito", Desc: "Débito à vista"},
	PaymentPix:    {Name: "PIX", Desc: "Pagamento instantâneo"},
}

// IsValid reports whether the method is accepted.
func (p PaymentMethod) IsValid() bool {
	_, ok := paymentMethods[p]
	return ok
}

// DisplayName returns the customer-facing method name.
func (p PaymentMethod) DisplayName() string {
	if info, ok := paymentMethods[p]; ok {
		return info.Name
	}
	return paymentMethods[PaymentCredit].Name
}

// Description returns the customer-facing method detail line.
func (p PaymentMethod) Description() string {
	if info, ok := paymentMethods[p]; ok {
		return info.Desc
	}
	return paymentMethods[PaymentCredit].Desc
}
