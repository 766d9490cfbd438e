// README: Tariff and payment method definitions with fixed rates.
package pricing

type Tariff string

const (
	TariffEconomy  Tariff = "ECONOMY"
	TariffComfort  Tariff = "COMFORT"
	TariffBusiness Tariff = "BUSINESS"
)

// Rate is the fixed pricing of a tariff in whole roubles.
type Rate struct {
	BaseFare int64
	PerKm    int64
}

var rates = map[Tariff]Rate{
	TariffEconomy:  {BaseFare: 100, PerKm: 25},
	TariffComfort:  {BaseFare: 150, PerKm: 35},
	TariffBusiness: {BaseFare: 250, PerKm: 50},
}

// RateFor returns the rate table entry for a tariff. Unknown tariffs fall
// back to economy so a corrupt remote document can never produce a zero fare.
func RateFor(t Tariff) Rate {
	if r, ok := rates[t]; ok {
		return r
	}
	return rates[TariffEconomy]
}

func (t Tariff) Valid() bool {
	_, ok := rates[t]
	return ok
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentSBP  PaymentMethod = "SBP"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentSBP
}
