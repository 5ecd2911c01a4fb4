// Package marketdata fetches market listings over REST and maps them to assets.
package marketdata

import "github.com/pthm-cable/bubblefield/components"

// Record mirrors one element of the /coins/markets response.
// Numeric fields are pointers because the API returns null for missing data.
type Record struct {
	ID          string   `json:"id"`
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Price       *float64 `json:"current_price"`
	MarketCap   *float64 `json:"market_cap"`
	TotalVolume *float64 `json:"total_volume"`
	Change24h   *float64 `json:"price_change_percentage_24h_in_currency"`
	Change7d    *float64 `json:"price_change_percentage_7d_in_currency"`
	Change30d   *float64 `json:"price_change_percentage_30d_in_currency"`
}

// Asset maps the record into display units. Missing numbers become 0.
func (r Record) Asset() components.Asset {
	return components.Asset{
		ID:                r.ID,
		Symbol:            r.Symbol,
		PriceUSD:          orZero(r.Price),
		MarketCapBillions: orZero(r.MarketCap) / 1e9,
		Volume24hMillions: orZero(r.TotalVolume) / 1e6,
		ChangeDay:         orZero(r.Change24h),
		ChangeWeek:        orZero(r.Change7d),
		ChangeMonth:       orZero(r.Change30d),
	}
}

// Assets maps every record in order.
func Assets(records []Record) []components.Asset {
	out := make([]components.Asset, len(records))
	for i, r := range records {
		out[i] = r.Asset()
	}
	return out
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
