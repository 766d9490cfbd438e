// README: User-curated favorite address (label to coordinate mapping).
package favorites

type Address struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Icon    string  `json:"icon"`
}
