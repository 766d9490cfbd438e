// README: Common value types shared across modules.
package types

// ID is an opaque identifier (order, user, driver, favorite).
type ID string

// Point is a WGS84 coordinate in decimal degrees. Freely copied.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
