// Package geo — district lookup for the Glazov city map.
package geo

import "glazovcab/internal/types"

type District string

const (
	DistrictCenter     District = "center"
	DistrictGoncharka  District = "goncharka"
	DistrictMashzavod  District = "mashzavod"
	DistrictTorfozavod District = "torfozavod"
	DistrictOktyabrsky District = "oktyabrsky"
	DistrictZvezdny    District = "zvezdny"
	DistrictSloboda    District = "sloboda"
	DistrictOther      District = "other"
)

// DetectDistrict maps a coordinate onto one of the known city districts.
// Bounding boxes are approximate; anything outside them is DistrictOther.
func DetectDistrict(p types.Point) District {
	switch {
	case within(p, 58.135, 58.145, 52.650, 52.670):
		return DistrictCenter
	case within(p, 58.125, 58.135, 52.640, 52.660):
		return DistrictGoncharka
	case within(p, 58.145, 58.160, 52.670, 52.700):
		return DistrictMashzavod
	case within(p, 58.120, 58.130, 52.620, 52.640):
		return DistrictTorfozavod
	case within(p, 58.130, 58.140, 52.680, 52.710):
		return DistrictOktyabrsky
	case within(p, 58.150, 58.165, 52.640, 52.660):
		return DistrictZvezdny
	case within(p, 58.110, 58.125, 52.650, 52.670):
		return DistrictSloboda
	}
	return DistrictOther
}

func within(p types.Point, latMin, latMax, lngMin, lngMax float64) bool {
	return p.Lat >= latMin && p.Lat <= latMax && p.Lng >= lngMin && p.Lng <= lngMax
}
