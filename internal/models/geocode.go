package models

// GeocodeResult is the outcome of a reverse geocode.
type GeocodeResult struct {
	Coordinate       Coordinate
	FormattedAddress string
	PostalCode       string
}

// Label renders the address line shown under the map.
func (r GeocodeResult) Label() string {
	if r.PostalCode == "" {
		return r.FormattedAddress
	}
	return r.FormattedAddress + ", " + r.PostalCode
}
