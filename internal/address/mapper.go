package address

import "strings"

func ToShippingAddress(in UpdateAddressInput) ShippingAddress {
	return ShippingAddress{
		FullName:      strings.TrimSpace(in.FullName),
		StreetAddress: strings.TrimSpace(in.StreetAddress),
		City:          strings.TrimSpace(in.City),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Country:       strings.TrimSpace(in.Country),
		Lat:           in.Lat,
		Lng:           in.Lng,
	}
}
