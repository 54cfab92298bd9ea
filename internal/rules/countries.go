package rules

import "strings"

// schengenCountries is the fixed member list used for the 90/180 rule.
// LIE is not on it.
var schengenCountries = []string{
	"AUT", // Austria
	"BEL", // Belgium
	"CZE", // Czech Republic
	"DNK", // Denmark
	"EST", // Estonia
	"FIN", // Finland
	"FRA", // France
	"DEU", // Germany
	"GRC", // Greece
	"HUN", // Hungary
	"ISL", // Iceland
	"ITA", // Italy
	"LVA", // Latvia
	"LTU", // Lithuania
	"LUX", // Luxembourg
	"MLT", // Malta
	"NLD", // Netherlands
	"NOR", // Norway
	"POL", // Poland
	"PRT", // Portugal
	"SVK", // Slovakia
	"SVN", // Slovenia
	"ESP", // Spain
	"SWE", // Sweden
	"CHE", // Switzerland
	"HRV", // Croatia
}

var schengenSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(schengenCountries))
	for _, c := range schengenCountries {
		m[c] = struct{}{}
	}
	return m
}()

// SchengenCountries returns a copy of the Schengen member codes in their
// canonical order.
func SchengenCountries() []string {
	out := make([]string, len(schengenCountries))
	copy(out, schengenCountries)
	return out
}

// IsSchengen reports whether code is a Schengen member. Case-insensitive.
func IsSchengen(code string) bool {
	_, ok := schengenSet[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
