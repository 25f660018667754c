package model

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

type Reserve int

const (
	ReserveUnknown Reserve = iota
	Hirschfelden
	LaytonLake
	MedvedTaigaNationalPark
	VurhongaSavanna
	ParqueFernando
	YukonValley
	CuatroColinasGameReserve
	SilverRidgePeaks
	TeAwaroaNationalPark
	RanchoDelArroyo
	MississippiAcresPreserve
	RevontuliCoast
	NewEnglandMountains
	EmeraldCoast
	reserveCount
)

var reserveNames = [reserveCount]string{
	ReserveUnknown:           "Unknown",
	Hirschfelden:             "Hirschfelden",
	LaytonLake:               "Layton Lake",
	MedvedTaigaNationalPark:  "Medved Taiga National Park",
	VurhongaSavanna:          "Vurhonga Savanna",
	ParqueFernando:           "Parque Fernando",
	YukonValley:              "Yukon Valley",
	CuatroColinasGameReserve: "Cuatro Colinas Game Reserve",
	SilverRidgePeaks:         "Silver Ridge Peaks",
	TeAwaroaNationalPark:     "Te Awaroa National Park",
	RanchoDelArroyo:          "Rancho Del Arroyo",
	MississippiAcresPreserve: "Mississippi Acres Preserve",
	RevontuliCoast:           "Revontuli Coast",
	NewEnglandMountains:      "New England Mountains",
	EmeraldCoast:             "Emerald Coast",
}

// reserveIdents holds the in-memory identifiers that do not follow from the
// display name.
var reserveIdents = map[Reserve]string{
	VurhongaSavanna: "vurhonga_savannah",
}

var (
	reserveByIdent = make(map[string]Reserve, reserveCount)
	reserveByName  = make(map[string]Reserve, reserveCount)
)

func init() {
	for r := Reserve(1); r < reserveCount; r++ {
		reserveByIdent[r.Ident()] = r
		reserveByName[strings.ToLower(reserveNames[r])] = r
	}
}

func (r Reserve) String() string {
	if r < 0 || r >= reserveCount {
		return reserveNames[ReserveUnknown]
	}
	return reserveNames[r]
}

func (r Reserve) Ident() string {
	if id, ok := reserveIdents[r]; ok {
		return id
	}
	return identifier(r.String())
}

func (r Reserve) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reserve) UnmarshalText(b []byte) error {
	*r = ParseReserveName(string(b))
	return nil
}

func ParseReserve(raw string) Reserve {
	if r, ok := reserveByIdent[raw]; ok {
		return r
	}
	return ReserveUnknown
}

func ParseReserveName(name string) Reserve {
	if r, ok := reserveByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return r
	}
	return ParseReserve(name)
}

func ClosestReserve(raw string) Reserve {
	best, bestDist := ReserveUnknown, -1
	for ident, r := range reserveByIdent {
		d := levenshtein.ComputeDistance(raw, ident)
		if bestDist < 0 || d < bestDist || (d == bestDist && r < best) {
			best, bestDist = r, d
		}
	}
	return best
}
