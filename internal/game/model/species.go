package model

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

type Species int

const (
	SpeciesUnknown Species = iota
	AmericanAlligator
	AntelopeJackrabbit
	AxisDeer
	BeciteIbex
	BighornSheep
	BlackBear
	BlackGrouse
	Blackbuck
	BlacktailDeer
	BlueWildebeest
	Bobcat
	CanadaGoose
	CapeBuffalo
	Caribou
	Chamois
	CinnamonTeal
	CollaredPeccary
	Coyote
	EasternCottontailRabbit
	EasternWildTurkey
	EuropeanBison
	EuropeanHare
	EuropeanRabbit
	EurasianBrownBear
	EurasianTeal
	EurasianWigeon
	FallowDeer
	FeralGoat
	FeralPig
	Gemsbok
	Goldeneye
	GrayFox
	GrayWolf
	GredosIbex
	GreenWingTeal
	GreylagGoose
	GrizzlyBear
	HarlequinDuck
	HazelGrouse
	IberianMouflon
	IberianWolf
	Jackrabbit
	LesserKudu
	Lion
	Mallard
	MexicanBobcat
	Moose
	MountainGoat
	MountainHare
	MountainLion
	MuleDeer
	NorthernBobwhiteQuail
	Pheasant
	PlainsBison
	Pronghorn
	Puma
	Raccoon
	RaccoonDog
	RedDeer
	RedFox
	Reindeer
	RioGrandeTurkey
	RockPtarmigan
	RockymountainElk
	RoeDeer
	RondaIbex
	RooseveltElk
	ScrubHare
	SiberianMuskDeer
	SidestripedJackal
	SikaDeer
	SoutheasternIbex
	Springbok
	TuftedDuck
	TundraBeanGoose
	Warthog
	WaterBuffalo
	WesternCapercaillie
	WhitetailDeer
	WildBoar
	WildHog
	WildTurkey
	WillowPtarmigan
	HogDeer
	MagpieGoose
	EasternKangaroo
	SambarDeer
	Banteng
	SaltwaterCrocodile
	StubbleQuail
	JavanRusa
	speciesCount
)

var speciesNames = [speciesCount]string{
	SpeciesUnknown:          "Unknown",
	AmericanAlligator:       "American Alligator",
	AntelopeJackrabbit:      "Antelope Jackrabbit",
	AxisDeer:                "Axis Deer",
	BeciteIbex:              "Beceite Ibex",
	BighornSheep:            "Bighorn Sheep",
	BlackBear:               "Black Bear",
	BlackGrouse:             "Black Grouse",
	Blackbuck:               "Blackbuck",
	BlacktailDeer:           "Blacktail Deer",
	BlueWildebeest:          "Blue Wildebeest",
	Bobcat:                  "Bobcat",
	CanadaGoose:             "Canada Goose",
	CapeBuffalo:             "Cape Buffalo",
	Caribou:                 "Caribou",
	Chamois:                 "Chamois",
	CinnamonTeal:            "Cinnamon Teal",
	CollaredPeccary:         "Collared Peccary",
	Coyote:                  "Coyote",
	EasternCottontailRabbit: "Eastern Cottontail Rabbit",
	EasternWildTurkey:       "Eastern Wild Turkey",
	EuropeanBison:           "European Bison",
	EuropeanHare:            "European Hare",
	EuropeanRabbit:          "European Rabbit",
	EurasianBrownBear:       "Eurasian Brown Bear",
	EurasianTeal:            "Eurasian Teal",
	EurasianWigeon:          "Eurasian Wigeon",
	FallowDeer:              "Fallow Deer",
	FeralGoat:               "Feral Goat",
	FeralPig:                "Feral Pig",
	Gemsbok:                 "Gemsbok",
	Goldeneye:               "Goldeneye",
	GrayFox:                 "Gray Fox",
	GrayWolf:                "Gray Wolf",
	GredosIbex:              "Gredos Ibex",
	GreenWingTeal:           "Green Wing Teal",
	GreylagGoose:            "Greylag Goose",
	GrizzlyBear:             "Grizzly Bear",
	HarlequinDuck:           "Harlequin Duck",
	HazelGrouse:             "Hazel Grouse",
	IberianMouflon:          "Iberian Mouflon",
	IberianWolf:             "Iberian Wolf",
	Jackrabbit:              "Jackrabbit",
	LesserKudu:              "Lesser Kudu",
	Lion:                    "Lion",
	Mallard:                 "Mallard",
	MexicanBobcat:           "Mexican Bobcat",
	Moose:                   "Moose",
	MountainGoat:            "Mountain Goat",
	MountainHare:            "Mountain Hare",
	MountainLion:            "Mountain Lion",
	MuleDeer:                "Mule Deer",
	NorthernBobwhiteQuail:   "Northern Bobwhite Quail",
	Pheasant:                "Pheasant",
	PlainsBison:             "Plains Bison",
	Pronghorn:               "Pronghorn",
	Puma:                    "Puma",
	Raccoon:                 "Raccoon",
	RaccoonDog:              "Raccoon Dog",
	RedDeer:                 "Red Deer",
	RedFox:                  "Red Fox",
	Reindeer:                "Reindeer",
	RioGrandeTurkey:         "Rio Grande Turkey",
	RockPtarmigan:           "Rock Ptarmigan",
	RockymountainElk:        "Rocky Mountain Elk",
	RoeDeer:                 "Roe Deer",
	RondaIbex:               "Ronda Ibex",
	RooseveltElk:            "Roosevelt Elk",
	ScrubHare:               "Scrub Hare",
	SiberianMuskDeer:        "Siberian Musk Deer",
	SidestripedJackal:       "Side Striped Jackal",
	SikaDeer:                "Sika Deer",
	SoutheasternIbex:        "Southeastern Ibex",
	Springbok:               "Springbok",
	TuftedDuck:              "Tufted Duck",
	TundraBeanGoose:         "Tundra Bean Goose",
	Warthog:                 "Warthog",
	WaterBuffalo:            "Water Buffalo",
	WesternCapercaillie:     "Western Capercaillie",
	WhitetailDeer:           "Whitetail Deer",
	WildBoar:                "Wild Boar",
	WildHog:                 "Wild Hog",
	WildTurkey:              "Wild Turkey",
	WillowPtarmigan:         "Willow Ptarmigan",
	HogDeer:                 "Hog Deer",
	MagpieGoose:             "Magpie Goose",
	EasternKangaroo:         "Eastern Kangaroo",
	SambarDeer:              "Sambar Deer",
	Banteng:                 "Banteng",
	SaltwaterCrocodile:      "Saltwater Crocodile",
	StubbleQuail:            "Stubble Quail",
	JavanRusa:               "Javan Rusa",
}

// speciesIdents holds the in-memory identifiers that do not follow from the
// display name.
var speciesIdents = map[Species]string{
	BeciteIbex:        "becite_ibex",
	Pronghorn:         "prong_horn",
	RockymountainElk:  "rockmountain_elk",
	SidestripedJackal: "sidestriped_jackal",
}

var (
	speciesByIdent = make(map[string]Species, speciesCount)
	speciesByName  = make(map[string]Species, speciesCount)
)

func init() {
	for s := Species(1); s < speciesCount; s++ {
		speciesByIdent[s.Ident()] = s
		speciesByName[strings.ToLower(speciesNames[s])] = s
	}
}

// identifier converts a display name to the lower snake case form the game
// keeps in memory, e.g. "Red Deer" -> "red_deer".
func identifier(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

func (s Species) String() string {
	if s < 0 || s >= speciesCount {
		return speciesNames[SpeciesUnknown]
	}
	return speciesNames[s]
}

// Ident returns the raw in-memory identifier.
func (s Species) Ident() string {
	if id, ok := speciesIdents[s]; ok {
		return id
	}
	return identifier(s.String())
}

func (s Species) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Species) UnmarshalText(b []byte) error {
	*s = ParseSpeciesName(string(b))
	return nil
}

// ParseSpecies matches a raw in-memory identifier exactly. Anything else is
// SpeciesUnknown.
func ParseSpecies(raw string) Species {
	if s, ok := speciesByIdent[raw]; ok {
		return s
	}
	return SpeciesUnknown
}

// ParseSpeciesName accepts the display form, case insensitive. Used for user input.
func ParseSpeciesName(name string) Species {
	if s, ok := speciesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s
	}
	return ParseSpecies(name)
}

// ClosestSpecies returns the known species whose identifier has the smallest
// edit distance to raw.
func ClosestSpecies(raw string) Species {
	best, bestDist := SpeciesUnknown, -1
	for ident, s := range speciesByIdent {
		d := levenshtein.ComputeDistance(raw, ident)
		if bestDist < 0 || d < bestDist || (d == bestDist && s < best) {
			best, bestDist = s, d
		}
	}
	return best
}
