package model

import (
	"fmt"
	"strings"
	"time"
)

type Rating int

const (
	RatingNone Rating = iota
	RatingBronze
	RatingSilver
	RatingGold
	RatingDiamond
	RatingGreatOne
)

var ratingNames = map[Rating]string{
	RatingNone:     "None",
	RatingBronze:   "Bronze",
	RatingSilver:   "Silver",
	RatingGold:     "Gold",
	RatingDiamond:  "Diamond",
	RatingGreatOne: "Great One",
}

// DecodeRating maps the harvest record's rating byte. Codes outside 1-4 are
// great ones; gold has no code of its own in the record.
func DecodeRating(code uint8) Rating {
	switch code {
	case 1:
		return RatingDiamond
	case 2:
		return RatingSilver
	case 3:
		return RatingBronze
	case 4:
		return RatingNone
	default:
		return RatingGreatOne
	}
}

func (r Rating) String() string {
	if n, ok := ratingNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for k, v := range ratingNames {
		if strings.EqualFold(v, s) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown rating %q", s)
}

type Gender int

const (
	Female Gender = iota
	Male
)

func DecodeGender(code int32) Gender {
	if code == 1 {
		return Male
	}
	return Female
}

func (g Gender) String() string {
	if g == Male {
		return "Male"
	}
	return "Female"
}

func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(b []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(b)), "male") {
		*g = Male
	} else {
		*g = Female
	}
	return nil
}

// Trophy is one decoded kill event.
type Trophy struct {
	UUID         string    `json:"uuid"`
	ID           float32   `json:"id"`
	Species      Species   `json:"species"`
	Reserve      Reserve   `json:"reserve"`
	Rating       Rating    `json:"rating"`
	Score        float32   `json:"score"`
	Weight       float32   `json:"weight"`
	Fur          string    `json:"fur"`
	Date         time.Time `json:"date"`
	Gender       Gender    `json:"gender"`
	Cash         int32     `json:"cash"`
	XP           int32     `json:"xp"`
	SessionScore int32     `json:"session_score"`
	Integrity    bool      `json:"integrity"`
	Tracking     float32   `json:"tracking"`
	WeaponScore  float32   `json:"weapon_score"`
	ShotDistance float32   `json:"shot_distance"`
	ShotDamage   float32   `json:"shot_damage"`
	Mods         bool      `json:"mods"`
	Grind        string    `json:"grind,omitempty"`
}

// Identity is the synthetic dedup value. It is a plain sum and two distinct
// kills can collide.
func (t *Trophy) Identity() float32 {
	return t.Score + t.Weight + t.Tracking + float32(t.Cash) + float32(t.XP)
}

// Valid reports whether both species and reserve decoded.
func (t *Trophy) Valid() bool {
	return t.Species != SpeciesUnknown && t.Reserve != ReserveUnknown
}

// Grind is a long running kill goal for one species on one reserve.
type Grind struct {
	Name    string    `json:"name"`
	Species Species   `json:"species"`
	Reserve Reserve   `json:"reserve"`
	Kills   int       `json:"kills"`
	Active  bool      `json:"active"`
	Start   time.Time `json:"start"`
}
