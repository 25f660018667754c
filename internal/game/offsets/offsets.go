// Package offsets holds the memory layout of the game build this tool was
// calibrated against. When the game updates, this is the only file that
// should need to change.
package offsets

import "github.com/sjzar/trophylodge/internal/game/memory"

const ProcessName = "theHunterCotW_F.exe"

// Chains resolved from the module base address.
var (
	Harvest = memory.Chain{Name: "harvest", Offsets: []uint64{0x023D1EF0}, Tail: 0x280}
	Shot    = memory.Chain{Name: "shot", Offsets: []uint64{0x023C9B78, 0x30, 0xD8, 0x260}}
	User    = memory.Chain{Name: "user", Offsets: []uint64{0x023D2A40, 0x18}}

	FurTableA  = memory.Chain{Name: "fur_a", Offsets: []uint64{0x023CE8A0}}
	FurTableB  = memory.Chain{Name: "fur_b", Offsets: []uint64{0x023CE8B8}}
	FurStrings = memory.Chain{Name: "fur_strings", Offsets: []uint64{0x023CE8D0}}
)

// Harvest record, relative to the resolved harvest base.
const (
	HarvestSpecies      uint64 = 0x0 // inline identifier
	HarvestGender       uint64 = 0x20
	HarvestWeight       uint64 = 0x24
	HarvestTracking     uint64 = 0x28
	HarvestXP           uint64 = 0x34
	HarvestCash         uint64 = 0x38
	HarvestScore        uint64 = 0x3C
	HarvestIntegrity    uint64 = 0x4C
	HarvestFurKey       uint64 = 0x50
	HarvestReserve      uint64 = 0x60 // pointer to identifier
	HarvestRating       uint64 = 0xAC
	HarvestSessionScore uint64 = 0xB0
)

// Shot record, relative to the resolved shot base.
const (
	ShotWeaponScore uint64 = 0x18
	ShotDistance    uint64 = 0x1C
	ShotDamage      uint64 = 0x20
)

// UserName is the display name offset relative to the resolved user base.
const UserName uint64 = 0x0

// FurTable describes one keyed lookup table scanned record by record.
type FurTable struct {
	Name       string
	Chain      memory.Chain
	Stride     uint64
	MaxRecords int
	KeyOffset  uint64
	NameOffset uint64
}

// FurTables are probed in order.
var FurTables = []FurTable{
	{Name: "A", Chain: FurTableA, Stride: 0x18, MaxRecords: 0x200, KeyOffset: 0x0, NameOffset: 0x8},
	{Name: "B", Chain: FurTableB, Stride: 0x10, MaxRecords: 0x80, KeyOffset: 0x4, NameOffset: 0xC},
}

const (
	// MinHarvestBase is the lowest harvest base treated as loaded game state.
	MinHarvestBase memory.Address = 0x10000

	// NoSession is the session score read when no hunt is in progress or
	// the process has gone away.
	NoSession int32 = 0

	// ShotDamageScale converts the stored damage fraction to a percentage.
	ShotDamageScale float32 = 100
)
