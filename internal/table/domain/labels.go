package domain

import "strings"

// Phase identifies the table lifecycle label.
type Phase string

const (
	PhaseUnspecified Phase = ""
	PhaseNotStarted  Phase = "not_started"
	PhaseStarted     Phase = "started"
	PhaseFinished    Phase = "finished"
)

// Role identifies the seat role label.
type Role string

const (
	RoleUnspecified Role = ""
	RoleAdmin       Role = "admin"
	RoleWaiting     Role = "waiting"
	RoleConfirmed   Role = "confirmed"
)

// Terrain identifies the tile terrain label.
type Terrain string

const (
	TerrainUnspecified Terrain = ""
	TerrainWood        Terrain = "wood"
	TerrainWheat       Terrain = "wheat"
	TerrainSheep       Terrain = "sheep"
	TerrainBrick       Terrain = "brick"
	TerrainOre         Terrain = "ore"
	TerrainDesert      Terrain = "desert"
)

// NormalizePhase parses a phase label into a canonical value.
func NormalizePhase(value string) (Phase, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return PhaseUnspecified, false
	}
	switch strings.ToUpper(trimmed) {
	case "NOT_STARTED", "TABLE_PHASE_NOT_STARTED":
		return PhaseNotStarted, true
	case "STARTED", "TABLE_PHASE_STARTED":
		return PhaseStarted, true
	case "FINISHED", "TABLE_PHASE_FINISHED":
		return PhaseFinished, true
	default:
		return PhaseUnspecified, false
	}
}

// NormalizeRole parses a role label into a canonical value.
func NormalizeRole(value string) (Role, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return RoleUnspecified, false
	}
	switch strings.ToUpper(trimmed) {
	case "ADMIN", "SEAT_ROLE_ADMIN":
		return RoleAdmin, true
	case "WAITING", "SEAT_ROLE_WAITING":
		return RoleWaiting, true
	case "CONFIRMED", "SEAT_ROLE_CONFIRMED":
		return RoleConfirmed, true
	default:
		return RoleUnspecified, false
	}
}

// NormalizeTerrain parses a terrain label into a canonical value.
func NormalizeTerrain(value string) (Terrain, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return TerrainUnspecified, false
	}
	switch strings.ToUpper(trimmed) {
	case "WOOD", "TILE_TERRAIN_WOOD":
		return TerrainWood, true
	case "WHEAT", "TILE_TERRAIN_WHEAT":
		return TerrainWheat, true
	case "SHEEP", "TILE_TERRAIN_SHEEP":
		return TerrainSheep, true
	case "BRICK", "TILE_TERRAIN_BRICK":
		return TerrainBrick, true
	case "ORE", "TILE_TERRAIN_ORE":
		return TerrainOre, true
	case "DESERT", "TILE_TERRAIN_DESERT":
		return TerrainDesert, true
	default:
		return TerrainUnspecified, false
	}
}

// phaseLabel returns a stable label for a table phase.
func phaseLabel(phase Phase) string {
	switch phase {
	case PhaseNotStarted:
		return "NOT_STARTED"
	case PhaseStarted:
		return "STARTED"
	case PhaseFinished:
		return "FINISHED"
	default:
		return "UNSPECIFIED"
	}
}

// IsEligible reports whether a seat role takes part in the turn order.
func (r Role) IsEligible() bool {
	return r == RoleAdmin || r == RoleConfirmed
}
