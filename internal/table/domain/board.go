package domain

import (
	"fmt"
	"math/rand"
)

// BoardTileCount is the number of tiles on a generated board.
const BoardTileCount = 19

// BoardPresetStandard selects the fixed beginner layout instead of a shuffle.
const BoardPresetStandard = "standard"

// BoardRowSizes describes the hex rows for presentation. Generation itself
// only walks tiles in index order.
var BoardRowSizes = []int{3, 4, 5, 4, 3}

// Tile is one hex on the board. ID is the 0-based position, Token is the
// number token with 0 meaning none, and HasMarker marks the desert start tile.
type Tile struct {
	ID        int
	Terrain   Terrain
	Token     int
	HasMarker bool
}

// terrainPool returns the fixed terrain multiset for one board.
func terrainPool() []Terrain {
	return []Terrain{
		TerrainWood, TerrainWood, TerrainWood, TerrainWood,
		TerrainWheat, TerrainWheat, TerrainWheat, TerrainWheat,
		TerrainSheep, TerrainSheep, TerrainSheep, TerrainSheep,
		TerrainBrick, TerrainBrick, TerrainBrick,
		TerrainOre, TerrainOre, TerrainOre,
		TerrainDesert,
	}
}

// tokenPool returns the fixed number-token multiset for one board. It holds
// one entry fewer than the tile count because the desert never takes a token.
func tokenPool() []int {
	return []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}
}

// GenerateBoard shuffles the terrain and token multisets independently and
// deals them across the board. The desert tile receives the marker and no
// token; the token it would have taken stays in the sequence for the next
// tile.
func GenerateBoard(rng *rand.Rand) []Tile {
	terrains := terrainPool()
	rng.Shuffle(len(terrains), func(i, j int) {
		terrains[i], terrains[j] = terrains[j], terrains[i]
	})

	tokens := tokenPool()
	rng.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})

	tiles := make([]Tile, 0, BoardTileCount)
	nextToken := 0
	for position, terrain := range terrains {
		tile := Tile{ID: position, Terrain: terrain}
		if terrain == TerrainDesert {
			tile.HasMarker = true
		} else {
			tile.Token = tokens[nextToken]
			nextToken++
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

// StandardBoard returns the fixed beginner layout. Every call yields the
// same arrangement.
func StandardBoard() []Tile {
	type placement struct {
		terrain Terrain
		token   int
	}
	placements := []placement{
		{TerrainOre, 10}, {TerrainSheep, 2}, {TerrainWood, 9},
		{TerrainWheat, 12}, {TerrainBrick, 6}, {TerrainSheep, 4}, {TerrainBrick, 10},
		{TerrainWheat, 9}, {TerrainWood, 11}, {TerrainDesert, 0}, {TerrainWood, 3}, {TerrainOre, 8},
		{TerrainWood, 8}, {TerrainOre, 3}, {TerrainWheat, 4}, {TerrainSheep, 5},
		{TerrainBrick, 5}, {TerrainWheat, 6}, {TerrainSheep, 11},
	}

	tiles := make([]Tile, 0, BoardTileCount)
	for position, entry := range placements {
		tiles = append(tiles, Tile{
			ID:        position,
			Terrain:   entry.terrain,
			Token:     entry.token,
			HasMarker: entry.terrain == TerrainDesert,
		})
	}
	return tiles
}

// ValidateLayout checks a stored layout against the board invariants. An
// empty layout is valid; a non-empty layout must be a full generated board.
func ValidateLayout(tiles []Tile) error {
	if len(tiles) == 0 {
		return nil
	}
	if len(tiles) != BoardTileCount {
		return fmt.Errorf("layout has %d tiles, want %d", len(tiles), BoardTileCount)
	}

	terrainCounts := make(map[Terrain]int, 6)
	tokenCounts := make(map[int]int, 11)
	markers := 0
	for position, tile := range tiles {
		if tile.ID != position {
			return fmt.Errorf("tile at index %d has id %d", position, tile.ID)
		}
		terrainCounts[tile.Terrain]++
		if tile.HasMarker {
			markers++
			if tile.Terrain != TerrainDesert {
				return fmt.Errorf("marker on %s tile at %d", tile.Terrain, position)
			}
			if tile.Token != 0 {
				return fmt.Errorf("desert tile at %d has token %d", position, tile.Token)
			}
			continue
		}
		if tile.Terrain == TerrainDesert {
			return fmt.Errorf("desert tile at %d is missing its marker", position)
		}
		tokenCounts[tile.Token]++
	}
	if markers != 1 {
		return fmt.Errorf("layout has %d markers, want 1", markers)
	}

	for _, terrain := range terrainPool() {
		terrainCounts[terrain]--
	}
	for terrain, count := range terrainCounts {
		if count != 0 {
			return fmt.Errorf("terrain %s count is off by %d", terrain, count)
		}
	}

	for _, token := range tokenPool() {
		tokenCounts[token]--
	}
	for token, count := range tokenCounts {
		if count != 0 {
			return fmt.Errorf("token %d count is off by %d", token, count)
		}
	}
	return nil
}
