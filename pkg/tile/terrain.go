package tile

// TerrainTile is the alternative enumeration used by the Perlin terrain
// generator. It shares the 0..N integer space with Tile and MazeTile;
// consumers must track which enumeration a Grid uses out-of-band (the
// generator name recorded in export metadata, per spec §3/§9).
type TerrainTile uint8

const (
	DeepWaterTerrain TerrainTile = iota
	WaterTerrain
	SandTerrain
	GrassTerrain
	ForestTerrain
	MountainTerrain
)

var terrainNames = [...]string{
	"DEEP_WATER", "WATER", "SAND", "GRASS", "FOREST", "MOUNTAIN",
}

func (t TerrainTile) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "UNKNOWN"
}

// MazeTile is the alternative enumeration used by maze generators.
type MazeTile uint8

const (
	MazeWall MazeTile = iota
	MazePassage
	MazeStart
	MazeEnd
)

var mazeNames = [...]string{"WALL", "PASSAGE", "START", "END"}

func (t MazeTile) String() string {
	if int(t) < len(mazeNames) {
		return mazeNames[t]
	}
	return "UNKNOWN"
}
