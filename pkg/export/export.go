// Package export serializes a tile.Grid to JSON, CSV, and Tiled TMX, and
// parses JSON/CSV back into a grid. Grounded on the teacher's pkg/export
// (ExportJSON/SaveJSONToFile for the JSON side, TMJMap/TMJLayer/TMJTileset
// for the Tiled-compatible side), rewritten to the spec's JSON v1.0.0
// envelope (spec §4.10/§6) and to TMX (Tiled's XML map format) instead of
// the teacher's TMJ (Tiled's JSON map format) — the encoding differs, the
// document model (layers, tilesets, objects, first_gid) is the same idea
// adapted to encoding/xml.
package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/dunegen/pkg/tile"
)

// SchemaVersion is the JSON export format version (spec §4.10).
const SchemaVersion = "1.0.0"

// Metadata is the optional descriptive block attached to a JSON export.
type Metadata struct {
	Name      string                 `json:"name,omitempty"`
	Generator string                 `json:"generator,omitempty"`
	Seed      *uint64                `json:"seed,omitempty"`
	Params    map[string]interface{} `json:"params,omitempty"`
	CreatedAt string                 `json:"created_at"`
	Custom    map[string]interface{} `json:"custom,omitempty"`
}

// Document is the top-level JSON export envelope.
type Document struct {
	Version   string            `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Grid      [][]int           `json:"grid"`
	Metadata  Metadata          `json:"metadata"`
	TileTypes map[string]string `json:"tile_types"`
}

func gridToRows(g *tile.Grid) [][]int {
	rows := make([][]int, g.Height())
	for y := 0; y < g.Height(); y++ {
		row := make([]int, g.Width())
		for x := 0; x < g.Width(); x++ {
			row[x] = int(g.At(x, y))
		}
		rows[y] = row
	}
	return rows
}

func tileTypesMap() map[string]string {
	m := map[string]string{}
	for code := 0; ; code++ {
		name := tile.Tile(code).String()
		if strings.HasPrefix(name, "UNKNOWN(") {
			break
		}
		m[strconv.Itoa(code)] = name
	}
	return m
}

// ExportJSON builds a Document for g. createdAt should be an ISO-8601 UTC
// timestamp (callers supply it explicitly rather than this package calling
// time.Now, keeping export pure and reproducible).
func ExportJSON(g *tile.Grid, meta Metadata, createdAt time.Time) ([]byte, error) {
	meta.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	doc := Document{
		Version:   SchemaVersion,
		Width:     g.Width(),
		Height:    g.Height(),
		Grid:      gridToRows(g),
		Metadata:  meta,
		TileTypes: tileTypesMap(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportJSON parses a JSON export back into a grid and its metadata.
func ImportJSON(data []byte) (*tile.Grid, Metadata, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Metadata{}, fmt.Errorf("parsing JSON dungeon export: %w", err)
	}
	if len(doc.Grid) == 0 {
		return nil, Metadata{}, fmt.Errorf("parsing JSON dungeon export: empty grid")
	}
	width := len(doc.Grid[0])
	for _, row := range doc.Grid {
		if len(row) != width {
			return nil, Metadata{}, fmt.Errorf("parsing JSON dungeon export: row length mismatch")
		}
	}
	g := tile.NewGrid(width, len(doc.Grid), tile.Wall)
	for y, row := range doc.Grid {
		for x, code := range row {
			g.Set(x, y, tile.Tile(code))
		}
	}
	return g, doc.Metadata, nil
}

// ExportCSV writes one comma-separated row of integer tile codes per grid
// row, no header.
func ExportCSV(g *tile.Grid) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	for y := 0; y < g.Height(); y++ {
		row := make([]string, g.Width())
		for x := 0; x < g.Width(); x++ {
			row[x] = strconv.Itoa(int(g.At(x, y)))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV dungeon export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing CSV dungeon export: %w", err)
	}
	return []byte(b.String()), nil
}

// ImportCSV parses a CSV export (trimmed, whitespace-tolerant) back into a
// grid.
func ImportCSV(data []byte) (*tile.Grid, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(string(data))))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV dungeon export: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing CSV dungeon export: empty document")
	}
	width := len(records[0])
	g := tile.NewGrid(width, len(records), tile.Wall)
	for y, row := range records {
		if len(row) != width {
			return nil, fmt.Errorf("parsing CSV dungeon export: row %d length mismatch", y)
		}
		for x, cell := range row {
			code, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("parsing CSV dungeon export: row %d col %d: %w", y, x, err)
			}
			g.Set(x, y, tile.Tile(code))
		}
	}
	return g, nil
}

// --- TMX (Tiled XML map format, version 1.10) ---

// TMXMap is the root <map> element.
type TMXMap struct {
	XMLName      xml.Name        `xml:"map"`
	Version      string          `xml:"version,attr"`
	TiledVersion string          `xml:"tiledversion,attr"`
	Orientation  string          `xml:"orientation,attr"`
	RenderOrder  string          `xml:"renderorder,attr"`
	Width        int             `xml:"width,attr"`
	Height       int             `xml:"height,attr"`
	TileWidth    int             `xml:"tilewidth,attr"`
	TileHeight   int             `xml:"tileheight,attr"`
	NextLayerID  int             `xml:"nextlayerid,attr"`
	NextObjectID int             `xml:"nextobjectid,attr"`
	Tilesets     []TMXTileset    `xml:"tileset"`
	Layer        TMXLayer        `xml:"layer"`
	ObjectGroup  *TMXObjectGroup `xml:"objectgroup,omitempty"`
}

// TMXTileset is one <tileset firstgid="N" name="..."> entry, inlined rather
// than referencing an external .tsx file.
type TMXTileset struct {
	FirstGID   int    `xml:"firstgid,attr"`
	Name       string `xml:"name,attr"`
	TileWidth  int    `xml:"tilewidth,attr"`
	TileHeight int    `xml:"tileheight,attr"`
	TileCount  int    `xml:"tilecount,attr"`
	Columns    int    `xml:"columns,attr"`
}

// TMXLayer is the single tile layer, CSV-encoded.
type TMXLayer struct {
	ID     int     `xml:"id,attr"`
	Name   string  `xml:"name,attr"`
	Width  int     `xml:"width,attr"`
	Height int     `xml:"height,attr"`
	Data   TMXData `xml:"data"`
}

// TMXData is the CSV-encoded tile id payload.
type TMXData struct {
	Encoding string `xml:"encoding,attr"`
	CSV      string `xml:",chardata"`
}

// TMXObjectGroup is the optional object layer marking stairs/treasure/
// chest/trap positions.
type TMXObjectGroup struct {
	ID      int         `xml:"id,attr"`
	Name    string      `xml:"name,attr"`
	Objects []TMXObject `xml:"object"`
}

// TMXObject is a single point object whose Type names the tile type.
type TMXObject struct {
	ID   int     `xml:"id,attr"`
	Name string  `xml:"name,attr"`
	Type string  `xml:"type,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
}

// objectTileTypes is the set of tile types surfaced as TMX objects.
var objectTileTypes = map[tile.Tile]bool{
	tile.StairsUp:   true,
	tile.StairsDown: true,
	tile.Treasure:   true,
	tile.Chest:      true,
	tile.Trap:       true,
	tile.TrapPit:    true,
}

// ExportTMX serializes g to Tiled TMX XML: one orthogonal, right-down,
// CSV-encoded tile layer named "Tiles", plus an object layer named
// "Objects" marking stairs/treasure/chest/trap tiles.
func ExportTMX(g *tile.Grid) ([]byte, error) {
	tileCount := 0
	for code := 0; ; code++ {
		name := tile.Tile(code).String()
		if strings.HasPrefix(name, "UNKNOWN(") {
			tileCount = code
			break
		}
	}

	var csvRows []string
	for y := 0; y < g.Height(); y++ {
		cells := make([]string, g.Width())
		for x := 0; x < g.Width(); x++ {
			// first_gid offset of 1: GID 0 means "no tile" in Tiled.
			cells[x] = strconv.Itoa(int(g.At(x, y)) + 1)
		}
		csvRows = append(csvRows, strings.Join(cells, ","))
	}

	m := TMXMap{
		Version:      "1.10",
		TiledVersion: "1.10.2",
		Orientation:  "orthogonal",
		RenderOrder:  "right-down",
		Width:        g.Width(),
		Height:       g.Height(),
		TileWidth:    16,
		TileHeight:   16,
		NextLayerID:  3,
		NextObjectID: 1,
		Tilesets: []TMXTileset{{
			FirstGID: 1, Name: "dungeon_tiles", TileWidth: 16, TileHeight: 16,
			TileCount: tileCount, Columns: tileCount,
		}},
		Layer: TMXLayer{
			ID: 1, Name: "Tiles", Width: g.Width(), Height: g.Height(),
			Data: TMXData{Encoding: "csv", CSV: "\n" + strings.Join(csvRows, ",\n") + "\n"},
		},
	}

	var objects []TMXObject
	nextID := 1
	g.Each(func(x, y int, t tile.Tile) {
		if objectTileTypes[t] {
			objects = append(objects, TMXObject{
				ID: nextID, Name: t.String(), Type: t.String(),
				X: float64(x * m.TileWidth), Y: float64(y * m.TileHeight),
			})
			nextID++
		}
	})
	if len(objects) > 0 {
		m.ObjectGroup = &TMXObjectGroup{ID: 2, Name: "Objects", Objects: objects}
		m.NextObjectID = nextID
	}

	out, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling TMX: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
