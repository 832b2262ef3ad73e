package export

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallGrid() *tile.Grid {
	g := tile.NewGrid(4, 3, tile.Wall)
	g.Set(1, 1, tile.Floor)
	g.Set(2, 1, tile.StairsUp)
	return g
}

func TestJSONRoundTrip(t *testing.T) {
	g := smallGrid()
	data, err := ExportJSON(g, Metadata{Name: "test", Generator: "bsp"}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	g2, meta, err := ImportJSON(data)
	require.NoError(t, err)
	assert.Equal(t, g.Width(), g2.Width())
	assert.Equal(t, g.Height(), g2.Height())
	assert.Equal(t, "test", meta.Name)
	assert.Equal(t, "2026-01-02T03:04:05Z", meta.CreatedAt)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			assert.Equal(t, g.At(x, y), g2.At(x, y))
		}
	}
}

func TestImportJSONRejectsMalformed(t *testing.T) {
	_, _, err := ImportJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestImportJSONRejectsEmptyGrid(t *testing.T) {
	_, _, err := ImportJSON([]byte(`{"version":"1.0.0","width":0,"height":0,"grid":[]}`))
	assert.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	g := smallGrid()
	data, err := ExportCSV(g)
	require.NoError(t, err)

	g2, err := ImportCSV(data)
	require.NoError(t, err)
	assert.Equal(t, g.Width(), g2.Width())
	assert.Equal(t, g.Height(), g2.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			assert.Equal(t, g.At(x, y), g2.At(x, y))
		}
	}
}

func TestImportCSVRejectsRowLengthMismatch(t *testing.T) {
	_, err := ImportCSV([]byte("0,0,0\n0,0\n"))
	assert.Error(t, err)
}

func TestImportCSVRejectsNonInteger(t *testing.T) {
	_, err := ImportCSV([]byte("0,x,0\n"))
	assert.Error(t, err)
}

func TestExportTMXProducesValidXMLWithObjects(t *testing.T) {
	g := smallGrid()
	data, err := ExportTMX(g)
	require.NoError(t, err)

	var m TMXMap
	require.NoError(t, xml.Unmarshal(data, &m))
	assert.Equal(t, "orthogonal", m.Orientation)
	assert.Equal(t, "right-down", m.RenderOrder)
	assert.Equal(t, "1.10", m.Version)
	assert.Equal(t, "Tiles", m.Layer.Name)
	require.NotNil(t, m.ObjectGroup)
	assert.Len(t, m.ObjectGroup.Objects, 1)
	assert.Equal(t, "STAIRS_UP", m.ObjectGroup.Objects[0].Type)
}

func TestExportTMXNoObjectsOmitsObjectGroup(t *testing.T) {
	g := tile.NewGrid(3, 3, tile.Wall)
	data, err := ExportTMX(g)
	require.NoError(t, err)

	var m TMXMap
	require.NoError(t, xml.Unmarshal(data, &m))
	assert.Nil(t, m.ObjectGroup)
}
