package dungeon

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/dunegen/pkg/diagnostics"
	"github.com/dshills/dunegen/pkg/metrics"
)

func seeded(s uint64) *uint64 { return &s }

func TestGenerateProducesValidatedArtifact(t *testing.T) {
	art, err := Generate(context.Background(), Config{
		Size:      48,
		ThemeName: "crypt",
		Seed:      seeded(123),
	})
	require.NoError(t, err)
	require.NotNil(t, art)
	assert.NotEmpty(t, art.RunID)
	assert.Equal(t, "crypt", art.ThemeName)
	assert.True(t, art.Validation.Valid || art.Attempts == 3)
}

func TestGenerateUnknownThemeErrors(t *testing.T) {
	_, err := Generate(context.Background(), Config{Size: 32, ThemeName: "nonexistent"})
	assert.Error(t, err)
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	a, err := Generate(context.Background(), Config{Size: 40, ThemeName: "cave", Seed: seeded(7)})
	require.NoError(t, err)
	b, err := Generate(context.Background(), Config{Size: 40, ThemeName: "cave", Seed: seeded(7)})
	require.NoError(t, err)

	require.Equal(t, a.Grid.Width(), b.Grid.Width())
	require.Equal(t, a.Grid.Height(), b.Grid.Height())
	for y := 0; y < a.Grid.Height(); y++ {
		for x := 0; x < a.Grid.Width(); x++ {
			assert.Equal(t, a.Grid.At(x, y), b.Grid.At(x, y))
		}
	}
}

func TestGenerateRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, Config{Size: 32, ThemeName: "crypt", Seed: seeded(1)})
	assert.Error(t, err)
}

func TestGenerateRecordsMetricsAndDiagnostics(t *testing.T) {
	reg := prometheus.NewRegistry()
	coll := metrics.New()
	require.NoError(t, coll.Register(reg))

	var seen []diagnostics.Diagnostic
	art, err := Generate(context.Background(), Config{
		Size:      40,
		ThemeName: "crypt",
		Seed:      seeded(5),
		Metrics:   coll,
		Diagnostics: func(d diagnostics.Diagnostic) {
			seen = append(seen, d)
		},
	})
	require.NoError(t, err)
	require.NotNil(t, art)
	assert.NotEmpty(t, seen)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
