package store

import (
	"context"
	"testing"

	"footdash/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "postgres", DriverFor("postgres://u:p@localhost/footdash?sslmode=disable"))
	assert.Equal(t, "postgres", DriverFor("postgresql://localhost/footdash"))
	assert.Equal(t, "sqlite", DriverFor("./footdash.db"))
	assert.Equal(t, "sqlite", DriverFor(":memory:"))
}

func TestLastImportEmpty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LastImport(context.Background())
	assert.ErrorIs(t, err, ErrNoImport)
}

func TestReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rows := []dataset.Row{
		{Name: "A", Position: "Forward", AgeBucket: "24-26", Year: 2021, Team: "X", BaseSalary: 5000, Minutes: 1500, BirthYear: 1996, PlayerID: "1", Metrics: map[string]float64{"G": 4, "xG": 3.5}},
		{Name: "B", Position: "Defender", AgeBucket: "27-29", Year: 2021, Team: "Y", BaseSalary: 9000, Minutes: 2500, BirthYear: 1993, PlayerID: "2", Metrics: map[string]float64{"Tackles": 40}},
	}
	imp, err := s.Replace(ctx, "players.csv", rows)
	require.NoError(t, err)
	assert.NotEmpty(t, imp.ID)
	assert.Equal(t, 2, imp.RowCount)

	ds, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, ds.Rows())

	last, err := s.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, imp.ID, last.ID)
	assert.Equal(t, "players.csv", last.Source)
	assert.WithinDuration(t, imp.ImportedAt, last.ImportedAt, 0)

	// a second import replaces the rows
	imp2, err := s.Replace(ctx, "fresh.csv", rows[:1])
	require.NoError(t, err)
	ds, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())

	last, err = s.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, imp2.ID, last.ID)
}
