package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Name,Position,Age Lev,year,Team,Base Salary,Min,Birth Year,Player Id,G,xG,Tackles
Son Heung-Min,Forward,27-29,2021,Tottenham,"9,100,000",2900,1992,85971,17,11.2,21
Son Heung-Min,Forward,24-26,2018,Tottenham,5200000,2100,1992,85971,12,9.8,
Harry Kane,Forward,,2021,Tottenham,10400000,3100,1993,78830,23,20.1,15
Bench Guy,Defender,21-23,2021,Watford,500000,400,1999,1,0,0.1,9
`

func sampleRows(t *testing.T) []Row {
	t.Helper()
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return rows
}

func TestReadCSV(t *testing.T) {
	rows := sampleRows(t)
	require.Len(t, rows, 4)

	son := rows[0]
	assert.Equal(t, "Son Heung-Min", son.Name)
	assert.Equal(t, 2021, son.Year)
	assert.Equal(t, 9100000.0, son.BaseSalary)
	assert.Equal(t, "85971", son.PlayerID)
	assert.Equal(t, 17.0, son.Metrics["G"])

	_, ok := rows[1].Metric("Tackles")
	assert.False(t, ok, "blank metric cells are absent, not zero")

	// Age Lev blank: derived from year - birth year.
	assert.Equal(t, "27-29", rows[2].AgeBucket)
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Name,Position\nA,Forward\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Position", "year", "Base Salary", "Min", "G"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"A", "Forward", 2022, 5000, 1500, 3}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadXLSX(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Name)
	assert.Equal(t, 2022, rows[0].Year)
	assert.Equal(t, 3.0, rows[0].Metrics["G"])
}

func TestFilterMinutesIsStrict(t *testing.T) {
	ds := New([]Row{
		{Name: "a", Minutes: 1000},
		{Name: "b", Minutes: 1000.5},
		{Name: "c", Minutes: 200},
		{Name: "d", Minutes: 3000},
	})
	got := ds.FilterMinutes(1000)
	require.Equal(t, 2, got.Len())
	for _, r := range got.Rows() {
		assert.Greater(t, r.Minutes, 1000.0)
	}
	assert.Equal(t, 4, ds.Len(), "filter must not mutate the source")
}

func TestPlayerRowsExactMatchOrderedByYear(t *testing.T) {
	ds := New(sampleRows(t))
	rows := ds.PlayerRows("Son Heung-Min")
	require.Len(t, rows, 2)
	assert.Equal(t, 2018, rows[0].Year)
	assert.Equal(t, 2021, rows[1].Year)

	assert.Empty(t, ds.PlayerRows("son heung-min"))
	assert.True(t, ds.Has("Harry Kane"))
	assert.False(t, ds.Has("Harry"))
}

func TestTopBySalary(t *testing.T) {
	ds := New(sampleRows(t))
	top := ds.TopBySalary(100)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Harry Kane", "Son Heung-Min", "Bench Guy"}, ds.TopNamesBySalary(100))
	// Son's kept row carries his highest salary.
	assert.Equal(t, 9100000.0, top[1].BaseSalary)

	assert.Equal(t, []string{"Harry Kane"}, ds.TopNamesBySalary(1))
}

func TestTopBySalaryCapsAndDedupes(t *testing.T) {
	var rows []Row
	for i := 0; i < 150; i++ {
		rows = append(rows,
			Row{Name: "p" + string(rune('A'+i%26)) + string(rune('a'+i/26)), BaseSalary: float64(i)},
			Row{Name: "p" + string(rune('A'+i%26)) + string(rune('a'+i/26)), BaseSalary: float64(i) / 2},
		)
	}
	top := New(rows).TopBySalary(100)
	require.Len(t, top, 100)

	maxByName := make(map[string]float64)
	for _, r := range rows {
		if r.BaseSalary > maxByName[r.Name] {
			maxByName[r.Name] = r.BaseSalary
		}
	}
	seen := make(map[string]bool)
	for _, r := range top {
		assert.False(t, seen[r.Name], "duplicate %s", r.Name)
		seen[r.Name] = true
		assert.Equal(t, maxByName[r.Name], r.BaseSalary)
	}
}

func TestBucketForAge(t *testing.T) {
	cases := map[int]string{18: "~20", 20: "~20", 21: "21-23", 26: "24-26", 29: "27-29", 32: "30-32", 36: "33~"}
	for age, want := range cases {
		assert.Equal(t, want, BucketForAge(age), "age %d", age)
	}
	assert.Equal(t, 2, BucketIndex("24-26"))
	assert.Equal(t, -1, BucketIndex("nope"))
	assert.Len(t, AgeOrder(), 6)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Key") != "secret" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	f := NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL+"/players.csv")
	assert.Error(t, err)

	f.Header = http.Header{"X-Auth-Key": []string{"secret"}}
	rows, err := f.Fetch(context.Background(), srv.URL+"/players.csv")
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	assert.True(t, IsURL(srv.URL))
	assert.False(t, IsURL("./players.csv"))
}
