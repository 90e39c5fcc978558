package dataset

import (
	"sort"
)

// Row is one player-season record.
type Row struct {
	Name       string             `json:"name"`
	Position   string             `json:"position"`
	AgeBucket  string             `json:"age_bucket"`
	Year       int                `json:"year"`
	Team       string             `json:"team"`
	BaseSalary float64            `json:"base_salary"`
	Minutes    float64            `json:"minutes"`
	BirthYear  int                `json:"birth_year"`
	PlayerID   string             `json:"player_id"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Metric returns the value of a performance column and whether the cell had one.
func (r Row) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Dataset is a read-only collection of player-season rows.
type Dataset struct {
	rows []Row
}

func New(rows []Row) *Dataset {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &Dataset{rows: cp}
}

func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns a copy of the underlying rows in their original order.
func (d *Dataset) Rows() []Row {
	cp := make([]Row, len(d.rows))
	copy(cp, d.rows)
	return cp
}

// FilterMinutes keeps rows whose minutes played are strictly above threshold.
func (d *Dataset) FilterMinutes(threshold float64) *Dataset {
	var kept []Row
	for _, r := range d.rows {
		if r.Minutes > threshold {
			kept = append(kept, r)
		}
	}
	return &Dataset{rows: kept}
}

// PlayerRows returns the rows for an exact name match, oldest season first.
func (d *Dataset) PlayerRows(name string) []Row {
	var out []Row
	for _, r := range d.rows {
		if r.Name == name {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// PositionRows returns every row played at the given position.
func (d *Dataset) PositionRows(position string) []Row {
	var out []Row
	for _, r := range d.rows {
		if r.Position == position {
			out = append(out, r)
		}
	}
	return out
}

func (d *Dataset) Has(name string) bool {
	for _, r := range d.rows {
		if r.Name == name {
			return true
		}
	}
	return false
}

// TopBySalary sorts by base salary descending (ties keep dataset order), keeps the
// first row seen for each name and returns at most n of them.
func (d *Dataset) TopBySalary(n int) []Row {
	sorted := d.Rows()
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].BaseSalary > sorted[j].BaseSalary })

	seen := make(map[string]bool)
	var out []Row
	for _, r := range sorted {
		if len(out) >= n {
			break
		}
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r)
	}
	return out
}

// TopNamesBySalary is TopBySalary reduced to player names.
func (d *Dataset) TopNamesBySalary(n int) []string {
	top := d.TopBySalary(n)
	names := make([]string, len(top))
	for i, r := range top {
		names[i] = r.Name
	}
	return names
}
