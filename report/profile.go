package report

import (
	"fmt"

	"footdash/dataset"

	"github.com/dustin/go-humanize"
)

const imageURLFormat = "https://d2zywfiolv4f83.cloudfront.net/img/players/%s.jpg"

// SalaryEntry is one line of the salary history table.
type SalaryEntry struct {
	Year   int     `json:"year"`
	Team   string  `json:"team"`
	Salary float64 `json:"salary"`
}

// SalaryText formats the salary as whole pounds with thousands separators.
func (e SalaryEntry) SalaryText() string {
	return "£" + humanize.Comma(int64(e.Salary))
}

// Profile is the identity card of one player. Bio fields come from the most recent season.
type Profile struct {
	Name      string        `json:"name"`
	PlayerID  string        `json:"player_id"`
	BirthYear int           `json:"birth_year"`
	Position  string        `json:"position"`
	Team      string        `json:"team"`
	History   []SalaryEntry `json:"history"`

	rows []dataset.Row
}

func BuildProfile(ds *dataset.Dataset, name string) (Profile, error) {
	rows := ds.PlayerRows(name)
	if len(rows) == 0 {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}

	latest := rows[len(rows)-1]
	p := Profile{
		Name:      name,
		PlayerID:  latest.PlayerID,
		BirthYear: latest.BirthYear,
		Position:  latest.Position,
		Team:      latest.Team,
		History:   make([]SalaryEntry, 0, len(rows)),
		rows:      rows,
	}
	for _, r := range rows {
		p.History = append(p.History, SalaryEntry{Year: r.Year, Team: r.Team, Salary: r.BaseSalary})
	}
	return p, nil
}

// ImageURL is the headshot for the player, empty when the export had no id.
func (p Profile) ImageURL() string {
	if p.PlayerID == "" {
		return ""
	}
	return fmt.Sprintf(imageURLFormat, p.PlayerID)
}

// Rows returns the player's seasons, oldest first.
func (p Profile) Rows() []dataset.Row {
	out := make([]dataset.Row, len(p.rows))
	copy(out, p.rows)
	return out
}
