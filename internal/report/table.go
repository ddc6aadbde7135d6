package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/san-kum/racesim/internal/catalog"
	"github.com/san-kum/racesim/internal/config"
	"github.com/san-kum/racesim/internal/metrics"
	"github.com/san-kum/racesim/internal/sim"
	"github.com/san-kum/racesim/internal/stage"
)

const dnf = "DNF"

// Row is one vehicle's line of a stage table.
type Row struct {
	Vehicle string
	// Ran is false when the vehicle stopped in an earlier stage.
	Ran      bool
	Reached  bool
	Elapsed  float64
	Position float64
	Velocity float64
	Peak     float64
	Apex     float64
	HasApex  bool
}

// StageRows returns the record of every vehicle right after stage id.
func StageRows(result *sim.Result, id stage.ID) []Row {
	return lo.Map(result.Vehicles, func(v *sim.VehicleRun, _ int) Row {
		row := Row{Vehicle: v.Vehicle.Name()}
		out := v.Outcome(id)
		if out == nil {
			return row
		}
		row.Ran = true
		row.Peak = out.Metrics[metrics.PeakSpeedName]
		row.Apex, row.HasApex = out.Metrics[metrics.ApexName]
		if !out.Reached() {
			return row
		}
		snap := v.Snapshots[id.Index()]
		row.Reached = true
		row.Elapsed = snap.Elapsed
		row.Position = snap.Position
		row.Velocity = snap.Velocity
		return row
	})
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// StageTable renders the stage results. Vehicles that did not reach the
// stage's terminal condition show DNF instead of stale values.
func StageTable(result *sim.Result, id stage.ID) string {
	rows := StageRows(result, id)
	withApex := lo.SomeBy(rows, func(r Row) bool { return r.HasApex })

	headers := []string{"VEHICLE", "TIME (s)", "POSITION (m)", "VELOCITY (m/s)", "PEAK (m/s)"}
	if withApex {
		headers = append(headers, "APEX (m)")
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := []string{r.Vehicle, dnf, "-", "-", "-"}
		if r.Reached {
			line = []string{r.Vehicle, num(r.Elapsed), num(r.Position), num(r.Velocity), num(r.Peak)}
		} else if r.Ran {
			line[4] = num(r.Peak)
		}
		if withApex {
			line = append(line, lo.Ternary(r.HasApex, num(r.Apex), "-"))
		}
		cells = append(cells, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorder).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderCell
			case col == 0:
				return Cell
			case row >= 0 && row < len(cells) && cells[row][col] == dnf:
				return DNFCell
			default:
				return NumberCell
			}
		})

	title := Title.Render(fmt.Sprintf("Stage %s: %s", id, id.Title()))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.String())
}

// WriteStageTables writes one table per stage, in run order.
func WriteStageTables(w io.Writer, result *sim.Result) error {
	for _, id := range stage.All {
		if _, err := fmt.Fprintln(w, StageTable(result, id)); err != nil {
			return err
		}
	}
	return nil
}

// CatalogTable lists every vehicle of the catalog with its eight values.
func CatalogTable(cat *catalog.Catalog) string {
	rows := make([][]string, 0, cat.Len())
	for _, name := range cat.Names() {
		spec, err := cat.Lookup(name)
		if err != nil {
			continue
		}
		vals := spec.Values()
		rows = append(rows, append([]string{name}, lo.Map(vals[:], func(v float64, _ int) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		})...))
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorder).
		Headers("NAME", "MASS", "ENGINE", "LENGTH", "WIDTH", "HEIGHT", "CX", "CZ", "MU").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCell
			}
			if col == 0 {
				return Cell
			}
			return NumberCell
		}).
		String()
}

// PresetTable lists the named selections.
func PresetTable() string {
	rows := lo.Map(config.ListPresets(), func(name string, _ int) []string {
		p := config.Presets[name]
		sel := p.Selection
		return []string{
			name,
			fmt.Sprint(sel.Vehicles),
			sel.Boost.String(),
			lo.Ternary(sel.Wing, "oui", "non"),
			lo.Ternary(sel.Skirt, "oui", "non"),
			p.Description,
		}
	})

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorder).
		Headers("PRESET", "VEHICLES", "BOOST", "WING", "SKIRT", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCell
			}
			return Cell
		}).
		String()
}
