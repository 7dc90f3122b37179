package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/shmviz/internal/shm"
)

var csvHeader = []string{"time", "position", "velocity", "acceleration"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per sample with full float precision.
func WriteCSV(w io.Writer, tr shm.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range tr.T {
		row := []string{
			formatFloat(tr.T[i]),
			formatFloat(tr.Position[i]),
			formatFloat(tr.Velocity[i]),
			formatFloat(tr.Acceleration[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV. The returned trajectory carries no
// params.
func ReadCSV(r io.Reader) (shm.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return shm.Trajectory{}, err
	}
	if len(records) == 0 {
		return shm.Trajectory{}, fmt.Errorf("missing csv header")
	}

	n := len(records) - 1
	tr := shm.Trajectory{
		T:            make([]float64, n),
		Position:     make([]float64, n),
		Velocity:     make([]float64, n),
		Acceleration: make([]float64, n),
	}
	cols := [][]float64{tr.T, tr.Position, tr.Velocity, tr.Acceleration}

	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return shm.Trajectory{}, fmt.Errorf("row %d, %s: %w", i+1, csvHeader[j], err)
			}
			cols[j][i] = v
		}
	}
	return tr, nil
}
