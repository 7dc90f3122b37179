package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/shmviz/internal/shm"
)

type ParamsData struct {
	Amplitude Float `json:"amplitude"`
	Omega     Float `json:"omega"`
	Phase     Float `json:"phase"`
}

func ParamsDataOf(p shm.Params) ParamsData {
	return ParamsData{
		Amplitude: Float(p.Amplitude),
		Omega:     Float(p.AngularFrequency),
		Phase:     Float(p.Phase),
	}
}

func (d ParamsData) Params() shm.Params {
	return shm.Params{
		Amplitude:        float64(d.Amplitude),
		AngularFrequency: float64(d.Omega),
		Phase:            float64(d.Phase),
	}
}

type ExportData struct {
	Params       ParamsData `json:"params"`
	Samples      int        `json:"samples"`
	Step         float64    `json:"step"`
	Times        []Float    `json:"t"`
	Position     []Float    `json:"position"`
	Velocity     []Float    `json:"velocity"`
	Acceleration []Float    `json:"acceleration"`
}

func NewExportData(tr shm.Trajectory) ExportData {
	return ExportData{
		Params:       ParamsDataOf(tr.Params),
		Samples:      tr.Len(),
		Step:         shm.SampleStep,
		Times:        Floats(tr.T),
		Position:     Floats(tr.Position),
		Velocity:     Floats(tr.Velocity),
		Acceleration: Floats(tr.Acceleration),
	}
}

func WriteJSON(w io.Writer, tr shm.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(tr))
}

func ExportJSON(path string, tr shm.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, tr)
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (shm.Trajectory, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return shm.Trajectory{}, err
	}
	n := len(data.Times)
	if len(data.Position) != n || len(data.Velocity) != n || len(data.Acceleration) != n {
		return shm.Trajectory{}, fmt.Errorf("series length mismatch: t=%d position=%d velocity=%d acceleration=%d",
			n, len(data.Position), len(data.Velocity), len(data.Acceleration))
	}
	return shm.Trajectory{
		Params:       data.Params.Params(),
		T:            Float64s(data.Times),
		Position:     Float64s(data.Position),
		Velocity:     Float64s(data.Velocity),
		Acceleration: Float64s(data.Acceleration),
	}, nil
}
