package curtail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszinai/switch/core/model"
	"github.com/jszinai/switch/infra/tabfile"
)

// InputFile is the mandatory per-key rate table.
const InputFile = "curtailment_rate_max.tab"

// ErrMissingInput is returned when the mandatory rate file is absent. The
// file is required even when empty so the policy is enabled intentionally.
var ErrMissingInput = errors.New("curtailment rate input file is required")

// LoadInputs reads curtailment_rate_max.tab from dir, populates the key set
// and rates, and builds the per-key cap constraints. Rows naming undeclared
// periods or energy sources fail key-set validation.
func (m *Module) LoadInputs(dir string) error {
	path := filepath.Join(dir, InputFile)
	t, err := tabfile.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return fmt.Errorf("load curtailment rates: %w", err)
	}

	rows, err := t.Select("Period", "Energy_Source", "Max_Curtailment_Rate")
	if err != nil {
		return err
	}
	for _, r := range rows {
		k := Key{Period: model.Period(r[0]), EnergySource: r[1]}
		if err := m.AddKey(k); err != nil {
			return err
		}
		if r[2] == tabfile.Missing {
			continue // key constrained at the default rate
		}
		rate, err := tabfile.Float(r[2])
		if err != nil {
			return fmt.Errorf("curtailment rate (%s, %s): %w", k.Period, k.EnergySource, err)
		}
		if err := m.SetRate(k, rate); err != nil {
			return err
		}
	}
	return m.buildRateConstraints()
}
