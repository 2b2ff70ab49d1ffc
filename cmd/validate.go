package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jszinai/switch/config"
	"github.com/jszinai/switch/core/dispatch"
	"github.com/jszinai/switch/core/lp"
	"github.com/jszinai/switch/core/model"
	"github.com/jszinai/switch/core/policy/curtail"
	"github.com/jszinai/switch/infra/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Build the model from the inputs without solving",
	RunE:  validateInputs,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateInputs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("validate")

	sys := model.NewSystem()
	b := dispatch.NewBuilder(sys, lp.New())
	if err := b.LoadInputs(cfg.InputsDir); err != nil {
		return fmt.Errorf("load base inputs: %w", err)
	}
	if err := b.DefineComponents(); err != nil {
		return fmt.Errorf("define dispatch components: %w", err)
	}
	cm, err := curtail.Define(b)
	if err != nil {
		return fmt.Errorf("define curtailment components: %w", err)
	}
	if err := cm.LoadInputs(cfg.InputsDir); err != nil {
		return fmt.Errorf("load curtailment inputs: %w", err)
	}

	logg.Infof("model ok: %d generators, %d timepoints, %d cap keys, %d variables, %d constraints",
		len(sys.Generators()), len(sys.Timepoints()), len(cm.Keys()),
		b.Prog.NumVars(), b.Prog.NumConstraints())
	return nil
}
