package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"ht32-hal-go/drivers/ckcu"
	"ht32-hal-go/services/config"
)

type planOpts struct {
	board       string
	file        string
	overrides   config.Profile
	lockAfter   int
	neverLock   bool
	lockTimeout time.Duration
	trace       bool
	bits        bool
}

func newRootCmd() *cobra.Command {
	var opts planOpts
	cmd := &cobra.Command{
		Use:   "ckcu-plan",
		Short: "Resolve and dry-run an HT32 clock configuration",
		Long: "Resolve a clock profile (embedded board, YAML/JSON file and flag overrides, in that order)\n" +
			"against a simulated clock control unit and print the achieved clocks and register writes.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.board, "board", "b", "", "start from an embedded board profile")
	f.StringVarP(&opts.file, "file", "f", "", "start from a YAML or JSON profile file")
	addProfileFlags(f, &opts.overrides)
	f.IntVar(&opts.lockAfter, "lock-after", 0, "simulated PLL lock delay, in GCSR polls")
	f.BoolVar(&opts.neverLock, "never-lock", false, "simulate a PLL that never locks")
	f.DurationVar(&opts.lockTimeout, "lock-timeout", 100*time.Millisecond, "PLL lock wait bound")
	f.BoolVarP(&opts.trace, "trace", "t", false, "print the register write sequence")
	f.BoolVar(&opts.bits, "bits", false, "print register values in binary")

	cmd.AddCommand(newBoardsCmd())
	return cmd
}

func loadProfile(opts planOpts) (config.Profile, error) {
	var p config.Profile
	if opts.board != "" {
		b, err := config.Lookup(opts.board)
		if err != nil {
			return p, err
		}
		p = b
	}
	if opts.file != "" {
		raw, err := os.ReadFile(opts.file)
		if err != nil {
			return p, err
		}
		fp, err := config.DecodeYAML(raw)
		if err != nil {
			return p, err
		}
		p = p.Merge(fp)
	}
	return p.Merge(opts.overrides), nil
}

func runPlan(cmd *cobra.Command, opts planOpts) error {
	p, err := loadProfile(opts)
	if err != nil {
		return err
	}

	sim := ckcu.NewSim()
	sim.LockAfter = opts.lockAfter
	sim.NeverLock = opts.neverLock

	cfg, err := p.Apply(ckcu.Constrain(sim))
	if err != nil {
		return err
	}
	// Resolve first: Freeze panics on targets the hardware cannot represent.
	plan, err := cfg.Resolve()
	if err != nil {
		return err
	}
	clocks, err := cfg.FreezeTimeout(opts.lockTimeout)
	if err != nil {
		if opts.trace {
			writeTrace(cmd.OutOrStdout(), sim.Trace, opts.bits)
		}
		return err
	}

	out := cmd.OutOrStdout()
	writePlan(out, plan, clocks)
	if opts.trace {
		writeTrace(out, sim.Trace, opts.bits)
	}
	return nil
}
