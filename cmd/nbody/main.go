package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gravlab/nbody/internal/config"
	"github.com/gravlab/nbody/internal/gravity"
	"github.com/gravlab/nbody/internal/integrator"
	"github.com/gravlab/nbody/internal/sim"
	"github.com/gravlab/nbody/internal/storage"
	"github.com/gravlab/nbody/internal/tui"
	"github.com/gravlab/nbody/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	gConst     float64
	sample     int
	seed       int64
	kernelName string
	strict     bool
	numBodies  int
	noSave     bool
	bodyIndex  int
	orbitOnly  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nbody",
		Short: "fixed-step RK4 gravitational N-body simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbody", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&strict, "strict", false, "stop on NaN/Inf instead of propagating")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 0, "body index for coordinate plots")
	plotCmd.Flags().BoolVar(&orbitOnly, "orbit", false, "orbit canvas only")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored trajectory as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored trajectory as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, presetsCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 0, "stop time")
	cmd.Flags().Float64Var(&gConst, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().IntVar(&sample, "sample", config.DefaultSampleEvery, "record a snapshot every N steps")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for generated presets")
	cmd.Flags().StringVar(&kernelName, "kernel", "", "acceleration kernel (serial|parallel)")
	cmd.Flags().IntVar(&numBodies, "bodies", 0, "body count for the ring preset")
}

// buildConfig resolves preset, config file, and flag overrides, in
// that order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := "figure8"
	if len(args) > 0 {
		name = args[0]
	}

	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case name == "ring" && cmd.Flags().Changed("bodies"):
		cfg = config.Ring(numBodies)
	case name == "asteroids" && cmd.Flags().Changed("seed"):
		cfg = config.Asteroids(seed)
	default:
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gConst
	}
	if cmd.Flags().Changed("sample") {
		cfg.SampleEvery = sample
	}
	if cmd.Flags().Changed("kernel") {
		cfg.Kernel = kernelName
	}
	if cfg.Name == "" {
		cfg.Name = "custom"
	}
	return cfg, nil
}

func makeKernel(name string) (gravity.Kernel, error) {
	switch name {
	case "", "serial":
		return gravity.NewSerialKernel(), nil
	case "parallel":
		return gravity.NewParallelKernel(0), nil
	default:
		return nil, fmt.Errorf("unknown kernel: %s", name)
	}
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		G:           cfg.G,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		SampleEvery: cfg.SampleEvery,
		Seed:        cfg.Seed,
		Strict:      cfg.Strict || strict,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	kernel, err := makeKernel(cfg.Kernel)
	if err != nil {
		return err
	}

	bodies := cfg.GravityBodies()
	simulator := sim.New(kernel, integrator.NewRK4())
	progress := sim.NewProgressReporter(os.Stdout)
	simulator.AddObserver(progress)

	scfg := simConfig(cfg)
	fmt.Printf("running %s: %d bodies, dt=%g, t_f=%g, kernel=%s\n",
		cfg.Name, len(bodies), scfg.Dt, scfg.Duration, kernel.Name())

	result, err := simulator.Run(context.Background(), bodies, scfg)
	if err != nil {
		return err
	}
	progress.Finish(result.StepsPerSec)

	for _, e := range result.Errors {
		fmt.Printf("run aborted: %v\n", e)
	}

	fmt.Println(viz.FinalStatePanel(result))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Name, kernel.Name(), scfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	kernel, err := makeKernel(cfg.Kernel)
	if err != nil {
		return err
	}
	return tui.Run(cfg.Name, cfg.GravityBodies(), simConfig(cfg), kernel, integrator.NewRK4())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tDT\tDURATION\tKERNEL\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%g\t%s\t%.3g\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Dt,
			run.Duration,
			run.Kernel,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snaps, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s  (%d bodies, %d samples)\n\n", meta.ID, meta.Bodies, len(snaps))
	fmt.Println(viz.OrbitPlot(snaps, 80, 24))
	if !orbitOnly {
		fmt.Println(viz.CoordinatePlots(snaps, bodyIndex))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if _, err := st.Load(args[0]); err != nil {
		return err
	}
	f, err := os.Open(st.TrajectoryPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snaps, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta      *storage.RunMetadata `json:"meta"`
		Times     []float64            `json:"times"`
		Snapshots []sim.Snapshot       `json:"snapshots"`
	}{meta, times, snaps}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
