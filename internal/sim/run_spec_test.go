package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gravlab/nbody/internal/config"
	"github.com/gravlab/nbody/internal/gravity"
	"github.com/gravlab/nbody/internal/integrator"
	"github.com/gravlab/nbody/internal/sim"
)

var _ = Describe("Simulator", func() {
	var s *sim.Simulator

	BeforeEach(func() {
		s = sim.New(gravity.NewSerialKernel(), integrator.NewRK4())
	})

	Describe("Run", func() {
		It("rejects an empty body list before the loop starts", func() {
			cfg := sim.Config{G: 1, Dt: 0.1, Duration: 1, SampleEvery: 1}
			_, err := s.Run(context.Background(), nil, cfg)
			Expect(err).To(MatchError(sim.ErrNoBodies))
		})

		It("rejects a non-positive timestep", func() {
			cfg := sim.Config{G: 1, Dt: 0, Duration: 1, SampleEvery: 1}
			bodies := []gravity.Body{gravity.NewBody(1, 0, 0, 0, 0)}
			_, err := s.Run(context.Background(), bodies, cfg)
			Expect(err).To(MatchError(sim.ErrBadTimestep))
		})

		It("records the sampled trajectory in body order", func() {
			cfg := sim.Config{G: 1, Dt: 0.125, Duration: 0.5, SampleEvery: 2}
			bodies := []gravity.Body{
				gravity.NewBody(1, 0, 0, 1, 0),
			}
			result, err := s.Run(context.Background(), bodies, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Snapshots).To(HaveLen(2))
			Expect(result.Snapshots[0]).To(HaveLen(1))
			Expect(result.Snapshots[1][0].X).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("keeps energy drift small for the binary preset", func() {
			preset := config.GetPreset("binary")
			cfg := sim.Config{
				G:           preset.G,
				Dt:          0.001,
				Duration:    1,
				SampleEvery: 100,
			}
			result, err := s.Run(context.Background(), preset.GravityBodies(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.EnergyDrift).To(BeNumerically("<", 1e-8))
		})

		It("reports throughput and final states", func() {
			cfg := sim.Config{G: 1, Dt: 0.125, Duration: 1, SampleEvery: 2}
			bodies := []gravity.Body{gravity.NewBody(1, 0, 0, 1, 0)}
			result, err := s.Run(context.Background(), bodies, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.StepsPerSec).To(BeNumerically(">", 0))
			Expect(result.Describe()).To(HaveLen(1))
			Expect(result.Describe()[0]).To(HavePrefix("M:"))
		})
	})
})
