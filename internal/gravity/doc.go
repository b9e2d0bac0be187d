// Package gravity holds the N-body primitives: the [Body] value type,
// the pairwise Newtonian acceleration kernel, and conserved-quantity
// diagnostics.
//
// The kernel is the hot loop of the simulator, O(N^2) per call. It sits
// behind the [Kernel] interface so the integrator does not care whether
// the serial or the worker-parallel implementation is in use; both
// produce bit-identical results.
package gravity
