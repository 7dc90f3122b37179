// Package shm provides the simple harmonic motion core.
//
// The package evaluates the closed-form SHM kinematics and samples them over a
// fixed time window:
//
//   - [Params]: amplitude, angular frequency and phase
//   - [Controls]: mutable parameter container shared by inputs and animation
//   - [Sample]: position, velocity and acceleration over the sample window
//   - [Sampler]: memoizing wrapper around [Sample]
//
// # Example
//
//	ctl := shm.NewControls(shm.DefaultParams())
//	_ = ctl.SetText(shm.ParamOmega, "3.5")
//	tr := shm.Sample(ctl.Snapshot())
//	fmt.Println(tr.Position[250])
//
// # Sign convention
//
// Acceleration is reported as +ω²·A·sin(ωt+φ), not the restoring -ω²x.
// Callers that need the physical sign negate it themselves.
package shm
