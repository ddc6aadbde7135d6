// Package dynamo provides the numerical primitives shared by every stage
// of a run.
//
//   - [State]: vector representing a stage state
//   - [System]: interface for ODE right-hand sides (dX/dt = f(X, t))
//   - [Integrator] and [AdaptiveIntegrator]: single-step schemes
//   - [Config]: tolerance and step limits for grid integration
//
// Errors returned by integrators wrap the sentinels in errors.go, so callers
// can test them with errors.Is.
package dynamo
