// Package physics provides the right-hand sides of the four stage
// equations.
//
// Each stage implements [dynamo.System]:
//
//   - [InclineLaunch]: launch up the ramp, state [x, v]
//   - [Cornering]: loop of fixed radius, state [theta, omega]
//   - [Airborne]: jump under drag and lift, state [x, z, vx, vz]
//   - [RunOut]: flat sprint to the line, state [x, v]
//
// Equations are pure functions of state, time, [Environment] and [Params].
// The quadratic drag terms of the launch and run-out stages enter the
// acceleration with a positive sign.
package physics
