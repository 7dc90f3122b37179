// Package anim drives the animated bob.
//
// A [Driver] owns a virtual clock that advances by a fixed step per tick,
// independent of how much wall time actually elapsed. On each tick it
// evaluates the displacement A·sin(ω·clock+φ) with the parameters current at
// that tick and publishes a pixel offset to a [Renderer].
//
// Ticks come from a [Scheduler]: [TickerScheduler] for a real timer,
// [ManualScheduler] when the host event loop (or a test) decides when to
// tick.
package anim
