/*
Package runner provides the host-side loop that drives a Marquee engine.

The engine never schedules anything itself; Runner plays the role of the
display refresh tick, sampling the clock and calling Poll at a fixed rate.
It also offers SanitizeInput, applied by transport adapters to user text
before it reaches the engine.
*/
package runner
