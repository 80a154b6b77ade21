// Package profile writes runtime profiles for a single CLI invocation.
//
// Formatting a directory of large filters is the hot path worth profiling,
// so the lootfilter command exposes CPU, heap and allocs profiles as
// persistent flags:
//
//	lootfilter --cpu-profile=cpu.prof fmt -l ~/filters
//
// Wire it into a command with [Config.RegisterFlags], then bracket execution
// with [Profiler.Start] and [Profiler.Stop].
package profile
