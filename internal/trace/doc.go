// Package trace records what jsvet is doing while it lints: run and file
// boundaries, the parse/resolve/lint phases of each file, and rule-level
// events such as isolated rule failures or rules without interest metadata.
//
// Tracing is off unless requested:
//
//	jsvet check --trace=detail --trace-output=trace.ndjson src/
//
// # Tracers
//
//   - Nop: disabled tracing, no overhead beyond an Enabled check
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Every event carries a Scope. The Level decides which scopes are written:
// LevelPhase keeps run, file and phase events, LevelDetail adds rule events,
// LevelDebug adds per-rule dispatch counters. LevelError writes only events
// flagged as failures.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", parentID)
//	defer span.End("")
package trace
