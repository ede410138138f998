// Package service coordinates a paxflow analysis run.
//
// AnalysisService takes records from a repository.Source, builds the flow
// graph with centrality scores and the monthly forecast in parallel, and
// assembles a domain.Report for the exporters.
//
// # Event System
//
// Services publish run lifecycle events (started, graph built, forecast
// built, completed, failed) via EventBus. The command line tool subscribes
// and logs them.
//
// # Design Principles
//
// - Core computations stay pure; the service owns logging, metrics and events
// - Typed domain errors are wrapped, never swallowed
// - Context-aware for cancellation before work starts
package service
