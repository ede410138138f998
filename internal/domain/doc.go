// Package domain defines the core types for the paxflow passenger analytics pipeline.
//
// # Core Types
//
// ActivityRecord is one parsed row of flight activity: a geographic region,
// an activity type, a passenger count and a YYYYMM activity period.
//
// ActivityType classifies a record as enplaned, deplaned, thru/transit or
// unknown. Unknown records are filtered out of the flow graph but still count
// toward monthly totals.
//
// Period is a parsed calendar month with a canonical "YYYY-MM" key and a
// linear month index used as the regression predictor.
//
// Report bundles the flow graph, centrality scores, monthly totals and
// forecast produced by one run, ready for an exporter.
//
// # Errors
//
// MalformedPeriodError, InsufficientDataError, DegenerateRegressionError and
// UndefinedCentralityError are typed so callers can tell them apart with
// errors.As. ErrorKind maps them to stable names for logs and metrics.
package domain
