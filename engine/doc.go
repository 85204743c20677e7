// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine holds the computational core of Consensio: the phase gate,
the scoring aggregation engine, the ranking-discrepancy detector, and the
ranking normalizer.

Every function here is a pure function of the store snapshot it reads (or of
its arguments alone, for the phase gate and normalizer): re-running with
identical inputs yields identical outputs, and nothing is mutated. The
store handle is always passed in, which is what lets the tests run against
memstore.

# Aggregation

AggregateScores produces one result per candidate, in creation order, with
per-shared-criterion average/variance and an overall average/variance. See
the function comment for the exact zero-evaluation semantics.

# Discrepancies

DetectDiscrepancies flags users whose ranking places a candidate directly
above another candidate whose evaluation-derived score is materially higher
(more than DiscrepancyThreshold points).
*/
package engine
