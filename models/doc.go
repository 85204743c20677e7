// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain records and the request/response types of
the Consensio API.

# Domain Records

The six stored entities are Topic, User, Criterion, Candidate, Evaluation,
and CandidateRanking. All identifiers are opaque unique tokens assigned at
creation. A topic moves through three phases:

  - Definition (1): participants author evaluation criteria
  - Collection (2): candidates are proposed and scored
  - Decision (3): participants rank candidates

Criteria are always personal to their author; IsShared marks a criterion as
eligible for cross-participant score aggregation. An Evaluation is unique
per (user, candidate, criterion) and carries a 1-10 score. A
CandidateRanking is unique per (user, topic) and is replaced wholesale on
resubmission.

# Result Types

CandidateResult, CriterionScore, Discrepancy, and UserDiscrepancies carry
the output of the aggregation and discrepancy engines (package engine).
*/
package models
