// Package thomas implements a rule-based "skim/scoop" income-harvesting
// simulator over a user-supplied portfolio. It is designed to be local-first
// and deterministic: the engine is pure in-memory arithmetic, and every
// decision it makes is recorded with a human-readable rationale.
//
// The core functionalities include:
//   - Simulation Engine: a single-pass evaluation of every position that
//     sells realized gains ("skim"), buys small fixed-dollar dips ("scoop"),
//     and maintains share counts, weighted-average cost basis and cash.
//   - Action Log: an ordered, append-only record of every triggered skim,
//     scoop, or skipped-skim note produced by the evaluation pass.
//   - Portfolio Codec: reading and writing the portfolio and action-log CSV
//     formats, with schema and value validation before any simulation runs.
//   - Allocation Models: static, data-driven starter-portfolio tiers and
//     dividend-income estimation against a monthly goal.
//   - TomScore: a static per-symbol suitability rating for the skim/scoop
//     method.
//
// This package serves as the foundational logic for the `thomas`
// command-line tool; all file, network and terminal concerns live in the
// surrounding packages.
package thomas
