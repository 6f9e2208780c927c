// Package services provides domain services that orchestrate business
// operations across multiple aggregates in the dispatch system. It implements
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - StockLedger: all-or-nothing multi-line stock reservation over products
//   - Dispatcher: validation and application of assignment proposals, with
//     nearest-neighbor stop ordering
//   - AssignmentStrategy / GreedyNearestStrategy: the pluggable pairing
//     policy that decides which shipments each idle driver should take
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
