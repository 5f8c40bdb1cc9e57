// Package descriptor implements the domain layer for UI field descriptors.
//
// This package follows the same rules as the other domain packages:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines value objects (Domain, Step) and the descriptor tree (Node, Leaf, Branch)
//   - Has no knowledge of infrastructure concerns (YAML parsing, proxies, UI widgets)
//
// # Descriptor Trees
//
// Scene proxies publish a tree describing the fields they expose to the UI. A Leaf
// names one field and carries its Domain; a Branch groups children. Extract walks the
// tree depth-first and returns a flat mapping of field name to Domain.
//
// # Step Derivation
//
// A Domain whose Step is Any describes a continuous range. Extraction replaces it with
// a concrete step: 1 when both bounds are declared integers, otherwise
// (max-min)/MaxSliderSteps. Range(0, 1, Any()) therefore yields 0.002 while
// IntRange(0, 10, Any()) yields 1.
//
// # Merge Policy
//
// The same field name commonly appears in several trees (every representation of a
// source publishes "opacity"). MergeLastWins keeps the last visited occurrence.
// MergeStrict accepts repeated identical domains but reports ErrDuplicateField when two
// occurrences disagree.
package descriptor
