package descriptor

import (
	"errors"
	"fmt"
)

// ErrDuplicateField is returned by MergeStrict when two leaves share a name but not a domain.
var ErrDuplicateField = errors.New("conflicting domains for field")

// MergePolicy decides what happens when a field name is visited more than once.
type MergePolicy int

const (
	// MergeLastWins overwrites earlier occurrences with later ones.
	MergeLastWins MergePolicy = iota
	// MergeStrict rejects occurrences whose domain differs from an earlier one.
	MergeStrict
)

func (p MergePolicy) String() string {
	switch p {
	case MergeLastWins:
		return "last-wins"
	case MergeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Extract flattens descriptor trees into field name -> Domain using MergeLastWins.
func Extract(nodes ...Node) map[string]Domain {
	domains := make(map[string]Domain)
	ExtractInto(domains, nodes...)
	return domains
}

// ExtractInto merges the leaves of nodes into domains, last occurrence winning.
func ExtractInto(domains map[string]Domain, nodes ...Node) {
	Walk(nodes, func(l Leaf) {
		domains[l.Name] = l.Domain.resolved()
	})
}

// ExtractWithPolicy flattens descriptor trees using the given merge policy.
// Under MergeStrict the first conflict aborts extraction.
func ExtractWithPolicy(policy MergePolicy, nodes ...Node) (map[string]Domain, error) {
	if policy == MergeLastWins {
		return Extract(nodes...), nil
	}

	domains := make(map[string]Domain)
	seen := make(map[string]Domain)
	var err error
	Walk(nodes, func(l Leaf) {
		if err != nil {
			return
		}
		// Compare raw domains: a derived NaN step never equals itself.
		if prev, ok := seen[l.Name]; ok && !prev.Equal(l.Domain) {
			err = fmt.Errorf("%w %q: %s vs %s", ErrDuplicateField, l.Name, prev, l.Domain)
			return
		}
		seen[l.Name] = l.Domain
		domains[l.Name] = l.Domain.resolved()
	})
	if err != nil {
		return nil, err
	}
	return domains, nil
}
