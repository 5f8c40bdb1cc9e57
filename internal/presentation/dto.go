package presentation

import (
	"sort"
	"time"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
	"github.com/zjrosen/vizsync/internal/scene"
	"github.com/zjrosen/vizsync/internal/workspace"
)

// StateDTO represents a saved workspace state for presentation
type StateDTO struct {
	Name      string    `json:"name"`
	Bytes     int       `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProxyDTO represents one proxy definition
type ProxyDTO struct {
	Group          string     `json:"group"`
	Kind           string     `json:"kind"`
	Label          string     `json:"label,omitempty"`
	Representation string     `json:"representation,omitempty"`
	Axis           string     `json:"axis,omitempty"`
	Fields         []FieldDTO `json:"fields"` // always present, sorted by name
}

// FieldDTO is a field domain after step resolution
type FieldDTO struct {
	Name    string   `json:"name"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    string   `json:"step"` // string so an unresolvable NaN step still encodes
	Integer bool     `json:"integer"`
}

// FromSavedState converts a saved state to a DTO.
func FromSavedState(s *workspace.SavedState) StateDTO {
	return StateDTO{
		Name:      s.Name,
		Bytes:     len(s.Document),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromSavedStates converts saved states to DTOs, keeping their order.
func FromSavedStates(states []*workspace.SavedState) []StateDTO {
	dtos := make([]StateDTO, len(states))
	for i, s := range states {
		dtos[i] = FromSavedState(s)
	}
	return dtos
}

// FromDomains converts a domain map to field DTOs sorted by name.
func FromDomains(domains map[string]descriptor.Domain) []FieldDTO {
	fields := make([]FieldDTO, 0, len(domains))
	for name, d := range domains {
		fields = append(fields, FieldDTO{
			Name:    name,
			Min:     d.Min,
			Max:     d.Max,
			Step:    d.Step.String(),
			Integer: d.Integer,
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// FromDefinitions converts every proxy definition to a DTO, grouped as
// sources, views, then representations and sorted by kind within a group.
func FromDefinitions(defs *scene.Definitions) []ProxyDTO {
	groups := []struct {
		group scene.Group
		kinds []string
	}{
		{scene.GroupSources, defs.SourceKinds()},
		{scene.GroupViews, defs.ViewTypes()},
		{scene.GroupRepresentations, defs.RepresentationKinds()},
	}

	dtos := make([]ProxyDTO, 0)
	for _, g := range groups {
		for _, kind := range g.kinds {
			def, _ := defs.Def(g.group, kind)
			dtos = append(dtos, ProxyDTO{
				Group:          string(g.group),
				Kind:           kind,
				Label:          def.Label,
				Representation: def.Representation,
				Axis:           def.Axis,
				Fields:         FromDomains(descriptor.Extract(defs.UI(g.group, kind)...)),
			})
		}
	}
	return dtos
}
