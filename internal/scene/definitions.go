package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

//go:embed proxies.yaml
var defaultDefinitions []byte

// ErrInvalidDefinition is returned for malformed proxy definition files.
var ErrInvalidDefinition = errors.New("invalid proxy definition")

// DefinitionFile is the root structure of proxies.yaml.
type DefinitionFile struct {
	Sources         map[string]ProxyDef `yaml:"sources"`
	Views           map[string]ProxyDef `yaml:"views"`
	Representations map[string]ProxyDef `yaml:"representations"`
}

// ProxyDef defines one proxy kind.
type ProxyDef struct {
	Label          string       `yaml:"label"`
	Representation string       `yaml:"representation"` // views only: representation kind to create
	Axis           string       `yaml:"axis"`           // 2D views only: x, y or z
	UI             []UIEntryDef `yaml:"ui"`
}

// UIEntryDef is one entry of a UI descriptor tree. Entries with children are
// groups; entries with a name and a domain are fields. Named entries without a
// domain are displayed but publish no domain.
type UIEntryDef struct {
	Name     string       `yaml:"name"`
	Label    string       `yaml:"label"`
	Domain   *DomainDef   `yaml:"domain"`
	Children []UIEntryDef `yaml:"children"`
}

// DomainDef keeps raw scalar nodes so integer and real bounds stay distinguishable.
type DomainDef struct {
	Min  yaml.Node `yaml:"min"`
	Max  yaml.Node `yaml:"max"`
	Step yaml.Node `yaml:"step"`
}

// Definitions is the parsed, validated form of a DefinitionFile.
type Definitions struct {
	file DefinitionFile
	ui   map[Group]map[string][]descriptor.Node
}

// DefaultDefinitions parses the embedded proxies.yaml.
func DefaultDefinitions() (*Definitions, error) {
	return ParseDefinitions(defaultDefinitions)
}

// LoadDefinitions reads and parses a definitions file from fsys.
func LoadDefinitions(fsys fs.FS, path string) (*Definitions, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defs, err := ParseDefinitions(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return defs, nil
}

// ParseDefinitions parses YAML proxy definitions.
func ParseDefinitions(content []byte) (*Definitions, error) {
	var file DefinitionFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}

	defs := &Definitions{
		file: file,
		ui:   make(map[Group]map[string][]descriptor.Node),
	}
	groups := map[Group]map[string]ProxyDef{
		GroupSources:         file.Sources,
		GroupViews:           file.Views,
		GroupRepresentations: file.Representations,
	}
	for group, kinds := range groups {
		defs.ui[group] = make(map[string][]descriptor.Node, len(kinds))
		for kind, def := range kinds {
			nodes, err := buildNodes(def.UI)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", group, kind, err)
			}
			defs.ui[group][kind] = nodes
		}
	}

	for kind, view := range file.Views {
		if _, ok := file.Representations[view.Representation]; !ok {
			return nil, fmt.Errorf("%w: view %s uses unknown representation %q",
				ErrInvalidDefinition, kind, view.Representation)
		}
	}
	return defs, nil
}

// ViewTypes returns the defined view types, sorted.
func (d *Definitions) ViewTypes() []string {
	return sortedKeys(d.file.Views)
}

// SourceKinds returns the defined source kinds, sorted.
func (d *Definitions) SourceKinds() []string {
	return sortedKeys(d.file.Sources)
}

// RepresentationKinds returns the defined representation kinds, sorted.
func (d *Definitions) RepresentationKinds() []string {
	return sortedKeys(d.file.Representations)
}

// Def returns the definition of kind in group.
func (d *Definitions) Def(group Group, kind string) (ProxyDef, bool) {
	var defs map[string]ProxyDef
	switch group {
	case GroupSources:
		defs = d.file.Sources
	case GroupViews:
		defs = d.file.Views
	case GroupRepresentations:
		defs = d.file.Representations
	}
	def, ok := defs[kind]
	return def, ok
}

// UI returns the descriptor tree of kind in group.
func (d *Definitions) UI(group Group, kind string) []descriptor.Node {
	return d.ui[group][kind]
}

func buildNodes(entries []UIEntryDef) ([]descriptor.Node, error) {
	nodes := make([]descriptor.Node, 0, len(entries))
	for _, e := range entries {
		switch {
		case len(e.Children) > 0:
			children, err := buildNodes(e.Children)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, descriptor.NewBranch(children...))
		case e.Name != "" && e.Domain != nil:
			d, err := buildDomain(*e.Domain)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", e.Name, err)
			}
			nodes = append(nodes, descriptor.Leaf{Name: e.Name, Domain: d})
		}
	}
	return nodes, nil
}

func buildDomain(def DomainDef) (descriptor.Domain, error) {
	var d descriptor.Domain

	lo, loInt, err := bound(def.Min)
	if err != nil {
		return d, fmt.Errorf("min: %w", err)
	}
	hi, hiInt, err := bound(def.Max)
	if err != nil {
		return d, fmt.Errorf("max: %w", err)
	}
	d.Min, d.Max = lo, hi
	d.Integer = (lo != nil || hi != nil) && (lo == nil || loInt) && (hi == nil || hiInt)

	switch {
	case def.Step.Kind == 0:
		return d, fmt.Errorf("%w: step is required", ErrInvalidDefinition)
	case def.Step.Value == "any":
		d.Step = descriptor.Any()
	default:
		step, err := strconv.ParseFloat(def.Step.Value, 64)
		if err != nil {
			return d, fmt.Errorf("%w: step %q", ErrInvalidDefinition, def.Step.Value)
		}
		d.Step = descriptor.Fixed(step)
	}
	return d, nil
}

// bound parses an optional numeric scalar and reports whether it was written as an integer.
func bound(n yaml.Node) (*float64, bool, error) {
	if n.Kind == 0 {
		return nil, false, nil
	}
	if n.Kind != yaml.ScalarNode {
		return nil, false, fmt.Errorf("%w: expected a number", ErrInvalidDefinition)
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %q is not a number", ErrInvalidDefinition, n.Value)
	}
	return &v, n.ShortTag() == "!!int", nil
}

func sortedKeys(m map[string]ProxyDef) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
