package fieldsync

import (
	"fmt"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
)

// Definition is an immutable list of field descriptors. It produces one
// independent Component per call to New.
type Definition struct {
	fields []FieldDescriptor
	index  map[string]FieldDescriptor
}

// Build validates fields and returns their definition. Duplicate or empty
// names are programming errors and panic.
func Build(fields ...FieldDescriptor) Definition {
	d := Definition{
		fields: make([]FieldDescriptor, 0, len(fields)),
		index:  make(map[string]FieldDescriptor, len(fields)),
	}
	for _, f := range fields {
		name := f.FieldName()
		if name == "" {
			panic("fieldsync: field with empty name")
		}
		if _, dup := d.index[name]; dup {
			panic(fmt.Sprintf("fieldsync: duplicate field %q", name))
		}
		d.fields = append(d.fields, f)
		d.index[name] = f
	}
	return d
}

// Fields returns the field names in declaration order.
func (d Definition) Fields() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.FieldName()
	}
	return names
}

// Field returns the descriptor for name.
func (d Definition) Field(name string) (FieldDescriptor, bool) {
	f, ok := d.index[name]
	return f, ok
}

// New creates a component with fresh state and registers its subscriptions:
// one watcher per field, then one registration-change listener.
func (d Definition) New(binding Binding, opts ...Option) *Component {
	c := &Component{
		def:     d,
		binding: binding,
		state:   newState(d.fields),
		policy:  descriptor.MergeLastWins,
		tracer:  defaultTracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.created()
	return c
}
