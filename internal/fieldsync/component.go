package fieldsync

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/vizsync/internal/domain/descriptor"
	"github.com/zjrosen/vizsync/internal/log"
	"github.com/zjrosen/vizsync/internal/tracing"
)

const tracerName = "github.com/zjrosen/vizsync/internal/fieldsync"

// Option configures a Component.
type Option func(*Component)

// WithTargetCache memoizes resolved targets until the next registration change.
// A nil cache disables caching.
func WithTargetCache(cache *TargetCache) Option {
	return func(c *Component) {
		c.cache = cache
	}
}

// WithTracer records push, pull and domain refreshes as spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Component) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithMergePolicy sets how duplicate domain names are merged.
func WithMergePolicy(policy descriptor.MergePolicy) Option {
	return func(c *Component) {
		c.policy = policy
	}
}

func defaultTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(tracerName)
}

// Component synchronizes one State with the targets reachable from its binding.
type Component struct {
	def     Definition
	binding Binding
	state   *State
	subs    Subscriptions
	cache   *TargetCache
	tracer  trace.Tracer
	policy  descriptor.MergePolicy

	dataGuard   Guard
	domainGuard Guard
}

// State returns the component's reactive state.
func (c *Component) State() *State {
	return c.state
}

// Set is the UI edit path: it assigns the field, which pushes it to the backend.
func (c *Component) Set(name string, value any) error {
	return c.state.Set(name, value)
}

// Binding returns the component's binding.
func (c *Component) Binding() Binding {
	return c.binding
}

// Subscriptions returns the number of live registrations.
func (c *Component) Subscriptions() int {
	return c.subs.Len()
}

func (c *Component) created() {
	for _, name := range c.def.Fields() {
		c.subs.Add(c.state.Watch(name, func(value, _ any) {
			c.OnFieldChanged(name, value)
		}))
	}
	c.subs.Add(c.binding.backend().OnRegistrationChange(c.onRegistrationChange))
}

func (c *Component) onRegistrationChange() {
	if c.cache != nil {
		c.cache.Invalidate()
	}
	c.RefreshDomains()
	c.RefreshData()
}

// Mount refreshes domains and then data.
func (c *Component) Mount() {
	c.RefreshDomains()
	c.RefreshData()
}

// Destroy releases every registration made at creation, newest first.
func (c *Component) Destroy() {
	c.subs.Release()
	if c.cache != nil {
		c.cache.Invalidate()
	}
}

// OnFieldChanged pushes value to every target that can set the field,
// in reverse resolution order.
func (c *Component) OnFieldChanged(name string, value any) {
	f, ok := c.def.Field(name)
	if !ok {
		log.Debug(log.CatSync, "Push for undeclared field ignored", "field", name)
		return
	}

	_, span := c.tracer.Start(context.Background(), tracing.SpanPush,
		trace.WithAttributes(attribute.String(tracing.AttrField, name)))
	defer span.End()

	targets := c.resolve("set", name, f.canSet)
	span.SetAttributes(attribute.Int(tracing.AttrTargets, len(targets)))

	for i := len(targets) - 1; i >= 0; i-- {
		f.write(targets[i], value)
	}
}

// RefreshData reads every field from its first getter and assigns the value
// when it differs. Re-entrant calls are dropped.
func (c *Component) RefreshData() {
	release, ok := c.dataGuard.TryAcquire()
	if !ok {
		log.Debug(log.CatSync, "Data refresh already in progress")
		return
	}
	defer release()

	_, span := c.tracer.Start(context.Background(), tracing.SpanPull)
	defer span.End()

	updated := 0
	for _, f := range c.def.fields {
		name := f.FieldName()
		targets := c.resolve("get", name, f.canGet)
		if len(targets) == 0 {
			continue
		}
		value, ok := f.read(targets[0])
		if !ok {
			continue
		}
		current, _ := c.state.Get(name)
		if f.equal(current, value) {
			continue
		}
		if err := c.state.Set(name, value); err != nil {
			log.ErrorErr(log.CatSync, "Failed to assign pulled value", err, "field", name)
			continue
		}
		updated++
	}
	span.SetAttributes(attribute.Int(tracing.AttrUpdated, updated))
}

// RefreshDomains rebuilds the domain map from the descriptor trees of the
// source, its representations and the views. Re-entrant calls are dropped.
func (c *Component) RefreshDomains() {
	release, ok := c.domainGuard.TryAcquire()
	if !ok {
		log.Debug(log.CatSync, "Domain refresh already in progress")
		return
	}
	defer release()

	_, span := c.tracer.Start(context.Background(), tracing.SpanDomains)
	defer span.End()

	objects := descriptorTargets(c.binding)
	nodes := make([]descriptor.Node, 0)
	for len(objects) > 0 {
		last := len(objects) - 1
		obj := objects[last]
		objects = objects[:last]
		if d, ok := obj.(Describer); ok {
			nodes = append(nodes, d.UI()...)
		}
	}

	domains, err := descriptor.ExtractWithPolicy(c.policy, nodes...)
	if err != nil {
		span.RecordError(err)
		log.ErrorErr(log.CatSync, "Domain refresh rejected", err, "policy", c.policy.String())
		return
	}
	span.SetAttributes(attribute.Int(tracing.AttrDomains, len(domains)))
	c.state.replaceDomains(domains)
}

func (c *Component) resolve(direction, name string, has func(Target) bool) []Target {
	if c.cache == nil {
		return FindTargets(c.binding, has)
	}
	return c.cache.targets(direction+":"+name, func() []Target {
		return FindTargets(c.binding, has)
	})
}
