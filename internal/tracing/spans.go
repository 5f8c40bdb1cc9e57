package tracing

// Span names.
const (
	SpanPush         = "fieldsync.push"
	SpanPull         = "fieldsync.pull"
	SpanDomains      = "fieldsync.domains"
	SpanSaveState    = "workspace.save_state"
	SpanRestoreState = "workspace.restore_state"
)

// Span attribute keys.
const (
	AttrField     = "field"
	AttrTargets   = "targets"
	AttrUpdated   = "updated"
	AttrDomains   = "domains"
	AttrStateName = "state.name"
	AttrBytes     = "state.bytes"
)
