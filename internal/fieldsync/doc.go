// Package fieldsync keeps a set of UI fields consistent with the scene proxies that
// expose them.
//
// A Definition is built once from a list of field descriptors. Each call to
// Definition.New produces an independent Component bound to one source and to the
// scene backend. The component:
//
//   - pushes local edits to every proxy that can set the field (OnFieldChanged),
//   - pulls values back from the first proxy that can get the field (RefreshData),
//   - rebuilds the field domains from the proxies' UI descriptors (RefreshDomains),
//   - refreshes both whenever the backend reports a registration change.
//
// Capabilities are typed. A field carries probes built with Getter and Setter from
// method expressions on small capability interfaces, for example
//
//	fieldsync.Field[float64]{
//		Name:    "opacity",
//		Initial: 1,
//		Get:     fieldsync.Getter(scene.OpacityGetter.Opacity),
//		Set:     fieldsync.Setter(scene.OpacitySetter.SetOpacity),
//	}
//
// Everything runs synchronously on the caller's goroutine. Re-entrant refreshes
// triggered by side effects of an update are dropped by per-operation guards.
package fieldsync
