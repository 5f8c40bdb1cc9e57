// Package scene is the backend registry observed by the field synchronizer.
//
// A Registry owns three groups of proxies: sources (datasets), views (one per view
// type) and representations (one per source and view pair). Adding a source creates
// a representation in every view; adding a view creates one for every source.
//
// Proxies expose their settable state through small capability interfaces
// (OpacityGetter, OpacitySetter, ...). The field synchronizer resolves targets by
// asserting these interfaces, never by method name.
//
// Registration changes are delivered two ways: synchronously to callbacks added
// with OnRegistrationChange, and asynchronously through Broker for UI listeners.
// Callbacks always run after the registry lock is released, so they may query the
// registry.
package scene
