// Package workspace holds application state around the scene: the current route,
// the panel registry, saved states and dataset helpers.
//
// Saved states are scene documents (see scene.StateDocument) plus user data,
// persisted through a StateRepository. Field synchronization state is never saved;
// components rebuild it from the scene after a restore.
package workspace
