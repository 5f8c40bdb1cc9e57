package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zjrosen/vizsync/internal/log"
)

// StateVersion is the current StateDocument version.
const StateVersion = 1

// ErrUnsupportedState is returned for documents with an unknown version.
var ErrUnsupportedState = errors.New("unsupported state version")

// StateDocument is the serializable form of a scene plus caller data.
type StateDocument struct {
	Version         int                   `json:"version"`
	Sources         []SourceState         `json:"sources"`
	Views           []ViewState           `json:"views"`
	Representations []RepresentationState `json:"representations"`
	UserData        map[string]any        `json:"userData,omitempty"`
}

type SourceState struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	Name    string  `json:"name"`
	Dataset Dataset `json:"dataset"`
}

type ViewState struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Background         string `json:"background"`
	OrientationAxes    bool   `json:"orientationAxes"`
	ParallelProjection bool   `json:"parallelProjection"`
}

type RepresentationState struct {
	Source     string  `json:"source"`
	View       string  `json:"view"`
	Kind       string  `json:"kind"`
	Opacity    float64 `json:"opacity"`
	Visibility bool    `json:"visibility"`
	ColorBy    string  `json:"colorBy,omitempty"`
	PointSize  int     `json:"pointSize,omitempty"`
	Mode       string  `json:"mode,omitempty"`
	SliceIndex int     `json:"sliceIndex,omitempty"`
}

// Marshal encodes the document as indented JSON.
func (d StateDocument) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalState decodes a document produced by Marshal.
func UnmarshalState(data []byte) (StateDocument, error) {
	var doc StateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode state: %w", err)
	}
	if doc.Version != StateVersion {
		return doc, fmt.Errorf("%w: %d", ErrUnsupportedState, doc.Version)
	}
	return doc, nil
}

// SaveState captures every proxy and attaches userData.
func (r *Registry) SaveState(userData map[string]any) StateDocument {
	doc := StateDocument{Version: StateVersion, UserData: userData}

	for _, s := range r.Sources() {
		doc.Sources = append(doc.Sources, SourceState{
			ID: s.ID(), Kind: s.Kind(), Name: s.Name(), Dataset: s.Dataset(),
		})
	}
	for _, v := range r.Views() {
		doc.Views = append(doc.Views, ViewState{
			ID:                 v.ID(),
			Type:               v.Type(),
			Background:         v.Background(),
			OrientationAxes:    v.OrientationAxes(),
			ParallelProjection: v.ParallelProjection(),
		})
	}
	for _, rep := range r.Representations() {
		rs := RepresentationState{
			Source:     rep.Input().ID(),
			View:       rep.View().ID(),
			Kind:       rep.Kind(),
			Opacity:    rep.Opacity(),
			Visibility: rep.Visibility(),
			ColorBy:    rep.ColorBy(),
		}
		switch p := rep.(type) {
		case *Geometry:
			rs.PointSize = p.PointSize()
			rs.Mode = p.Mode()
		case *Slice:
			rs.SliceIndex = p.SliceIndex()
		}
		doc.Representations = append(doc.Representations, rs)
	}
	return doc
}

// LoadState recreates the proxies of doc and returns its user data. Views are
// recycled: an existing view of the same type is reused instead of duplicated.
// Proxies get fresh ids.
func (r *Registry) LoadState(doc StateDocument) (map[string]any, error) {
	if doc.Version != StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedState, doc.Version)
	}

	views := make(map[string]*View, len(doc.Views))
	for _, vs := range doc.Views {
		v, err := r.View(vs.Type)
		if err != nil {
			return nil, fmt.Errorf("restore view %s: %w", vs.ID, err)
		}
		v.SetBackground(vs.Background)
		v.SetOrientationAxes(vs.OrientationAxes)
		v.SetParallelProjection(vs.ParallelProjection)
		views[vs.ID] = v
	}

	sources := make(map[string]*Source, len(doc.Sources))
	for _, ss := range doc.Sources {
		s, err := r.AddSource(ss.Name, ss.Kind, ss.Dataset)
		if err != nil {
			return nil, fmt.Errorf("restore source %s: %w", ss.ID, err)
		}
		sources[ss.ID] = s
	}

	for _, rs := range doc.Representations {
		src, view := sources[rs.Source], views[rs.View]
		if src == nil || view == nil {
			log.Warn(log.CatState, "Skipping representation with missing proxy", "source", rs.Source, "view", rs.View)
			continue
		}
		rep := r.Representation(src, view)
		if rep == nil {
			continue
		}
		rep.SetOpacity(rs.Opacity)
		rep.SetVisibility(rs.Visibility)
		rep.SetColorBy(rs.ColorBy)
		switch p := rep.(type) {
		case *Geometry:
			p.SetPointSize(rs.PointSize)
			if rs.Mode != "" {
				p.SetMode(rs.Mode)
			}
		case *Slice:
			p.SetSliceIndex(rs.SliceIndex)
		}
	}

	log.Info(log.CatState, "Scene state loaded",
		"sources", len(doc.Sources), "views", len(doc.Views), "representations", len(doc.Representations))
	return doc.UserData, nil
}
