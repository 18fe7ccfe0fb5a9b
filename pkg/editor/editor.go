// Package editor stages sense relation edits against an installed
// lexicon and exports the edited wordnet as WN-LMF XML. The stored
// lexicon itself is never modified.
package editor

import (
	"fmt"

	"github.com/fcbond/ChainNet/pkg/lexicon"
	"github.com/fcbond/ChainNet/pkg/lmf"
)

// SenseRelation is one staged edge.
type SenseRelation struct {
	Source string
	Type   string
	Target string
}

// Editor accumulates relation edits for a single lexicon.
type Editor struct {
	store   *lexicon.Store
	lex     lexicon.Info
	version string
	label   string
	added   []SenseRelation
	seen    map[SenseRelation]bool
}

// New opens an editor over an installed lexicon. The given version and
// label replace the lexicon's own metadata in the export. The lexicon
// must already be installed in the store.
func New(store *lexicon.Store, spec, version, label string) (*Editor, error) {
	lex, err := store.Find(spec)
	if err != nil {
		return nil, fmt.Errorf("cannot edit %s: %v", spec, err)
	}
	return &Editor{
		store:   store,
		lex:     lex,
		version: version,
		label:   label,
		seen:    make(map[SenseRelation]bool),
	}, nil
}

// Lexicon returns the lexicon under edit.
func (e *Editor) Lexicon() lexicon.Info {
	return e.lex
}

// Relations returns the edges staged so far.
func (e *Editor) Relations() []SenseRelation {
	return e.added
}

// AddSenseRelation stages an edge from one sense to another. The edge
// must use a known sense relation type, its source must be a sense of
// the lexicon, and it must not duplicate a stored or already staged
// edge. The target is not checked: relation targets may legitimately
// point outside the lexicon. A failed add leaves the editor unchanged.
func (e *Editor) AddSenseRelation(sourceID, targetID, relType string) error {
	if !lmf.KnownSenseRelation(relType) {
		return fmt.Errorf("unknown sense relation type %q", relType)
	}
	rel := SenseRelation{Source: sourceID, Type: relType, Target: targetID}
	if e.seen[rel] {
		return fmt.Errorf("relation %s -%s-> %s is already staged", sourceID, relType, targetID)
	}
	exists, err := e.store.SenseExists(e.lex, sourceID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("sense %s is not in %s", sourceID, e.lex.Spec())
	}
	stored, err := e.store.HasSenseRelation(e.lex, sourceID, relType, targetID)
	if err != nil {
		return err
	}
	if stored {
		return fmt.Errorf("relation %s -%s-> %s already exists in %s", sourceID, relType, targetID, e.lex.Spec())
	}
	e.seen[rel] = true
	e.added = append(e.added, rel)
	return nil
}

// Export writes the lexicon with the staged relations merged into their
// source senses, under the editor's version and label, as WN-LMF 1.4.
func (e *Editor) Export(path string) error {
	lex, err := e.store.Export(e.lex)
	if err != nil {
		return fmt.Errorf("loading %s: %v", e.lex.Spec(), err)
	}
	lex.Version = e.version
	lex.Label = e.label

	bySource := make(map[string][]lmf.Relation)
	for _, rel := range e.added {
		bySource[rel.Source] = append(bySource[rel.Source], lmf.Relation{RelType: rel.Type, Target: rel.Target})
	}
	for i := range lex.Entries {
		for j := range lex.Entries[i].Senses {
			sense := &lex.Entries[i].Senses[j]
			sense.Relations = append(sense.Relations, bySource[sense.ID]...)
		}
	}

	res := &lmf.Resource{LMFVersion: lmf.Version, Lexicons: []lmf.Lexicon{*lex}}
	return lmf.WriteFile(path, res)
}
