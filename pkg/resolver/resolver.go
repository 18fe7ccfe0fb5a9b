// Package resolver maps the dataset's sense keys onto the sense
// identifiers of a particular installed lexicon.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fcbond/ChainNet/pkg/lexicon"
)

// A Resolver turns a sense key such as "dog%1:05:00::" into the id of
// the matching sense in one lexicon. A miss is an ordinary outcome, not
// an error: the caller decides what an unresolvable key means.
type Resolver interface {
	Resolve(senseKey string) (string, bool)
}

type mapResolver struct {
	ids map[string]string
}

func (m *mapResolver) Resolve(senseKey string) (string, bool) {
	id, ok := m.ids[senseKey]
	return id, ok
}

// NewMap returns a resolver backed by a fixed key-to-id map.
func NewMap(ids map[string]string) Resolver {
	return &mapResolver{ids: ids}
}

// ForLexicon picks the resolution strategy for a lexicon and builds the
// resolver. The Open English Wordnet editions encode the sense key in
// the sense id itself, so their keys are recovered from the stored ids;
// every other lexicon must carry dc:identifier metadata. The second
// return value lists keys that matched more than one sense: those are
// excluded from resolution rather than guessed at.
func ForLexicon(store *lexicon.Store, lex lexicon.Info) (Resolver, []string, error) {
	if strings.HasPrefix(lex.Project, "oewn") || strings.HasPrefix(lex.Project, "ewn") {
		return forSenseKeyIDs(store, lex)
	}
	ids, ambiguous, err := store.SenseIdentifiers(lex)
	if err != nil {
		return nil, nil, fmt.Errorf("loading sense identifiers for %s: %v", lex.Spec(), err)
	}
	if len(ids) == 0 && len(ambiguous) == 0 {
		return nil, nil, fmt.Errorf("lexicon %s carries no sense identifier metadata", lex.Spec())
	}
	return &mapResolver{ids: ids}, ambiguous, nil
}

// forSenseKeyIDs recovers each sense's key from its id and builds the
// key-to-id map from that. Deriving ids from keys directly would lose
// lemma case, which the ids keep but the keys do not.
func forSenseKeyIDs(store *lexicon.Store, lex lexicon.Info) (Resolver, []string, error) {
	senseIDs, err := store.SenseIDs(lex)
	if err != nil {
		return nil, nil, fmt.Errorf("loading sense ids for %s: %v", lex.Spec(), err)
	}

	ids := make(map[string]string)
	ambiguous := make(map[string]bool)
	for _, id := range senseIDs {
		key, ok := KeyFromSenseID(lex.Project, id)
		if !ok {
			continue
		}
		if ambiguous[key] {
			continue
		}
		if _, seen := ids[key]; seen {
			delete(ids, key)
			ambiguous[key] = true
			continue
		}
		ids[key] = id
	}
	if len(ids) == 0 && len(ambiguous) == 0 {
		return nil, nil, fmt.Errorf("lexicon %s has no sense ids in sense-key form", lex.Spec())
	}

	var dups []string
	for key := range ambiguous {
		dups = append(dups, key)
	}
	sort.Strings(dups)
	return &mapResolver{ids: ids}, dups, nil
}
