// Package enhancer runs the merge: it resolves each dataset relation
// against a lexicon and stages the forward and reverse edges on an
// editor.
package enhancer

import (
	"log"

	"github.com/fcbond/ChainNet/internal/chainnet"
	"github.com/fcbond/ChainNet/pkg/resolver"
)

// Suffixes applied to the source lexicon's metadata in the output.
const (
	VersionSuffix = ".cn"
	LabelSuffix   = " with tropes from ChainNet"
)

// maxSkipLog caps how many unresolved tuples get their own log line.
const maxSkipLog = 10

// RelationAdder is the part of the editor the run needs: staging one
// edge, which may fail per call without ending the run.
type RelationAdder interface {
	AddSenseRelation(sourceID, targetID, relType string) error
}

// Counts reports what happened to the dataset tuples. The counters are
// diagnostics only; they never change control flow.
type Counts struct {
	Added          int // forward edges staged
	ReverseAdded   int // reverse edges staged
	Skipped        int // tuples dropped because an endpoint did not resolve
	ForwardSkipped int // forward edges the editor refused
	ReverseSkipped int // reverse edges the editor refused
}

// DefaultOutputPath derives the output filename from a lexicon
// specifier: "omw-en:1.4" becomes "omw-en:1.4.cn.xml".
func DefaultOutputPath(spec string) string {
	return spec + ".cn.xml"
}

// Run stages both directions of every resolvable relation. A tuple with
// an unresolvable endpoint is skipped whole: neither direction is
// attempted. When the editor refuses the forward edge the reverse edge
// is still attempted, so a pre-existing forward link does not block its
// new inverse.
func Run(relations []chainnet.Relation, res resolver.Resolver, ed RelationAdder, verbose bool) Counts {
	var counts Counts
	for _, rel := range relations {
		source, okFrom := res.Resolve(rel.FromSense)
		target, okTo := res.Resolve(rel.ToSense)
		if !okFrom || !okTo {
			counts.Skipped++
			if verbose && counts.Skipped <= maxSkipLog {
				log.Printf("Skipping %s %s: cannot resolve %s -> %s",
					rel.Category, rel.Wordform, rel.FromSense, rel.ToSense)
			}
			continue
		}

		if err := ed.AddSenseRelation(source, target, rel.Category); err != nil {
			counts.ForwardSkipped++
			if verbose {
				log.Printf("Not adding %s edge for %s: %v", rel.Category, rel.Wordform, err)
			}
		} else {
			counts.Added++
		}

		inverse, ok := chainnet.Inverse(rel.Category)
		if !ok {
			continue
		}
		if err := ed.AddSenseRelation(target, source, inverse); err != nil {
			counts.ReverseSkipped++
			if verbose {
				log.Printf("Not adding %s edge for %s: %v", inverse, rel.Wordform, err)
			}
		} else {
			counts.ReverseAdded++
		}
	}
	return counts
}
