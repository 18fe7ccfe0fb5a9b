// Package lmf models WN-LMF lexical resources and reads and writes
// their XML interchange format.
package lmf

// Version is the WN-LMF schema version this package targets. It is the
// first version that defines the figurative sense relation types.
const Version = "1.4"

// DC is the namespace of the Dublin Core metadata attributes that WN-LMF
// documents may attach to senses, most importantly dc:identifier.
const DC = "https://globalwordnet.github.io/schemas/dc/"

// Sense relation types for figurative links between senses.
const (
	Metaphor    = "metaphor"
	HasMetaphor = "has_metaphor"
	Metonym     = "metonym"
	HasMetonym  = "has_metonym"
)

// Resource is a lexical resource: one or more lexicons plus the schema
// version declared in the document's DOCTYPE.
type Resource struct {
	LMFVersion string
	Lexicons   []Lexicon
}

// Lexicon holds one wordnet's metadata and content.
type Lexicon struct {
	ID       string
	Label    string
	Language string
	Email    string
	License  string
	Version  string
	URL      string
	Citation string
	Entries  []Entry
	Synsets  []Synset
}

// Entry is a lexical entry: a lemma and its senses.
type Entry struct {
	ID     string
	Lemma  Lemma
	Senses []Sense
}

// Lemma is the canonical written form of an entry.
type Lemma struct {
	WrittenForm  string
	PartOfSpeech string
}

// Sense links an entry to a synset. Identifier carries the sense's
// external identifier from the dc:identifier attribute, or is empty when
// the document has none.
type Sense struct {
	ID         string
	Synset     string
	Identifier string
	Relations  []Relation
}

// Synset is a set of senses sharing a meaning.
type Synset struct {
	ID           string
	ILI          string
	PartOfSpeech string
	Members      []string
	Definitions  []string
	Relations    []Relation
}

// Relation is a typed directed link from its containing sense or synset
// to the target identifier.
type Relation struct {
	RelType string
	Target  string
}

// senseRelationTypes are the relType values the 1.4 schema allows on a
// SenseRelation.
var senseRelationTypes = map[string]bool{
	"antonym":             true,
	"also":                true,
	"participle":          true,
	"pertainym":           true,
	"derivation":          true,
	"domain_topic":        true,
	"has_domain_topic":    true,
	"domain_region":       true,
	"has_domain_region":   true,
	"exemplifies":         true,
	"is_exemplified_by":   true,
	"similar":             true,
	"other":               true,
	"simple_aspect_ip":    true,
	"secondary_aspect_ip": true,
	"simple_aspect_pi":    true,
	"secondary_aspect_pi": true,
	"feminine":            true,
	"has_feminine":        true,
	"masculine":           true,
	"has_masculine":       true,
	"young":               true,
	"has_young":           true,
	"diminutive":          true,
	"has_diminutive":      true,
	"augmentative":        true,
	"has_augmentative":    true,
	"anto_gradable":       true,
	"anto_simple":         true,
	"anto_converse":       true,
	"ir_synonym":          true,
	Metaphor:              true,
	HasMetaphor:           true,
	Metonym:               true,
	HasMetonym:            true,
}

// KnownSenseRelation reports whether relType is a sense relation type
// defined by the schema.
func KnownSenseRelation(relType string) bool {
	return senseRelationTypes[relType]
}
