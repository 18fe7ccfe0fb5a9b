// Package wndb converts a Princeton-format WordNet database directory
// into a WN-LMF resource, so a local database can be installed
// alongside downloaded lexicons.
package wndb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fluhus/gostuff/nlp/wordnet"

	"github.com/fcbond/ChainNet/pkg/lmf"
	"github.com/fcbond/ChainNet/pkg/resolver"
)

// Options control the identity of the converted lexicon.
type Options struct {
	LexiconID string
	Label     string
	Version   string
	Language  string
	License   string
}

func (o Options) withDefaults() Options {
	if o.LexiconID == "" {
		o.LexiconID = "pwn"
	}
	if o.Label == "" {
		o.Label = "Princeton WordNet"
	}
	if o.Version == "" {
		o.Version = "3.0"
	}
	if o.Language == "" {
		o.Language = "en"
	}
	if o.License == "" {
		o.License = "https://wordnet.princeton.edu/license-and-commercial-use"
	}
	return o
}

// synsetRelTypes maps the database's semantic pointer symbols to schema
// relation names. Lexical pointers (antonymy, derivation and friends)
// relate individual words and are not carried over.
var synsetRelTypes = map[string]string{
	"@":  "hypernym",
	"@i": "instance_hypernym",
	"~":  "hyponym",
	"~i": "instance_hyponym",
	"#m": "holo_member",
	"#s": "holo_substance",
	"#p": "holo_part",
	"%m": "mero_member",
	"%s": "mero_substance",
	"%p": "mero_part",
	"=":  "attribute",
	"*":  "entails",
	">":  "causes",
	"&":  "similar",
	"$":  "similar",
	"^":  "also",
	";c": "domain_topic",
	";r": "domain_region",
	";u": "exemplifies",
	"-c": "has_domain_topic",
	"-r": "has_domain_region",
	"-u": "is_exemplified_by",
}

// Convert parses the WordNet database in dir and assembles it into a
// WN-LMF resource. Sense ids are minted from the sense keys listed in
// index.sense, and every sense keeps its key as identifier metadata, so
// the converted lexicon resolves under either lookup strategy.
func Convert(dir string, opts Options) (*lmf.Resource, error) {
	wn, err := wordnet.Parse(dir)
	if err != nil {
		return nil, fmt.Errorf("parsing wordnet database %s: %v", dir, err)
	}
	senses, err := parseIndexSense(filepath.Join(dir, "index.sense"))
	if err != nil {
		return nil, err
	}
	return assemble(wn.Synset, senses, opts.withDefaults())
}

// senseEntry is one line of index.sense.
type senseEntry struct {
	key      string
	lemma    string // lemma half of the key, underscores intact
	lexSense string // half after the %
	pos      string // from the key's synset type digit
	offset   string // zero-padded synset offset
	number   int    // sense number of the lemma
}

func parseIndexSense(path string) ([]senseEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", path, err)
	}
	defer f.Close()

	var entries []senseEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s:%d: expected sense_key offset sense_number, got %d columns", path, lineNo, len(fields))
		}
		entry, err := parseSenseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %v", path, lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	return entries, nil
}

func parseSenseLine(fields []string) (senseEntry, error) {
	key := fields[0]
	lemma, lexSense, ok := strings.Cut(key, "%")
	if !ok || lemma == "" || lexSense == "" {
		return senseEntry{}, fmt.Errorf("malformed sense key %q", key)
	}
	pos, ok := posOfSSType(lexSense[0])
	if !ok {
		return senseEntry{}, fmt.Errorf("sense key %q has unknown synset type %c", key, lexSense[0])
	}
	number, err := strconv.Atoi(fields[2])
	if err != nil {
		return senseEntry{}, fmt.Errorf("bad sense number %q: %v", fields[2], err)
	}
	return senseEntry{key: key, lemma: lemma, lexSense: lexSense, pos: pos, offset: fields[1], number: number}, nil
}

func posOfSSType(t byte) (string, bool) {
	switch t {
	case '1':
		return "n", true
	case '2':
		return "v", true
	case '3':
		return "a", true
	case '4':
		return "r", true
	case '5':
		return "s", true
	}
	return "", false
}

func assemble(synsets map[string]*wordnet.Synset, senses []senseEntry, opts Options) (*lmf.Resource, error) {
	lexID := opts.LexiconID
	synsetID := func(offset, pos string) string {
		return fmt.Sprintf("%s-%s-%s", lexID, offset, pos)
	}

	bySynsetID := make(map[string]*wordnet.Synset, len(synsets))
	for _, ss := range synsets {
		bySynsetID[synsetID(ss.Offset, ss.Pos)] = ss
	}

	type entryKey struct {
		written string
		pos     string
	}
	type orderedSense struct {
		sense  lmf.Sense
		number int
	}
	entries := make(map[entryKey][]orderedSense)
	memberSense := make(map[string]string) // synset id + "\x00" + lemma -> sense id

	for _, se := range senses {
		sid := synsetID(se.offset, se.pos)
		// The index is all lower case; the synset's own word list
		// still has the original capitalization.
		written := strings.ReplaceAll(se.lemma, "_", " ")
		if ss, ok := bySynsetID[sid]; ok {
			if w, ok := matchWord(ss, se.lemma); ok {
				written = w
			}
		}
		// Ids carry the cased written form, the way the English
		// wordnets mint them. The identifier keeps the true key.
		casedKey := strings.ReplaceAll(written, " ", "_") + "%" + se.lexSense
		senseID, err := resolver.SenseID(lexID, casedKey)
		if err != nil {
			return nil, fmt.Errorf("minting sense id for %q: %v", se.key, err)
		}
		k := entryKey{written: written, pos: se.pos}
		entries[k] = append(entries[k], orderedSense{
			sense:  lmf.Sense{ID: senseID, Synset: sid, Identifier: se.key},
			number: se.number,
		})
		memberSense[sid+"\x00"+se.lemma] = senseID
	}

	var outEntries []lmf.Entry
	for k, group := range entries {
		sort.SliceStable(group, func(i, j int) bool { return group[i].number < group[j].number })
		entry := lmf.Entry{
			ID:    fmt.Sprintf("%s-%s-%s", lexID, resolver.EscapeLemma(k.written), k.pos),
			Lemma: lmf.Lemma{WrittenForm: k.written, PartOfSpeech: k.pos},
		}
		for _, s := range group {
			entry.Senses = append(entry.Senses, s.sense)
		}
		outEntries = append(outEntries, entry)
	}
	sort.Slice(outEntries, func(i, j int) bool { return outEntries[i].ID < outEntries[j].ID })

	var outSynsets []lmf.Synset
	for sid, ss := range bySynsetID {
		out := lmf.Synset{ID: sid, PartOfSpeech: ss.Pos}
		if def := glossDefinition(ss.Gloss); def != "" {
			out.Definitions = []string{def}
		}
		for _, w := range ss.Word {
			if senseID, ok := memberSense[sid+"\x00"+normalizeWord(w)]; ok {
				out.Members = append(out.Members, senseID)
			}
		}
		for _, ptr := range ss.Pointer {
			relType, ok := synsetRelTypes[ptr.Symbol]
			if !ok {
				continue
			}
			target, ok := synsets[ptr.Synset]
			if !ok {
				continue
			}
			out.Relations = append(out.Relations, lmf.Relation{
				RelType: relType,
				Target:  synsetID(target.Offset, target.Pos),
			})
		}
		outSynsets = append(outSynsets, out)
	}
	sort.Slice(outSynsets, func(i, j int) bool { return outSynsets[i].ID < outSynsets[j].ID })

	lex := lmf.Lexicon{
		ID:       lexID,
		Label:    opts.Label,
		Language: opts.Language,
		License:  opts.License,
		Version:  opts.Version,
		Entries:  outEntries,
		Synsets:  outSynsets,
	}
	return &lmf.Resource{LMFVersion: lmf.Version, Lexicons: []lmf.Lexicon{lex}}, nil
}

// matchWord finds the synset word matching an index lemma and returns
// it as a written form, with underscores opened back into spaces.
func matchWord(ss *wordnet.Synset, lemma string) (string, bool) {
	for _, w := range ss.Word {
		if normalizeWord(w) == lemma {
			return strings.ReplaceAll(stripMarker(w), "_", " "), true
		}
	}
	return "", false
}

// normalizeWord lowers a synset word into index form: no adjective
// position marker, lower case, spaces as underscores.
func normalizeWord(w string) string {
	return strings.ReplaceAll(strings.ToLower(stripMarker(w)), " ", "_")
}

// stripMarker removes a trailing adjective position marker such as
// "(ip)" from a synset word.
func stripMarker(w string) string {
	if strings.HasSuffix(w, ")") {
		if i := strings.LastIndexByte(w, '('); i > 0 {
			return w[:i]
		}
	}
	return w
}

// glossDefinition cuts a data-file gloss down to its definition part,
// dropping the quoted usage examples.
func glossDefinition(gloss string) string {
	if i := strings.Index(gloss, `; "`); i >= 0 {
		gloss = gloss[:i]
	}
	return strings.TrimSpace(gloss)
}
