package lmf

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read parses a WN-LMF document from r. Lexical entries and synsets are
// decoded one element at a time so that a full-size wordnet can be read
// without holding the raw document in memory.
func Read(r io.Reader) (*Resource, error) {
	dec := xml.NewDecoder(r)
	res := &Resource{}
	var cur *Lexicon
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading token: %v", err)
		}
		switch t := tok.(type) {
		case xml.Directive:
			if v := doctypeVersion(string(t)); v != "" {
				res.LMFVersion = v
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "Lexicon":
				lex := Lexicon{}
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "id":
						lex.ID = a.Value
					case "label":
						lex.Label = a.Value
					case "language":
						lex.Language = a.Value
					case "email":
						lex.Email = a.Value
					case "license":
						lex.License = a.Value
					case "version":
						lex.Version = a.Value
					case "url":
						lex.URL = a.Value
					case "citation":
						lex.Citation = a.Value
					}
				}
				cur = &lex
			case "LexicalEntry":
				if cur == nil {
					return nil, fmt.Errorf("LexicalEntry outside of a Lexicon")
				}
				var xe xmlEntry
				if err := dec.DecodeElement(&xe, &t); err != nil {
					return nil, fmt.Errorf("parsing lexical entry: %v", err)
				}
				cur.Entries = append(cur.Entries, xe.toEntry())
			case "Synset":
				if cur == nil {
					return nil, fmt.Errorf("Synset outside of a Lexicon")
				}
				var xs xmlSynset
				if err := dec.DecodeElement(&xs, &t); err != nil {
					return nil, fmt.Errorf("parsing synset: %v", err)
				}
				cur.Synsets = append(cur.Synsets, xs.toSynset())
			}
		case xml.EndElement:
			if t.Name.Local == "Lexicon" && cur != nil {
				res.Lexicons = append(res.Lexicons, *cur)
				cur = nil
			}
		}
	}
	if len(res.Lexicons) == 0 {
		return nil, fmt.Errorf("no Lexicon element found")
	}
	return res, nil
}

// ReadFile parses the WN-LMF document at path.
func ReadFile(path string) (*Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v", path, err)
	}
	defer f.Close()
	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %v", path, err)
	}
	return res, nil
}

// doctypeVersion pulls the schema version out of a DOCTYPE directive,
// so "WN-LMF-1.4.dtd" yields "1.4".
func doctypeVersion(directive string) string {
	const marker = "WN-LMF-"
	i := strings.Index(directive, marker)
	if i < 0 {
		return ""
	}
	rest := directive[i+len(marker):]
	j := strings.Index(rest, ".dtd")
	if j < 0 {
		return ""
	}
	return rest[:j]
}

type xmlEntry struct {
	ID    string `xml:"id,attr"`
	Lemma struct {
		WrittenForm  string `xml:"writtenForm,attr"`
		PartOfSpeech string `xml:"partOfSpeech,attr"`
	} `xml:"Lemma"`
	Senses []xmlSense `xml:"Sense"`
}

// The identifier field has no namespace in its tag: the decoder then
// accepts the attribute by local name whichever prefix the document
// binds the Dublin Core namespace to.
type xmlSense struct {
	ID         string        `xml:"id,attr"`
	Synset     string        `xml:"synset,attr"`
	Identifier string        `xml:"identifier,attr"`
	Relations  []xmlRelation `xml:"SenseRelation"`
}

type xmlRelation struct {
	RelType string `xml:"relType,attr"`
	Target  string `xml:"target,attr"`
}

type xmlSynset struct {
	ID           string        `xml:"id,attr"`
	ILI          string        `xml:"ili,attr"`
	PartOfSpeech string        `xml:"partOfSpeech,attr"`
	Members      string        `xml:"members,attr"`
	Definitions  []string      `xml:"Definition"`
	Relations    []xmlRelation `xml:"SynsetRelation"`
}

func (xe *xmlEntry) toEntry() Entry {
	e := Entry{
		ID: xe.ID,
		Lemma: Lemma{
			WrittenForm:  xe.Lemma.WrittenForm,
			PartOfSpeech: xe.Lemma.PartOfSpeech,
		},
	}
	for _, xs := range xe.Senses {
		e.Senses = append(e.Senses, Sense{
			ID:         xs.ID,
			Synset:     xs.Synset,
			Identifier: xs.Identifier,
			Relations:  toRelations(xs.Relations),
		})
	}
	return e
}

func (xs *xmlSynset) toSynset() Synset {
	return Synset{
		ID:           xs.ID,
		ILI:          xs.ILI,
		PartOfSpeech: xs.PartOfSpeech,
		Members:      strings.Fields(xs.Members),
		Definitions:  xs.Definitions,
		Relations:    toRelations(xs.Relations),
	}
}

func toRelations(xr []xmlRelation) []Relation {
	var rels []Relation
	for _, r := range xr {
		rels = append(rels, Relation{RelType: r.RelType, Target: r.Target})
	}
	return rels
}
