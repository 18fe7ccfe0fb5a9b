package lmf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Write serializes res as WN-LMF XML. The serializer is hand-built
// because the document needs a DOCTYPE line naming the schema DTD and
// the conventional attribute order of published wordnets, neither of
// which encoding/xml will produce.
func Write(w io.Writer, res *Resource) error {
	x := &xmlWriter{w: bufio.NewWriter(w)}
	version := res.LMFVersion
	if version == "" {
		version = Version
	}
	x.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	x.printf("<!DOCTYPE LexicalResource SYSTEM \"http://globalwordnet.github.io/schemas/WN-LMF-%s.dtd\">\n", version)
	x.printf("<LexicalResource xmlns:dc=%q>\n", DC)
	for i := range res.Lexicons {
		x.lexicon(&res.Lexicons[i])
	}
	x.printf("</LexicalResource>\n")
	if x.err != nil {
		return x.err
	}
	return x.w.Flush()
}

// WriteFile serializes res to a file at path.
func WriteFile(path string, res *Resource) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v", path, err)
	}
	if err := Write(f, res); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %v", path, err)
	}
	return f.Close()
}

type xmlWriter struct {
	w   *bufio.Writer
	err error
}

func (x *xmlWriter) printf(format string, args ...interface{}) {
	if x.err != nil {
		return
	}
	_, x.err = fmt.Fprintf(x.w, format, args...)
}

func (x *xmlWriter) lexicon(lex *Lexicon) {
	x.printf("  <Lexicon id=\"%s\"", escape(lex.ID))
	x.printf(" label=\"%s\"", escape(lex.Label))
	x.printf(" language=\"%s\"", escape(lex.Language))
	x.printf(" email=\"%s\"", escape(lex.Email))
	x.printf(" license=\"%s\"", escape(lex.License))
	x.printf(" version=\"%s\"", escape(lex.Version))
	if lex.URL != "" {
		x.printf(" url=\"%s\"", escape(lex.URL))
	}
	if lex.Citation != "" {
		x.printf(" citation=\"%s\"", escape(lex.Citation))
	}
	x.printf(">\n")
	for i := range lex.Entries {
		x.entry(&lex.Entries[i])
	}
	for i := range lex.Synsets {
		x.synset(&lex.Synsets[i])
	}
	x.printf("  </Lexicon>\n")
}

func (x *xmlWriter) entry(e *Entry) {
	x.printf("    <LexicalEntry id=\"%s\">\n", escape(e.ID))
	x.printf("      <Lemma writtenForm=\"%s\" partOfSpeech=\"%s\"/>\n",
		escape(e.Lemma.WrittenForm), escape(e.Lemma.PartOfSpeech))
	for i := range e.Senses {
		x.sense(&e.Senses[i])
	}
	x.printf("    </LexicalEntry>\n")
}

func (x *xmlWriter) sense(s *Sense) {
	x.printf("      <Sense id=\"%s\" synset=\"%s\"", escape(s.ID), escape(s.Synset))
	if s.Identifier != "" {
		x.printf(" dc:identifier=\"%s\"", escape(s.Identifier))
	}
	if len(s.Relations) == 0 {
		x.printf("/>\n")
		return
	}
	x.printf(">\n")
	for _, r := range s.Relations {
		x.printf("        <SenseRelation relType=\"%s\" target=\"%s\"/>\n",
			escape(r.RelType), escape(r.Target))
	}
	x.printf("      </Sense>\n")
}

func (x *xmlWriter) synset(s *Synset) {
	x.printf("    <Synset id=\"%s\"", escape(s.ID))
	if s.ILI != "" {
		x.printf(" ili=\"%s\"", escape(s.ILI))
	}
	if len(s.Members) > 0 {
		x.printf(" members=\"%s\"", escape(strings.Join(s.Members, " ")))
	}
	if s.PartOfSpeech != "" {
		x.printf(" partOfSpeech=\"%s\"", escape(s.PartOfSpeech))
	}
	if len(s.Definitions) == 0 && len(s.Relations) == 0 {
		x.printf("/>\n")
		return
	}
	x.printf(">\n")
	for _, d := range s.Definitions {
		x.printf("      <Definition>%s</Definition>\n", escape(d))
	}
	for _, r := range s.Relations {
		x.printf("      <SynsetRelation relType=\"%s\" target=\"%s\"/>\n",
			escape(r.RelType), escape(r.Target))
	}
	x.printf("    </Synset>\n")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
