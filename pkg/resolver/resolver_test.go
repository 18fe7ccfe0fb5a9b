package resolver

import (
	"sort"
	"testing"

	"github.com/fcbond/ChainNet/pkg/lexicon"
	"github.com/fcbond/ChainNet/pkg/lmf"
)

func importLexicon(t *testing.T, lex lmf.Lexicon) (*lexicon.Store, lexicon.Info) {
	t.Helper()
	s, err := lexicon.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Error opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Import(&lmf.Resource{LMFVersion: "1.4", Lexicons: []lmf.Lexicon{lex}}); err != nil {
		t.Fatalf("Error importing lexicon: %v", err)
	}
	info, err := s.Find(lex.ID + ":" + lex.Version)
	if err != nil {
		t.Fatalf("Error finding lexicon: %v", err)
	}
	return s, info
}

func TestForLexiconMetadata(t *testing.T) {
	s, info := importLexicon(t, lmf.Lexicon{
		ID: "omw-en", Label: "OMW English", Language: "en", Version: "1.4",
		Entries: []lmf.Entry{{
			ID:    "omw-en-dog-n",
			Lemma: lmf.Lemma{WrittenForm: "dog", PartOfSpeech: "n"},
			Senses: []lmf.Sense{
				{ID: "omw-en-dog-05928118-n", Synset: "omw-en-05928118-n", Identifier: "dog%1:05:00::"},
				{ID: "omw-en-dog-09886220-n", Synset: "omw-en-09886220-n", Identifier: "dog%1:18:00::"},
			},
		}},
	})

	r, ambiguous, err := ForLexicon(s, info)
	if err != nil {
		t.Fatalf("ForLexicon returned unexpected error: %v", err)
	}
	if len(ambiguous) != 0 {
		t.Errorf("ambiguous = %v, want none", ambiguous)
	}

	id, ok := r.Resolve("dog%1:05:00::")
	if !ok || id != "omw-en-dog-05928118-n" {
		t.Errorf("Resolve(dog%%1:05:00::) = %q, %v, want omw-en-dog-05928118-n", id, ok)
	}
	if id, ok := r.Resolve("cat%1:05:00::"); ok {
		t.Errorf("Resolve(cat%%1:05:00::) = %q, want a miss", id)
	}
}

func TestForLexiconMetadataAmbiguous(t *testing.T) {
	s, info := importLexicon(t, lmf.Lexicon{
		ID: "omw-en", Label: "OMW English", Language: "en", Version: "1.4",
		Entries: []lmf.Entry{{
			ID:    "omw-en-bank-n",
			Lemma: lmf.Lemma{WrittenForm: "bank", PartOfSpeech: "n"},
			Senses: []lmf.Sense{
				{ID: "omw-en-bank-1-n", Synset: "omw-en-1-n", Identifier: "bank%1:14:00::"},
				{ID: "omw-en-bank-2-n", Synset: "omw-en-2-n", Identifier: "bank%1:14:00::"},
				{ID: "omw-en-bank-3-n", Synset: "omw-en-3-n", Identifier: "bank%1:17:01::"},
			},
		}},
	})

	r, ambiguous, err := ForLexicon(s, info)
	if err != nil {
		t.Fatalf("ForLexicon returned unexpected error: %v", err)
	}
	if len(ambiguous) != 1 || ambiguous[0] != "bank%1:14:00::" {
		t.Errorf("ambiguous = %v, want [bank%%1:14:00::]", ambiguous)
	}
	// An ambiguous identifier must never resolve to either sense.
	if id, ok := r.Resolve("bank%1:14:00::"); ok {
		t.Errorf("Resolve(bank%%1:14:00::) = %q, want a miss", id)
	}
	if _, ok := r.Resolve("bank%1:17:01::"); !ok {
		t.Errorf("Resolve(bank%%1:17:01::) missed, want a hit")
	}
}

func TestForLexiconNoMetadata(t *testing.T) {
	s, info := importLexicon(t, lmf.Lexicon{
		ID: "bare-wn", Label: "No Identifiers", Language: "en", Version: "1",
		Entries: []lmf.Entry{{
			ID:     "bare-wn-dog-n",
			Lemma:  lmf.Lemma{WrittenForm: "dog", PartOfSpeech: "n"},
			Senses: []lmf.Sense{{ID: "bare-wn-dog-n-1", Synset: "bare-wn-1-n"}},
		}},
	})

	if _, _, err := ForLexicon(s, info); err == nil {
		t.Errorf("ForLexicon did not return an error, want error for a lexicon without identifiers")
	}
}

func TestForLexiconSenseKeyIDs(t *testing.T) {
	s, info := importLexicon(t, lmf.Lexicon{
		ID: "oewn", Label: "Open English WordNet", Language: "en", Version: "2024",
		Entries: []lmf.Entry{
			{
				ID:    "oewn-abandon-v",
				Lemma: lmf.Lemma{WrittenForm: "abandon", PartOfSpeech: "v"},
				Senses: []lmf.Sense{
					{ID: "oewn-abandon__2.40.01..", Synset: "oewn-02232813-v"},
					{ID: "oewn-abandon__2.31.00..", Synset: "oewn-00615171-v"},
				},
			},
			{
				ID:     "oewn-Aachen-n",
				Lemma:  lmf.Lemma{WrittenForm: "Aachen", PartOfSpeech: "n"},
				Senses: []lmf.Sense{{ID: "oewn-Aachen__1.15.00..", Synset: "oewn-08541609-n"}},
			},
		},
	})

	r, ambiguous, err := ForLexicon(s, info)
	if err != nil {
		t.Fatalf("ForLexicon returned unexpected error: %v", err)
	}
	if len(ambiguous) != 0 {
		t.Errorf("ambiguous = %v, want none", ambiguous)
	}

	id, ok := r.Resolve("abandon%2:40:01::")
	if !ok || id != "oewn-abandon__2.40.01.." {
		t.Errorf("Resolve(abandon%%2:40:01::) = %q, %v, want oewn-abandon__2.40.01..", id, ok)
	}
	// The key is lower case even though the stored id keeps the capital.
	id, ok = r.Resolve("aachen%1:15:00::")
	if !ok || id != "oewn-Aachen__1.15.00.." {
		t.Errorf("Resolve(aachen%%1:15:00::) = %q, %v, want oewn-Aachen__1.15.00..", id, ok)
	}
	if id, ok := r.Resolve("abandon%2:29:00::"); ok {
		t.Errorf("Resolve(abandon%%2:29:00::) = %q, want a miss", id)
	}
}

func TestForLexiconSenseKeyCollision(t *testing.T) {
	s, info := importLexicon(t, lmf.Lexicon{
		ID: "oewn", Label: "Open English WordNet", Language: "en", Version: "2024",
		Entries: []lmf.Entry{
			{
				ID:     "oewn-Polish-a",
				Lemma:  lmf.Lemma{WrittenForm: "Polish", PartOfSpeech: "a"},
				Senses: []lmf.Sense{{ID: "oewn-Polish__3.01.00..", Synset: "oewn-03056021-a"}},
			},
			{
				ID:     "oewn-polish-a",
				Lemma:  lmf.Lemma{WrittenForm: "polish", PartOfSpeech: "a"},
				Senses: []lmf.Sense{{ID: "oewn-polish__3.01.00..", Synset: "oewn-03056021-a"}},
			},
			{
				ID:     "oewn-shine-v",
				Lemma:  lmf.Lemma{WrittenForm: "shine", PartOfSpeech: "v"},
				Senses: []lmf.Sense{{ID: "oewn-shine__2.43.00..", Synset: "oewn-02767855-v"}},
			},
		},
	})

	r, ambiguous, err := ForLexicon(s, info)
	if err != nil {
		t.Fatalf("ForLexicon returned unexpected error: %v", err)
	}
	sort.Strings(ambiguous)
	if len(ambiguous) != 1 || ambiguous[0] != "polish%3:01:00::" {
		t.Errorf("ambiguous = %v, want [polish%%3:01:00::]", ambiguous)
	}
	if id, ok := r.Resolve("polish%3:01:00::"); ok {
		t.Errorf("Resolve(polish%%3:01:00::) = %q, want a miss for the colliding key", id)
	}
	if _, ok := r.Resolve("shine%2:43:00::"); !ok {
		t.Errorf("Resolve(shine%%2:43:00::) missed, want a hit")
	}
}

func TestNewMap(t *testing.T) {
	r := NewMap(map[string]string{"dog%1:05:00::": "x-1"})
	if id, ok := r.Resolve("dog%1:05:00::"); !ok || id != "x-1" {
		t.Errorf("Resolve(dog%%1:05:00::) = %q, %v, want x-1", id, ok)
	}
	if _, ok := r.Resolve("cat%1:05:00::"); ok {
		t.Errorf("Resolve(cat%%1:05:00::) hit, want a miss")
	}
}
