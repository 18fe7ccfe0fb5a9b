package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcbond/ChainNet/pkg/lmf"
)

func testResource() *lmf.Resource {
	return &lmf.Resource{
		LMFVersion: "1.4",
		Lexicons: []lmf.Lexicon{{
			ID:       "test-en",
			Label:    "Testing Wordnet",
			Language: "en",
			Email:    "maintainer@example.com",
			License:  "https://creativecommons.org/licenses/by/4.0/",
			Version:  "1",
			Entries: []lmf.Entry{
				{
					ID:    "test-en-dog-n",
					Lemma: lmf.Lemma{WrittenForm: "dog", PartOfSpeech: "n"},
					Senses: []lmf.Sense{
						{ID: "test-en-dog-n-1", Synset: "test-en-1-n", Identifier: "dog%1:05:00::"},
						{ID: "test-en-dog-n-2", Synset: "test-en-2-n", Identifier: "dog%1:18:00::"},
					},
				},
				{
					ID:    "test-en-cat-n",
					Lemma: lmf.Lemma{WrittenForm: "cat", PartOfSpeech: "n"},
					Senses: []lmf.Sense{
						{
							ID: "test-en-cat-n-1", Synset: "test-en-3-n", Identifier: "cat%1:05:00::",
							Relations: []lmf.Relation{{RelType: "derivation", Target: "test-en-dog-n-1"}},
						},
					},
				},
			},
			Synsets: []lmf.Synset{
				{
					ID: "test-en-1-n", ILI: "i1", PartOfSpeech: "n",
					Members:     []string{"test-en-dog-n-1"},
					Definitions: []string{"a domestic canine"},
					Relations:   []lmf.Relation{{RelType: "hypernym", Target: "test-en-3-n"}},
				},
				{ID: "test-en-2-n", ILI: "i2", PartOfSpeech: "n"},
				{ID: "test-en-3-n", ILI: "i3", PartOfSpeech: "n"},
			},
		}},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestImportAndFind(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))

	lex, err := s.Find("test-en:1")
	require.NoError(t, err)
	assert.Equal(t, "test-en", lex.Project)
	assert.Equal(t, "1", lex.Version)
	assert.Equal(t, "Testing Wordnet", lex.Label)
	assert.Equal(t, "test-en:1", lex.Spec())

	// A bare project id works while only one version is installed.
	lex, err = s.Find("test-en")
	require.NoError(t, err)
	assert.Equal(t, "1", lex.Version)

	has, err := s.Has("test-en:1")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = s.Has("test-en:2")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = s.Find("missing-wn")
	assert.Error(t, err)
}

func TestImportDuplicate(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))
	err := s.Import(testResource())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already installed")
}

func TestFindAmbiguousBareSpec(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))
	second := testResource()
	second.Lexicons[0].Version = "2"
	require.NoError(t, s.Import(second))

	_, err := s.Find("test-en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 installed versions")

	lex, err := s.Find("test-en:2")
	require.NoError(t, err)
	assert.Equal(t, "2", lex.Version)
}

func TestCounts(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))
	lex, err := s.Find("test-en:1")
	require.NoError(t, err)

	entries, senses, synsets, err := s.Counts(lex)
	require.NoError(t, err)
	assert.Equal(t, 2, entries)
	assert.Equal(t, 3, senses)
	assert.Equal(t, 3, synsets)
}

func TestSenseIdentifiers(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))
	lex, err := s.Find("test-en:1")
	require.NoError(t, err)

	ids, ambiguous, err := s.SenseIdentifiers(lex)
	require.NoError(t, err)
	assert.Empty(t, ambiguous)
	assert.Equal(t, map[string]string{
		"dog%1:05:00::": "test-en-dog-n-1",
		"dog%1:18:00::": "test-en-dog-n-2",
		"cat%1:05:00::": "test-en-cat-n-1",
	}, ids)
}

func TestSenseIdentifiersAmbiguous(t *testing.T) {
	s := openTestStore(t)
	res := &lmf.Resource{Lexicons: []lmf.Lexicon{{
		ID: "amb-en", Label: "Ambiguous", Language: "en", Version: "1",
		Entries: []lmf.Entry{{
			ID:    "amb-en-bank-n",
			Lemma: lmf.Lemma{WrittenForm: "bank", PartOfSpeech: "n"},
			Senses: []lmf.Sense{
				{ID: "amb-en-bank-n-1", Synset: "amb-en-1-n", Identifier: "bank%1:14:00::"},
				{ID: "amb-en-bank-n-2", Synset: "amb-en-2-n", Identifier: "bank%1:14:00::"},
				{ID: "amb-en-bank-n-3", Synset: "amb-en-3-n", Identifier: "bank%1:17:00::"},
			},
		}},
	}}}
	require.NoError(t, s.Import(res))
	lex, err := s.Find("amb-en:1")
	require.NoError(t, err)

	ids, ambiguous, err := s.SenseIdentifiers(lex)
	require.NoError(t, err)
	// The duplicated identifier must not resolve to either sense.
	assert.Equal(t, []string{"bank%1:14:00::"}, ambiguous)
	assert.Equal(t, map[string]string{"bank%1:17:00::": "amb-en-bank-n-3"}, ids)
}

func TestSenseExists(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))
	lex, err := s.Find("test-en:1")
	require.NoError(t, err)

	exists, err := s.SenseExists(lex, "test-en-dog-n-1")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = s.SenseExists(lex, "test-en-eel-n-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHasSenseRelation(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))
	lex, err := s.Find("test-en:1")
	require.NoError(t, err)

	has, err := s.HasSenseRelation(lex, "test-en-cat-n-1", "derivation", "test-en-dog-n-1")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = s.HasSenseRelation(lex, "test-en-cat-n-1", "metaphor", "test-en-dog-n-1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestExport(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Import(testResource()))
	lex, err := s.Find("test-en:1")
	require.NoError(t, err)

	out, err := s.Export(lex)
	require.NoError(t, err)
	assert.Equal(t, "test-en", out.ID)
	assert.Equal(t, "1", out.Version)
	assert.Equal(t, "Testing Wordnet", out.Label)

	// Entries come back sorted by id, senses in document order.
	require.Len(t, out.Entries, 2)
	assert.Equal(t, "test-en-cat-n", out.Entries[0].ID)
	assert.Equal(t, "test-en-dog-n", out.Entries[1].ID)
	require.Len(t, out.Entries[1].Senses, 2)
	assert.Equal(t, "test-en-dog-n-1", out.Entries[1].Senses[0].ID)
	assert.Equal(t, "test-en-dog-n-2", out.Entries[1].Senses[1].ID)
	assert.Equal(t, "dog%1:05:00::", out.Entries[1].Senses[0].Identifier)

	require.Len(t, out.Entries[0].Senses, 1)
	assert.Equal(t, []lmf.Relation{{RelType: "derivation", Target: "test-en-dog-n-1"}},
		out.Entries[0].Senses[0].Relations)

	require.Len(t, out.Synsets, 3)
	first := out.Synsets[0]
	assert.Equal(t, "test-en-1-n", first.ID)
	assert.Equal(t, []string{"test-en-dog-n-1"}, first.Members)
	assert.Equal(t, []string{"a domestic canine"}, first.Definitions)
	assert.Equal(t, []lmf.Relation{{RelType: "hypernym", Target: "test-en-3-n"}}, first.Relations)
}
