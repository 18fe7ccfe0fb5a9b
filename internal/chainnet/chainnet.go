// Package chainnet loads the ChainNet figurative-language dataset: the
// metaphor and metonymy links between wordnet senses.
package chainnet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Relation is one figurative link from the dataset. FromSense and
// ToSense are sense keys such as "dog%1:05:00::", which still need to be
// resolved against a particular wordnet's sense identifiers. Category is
// the relation label to insert, either "metaphor" or "metonym".
type Relation struct {
	Category  string
	Wordform  string
	FromSense string
	ToSense   string
}

// sources lists the per-category dataset files in load order. The
// metonymy file's contents become "metonym" relations, the label the
// schema uses.
var sources = []struct {
	filename string
	category string
}{
	{"chainnet_metaphor.json", "metaphor"},
	{"chainnet_metonymy.json", "metonym"},
}

// inverses pairs each forward relation label with the label of the
// reverse edge inserted on the target sense.
var inverses = map[string]string{
	"metaphor": "has_metaphor",
	"metonym":  "has_metonym",
}

// Inverse returns the reverse relation label for a forward category.
func Inverse(category string) (string, bool) {
	inv, ok := inverses[category]
	return inv, ok
}

type relationFile struct {
	Content []struct {
		Wordform  string `json:"wordform"`
		FromSense string `json:"from_sense"`
		ToSense   string `json:"to_sense"`
	} `json:"content"`
}

// Load reads both category files from dir and returns their records as a
// single flat list, metaphor relations first, in file order. Both files
// must be present and parseable; an empty content list is fine.
func Load(dir string) ([]Relation, error) {
	var relations []Relation
	for _, src := range sources {
		path := filepath.Join(dir, src.filename)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %v", path, err)
		}
		var file relationFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing %s: %v", path, err)
		}
		for _, item := range file.Content {
			relations = append(relations, Relation{
				Category:  src.category,
				Wordform:  item.Wordform,
				FromSense: item.FromSense,
				ToSense:   item.ToSense,
			})
		}
	}
	return relations, nil
}
