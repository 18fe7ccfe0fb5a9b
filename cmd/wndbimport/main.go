package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fcbond/ChainNet/internal/wndb"
	"github.com/fcbond/ChainNet/pkg/lexicon"
)

func main() {
	dbDir := flag.String("wndb", "", "Path to a WNDB-format database directory")
	wnData := flag.String("wn-data", "wn_data", "Directory holding the lexicon store")
	id := flag.String("id", "pwn", "Lexicon id for the converted database")
	version := flag.String("version", "3.0", "Version for the converted database")
	label := flag.String("label", "Princeton WordNet", "Label for the converted database")
	language := flag.String("language", "en", "BCP 47 language tag for the converted database")
	flag.Parse()

	if *dbDir == "" {
		log.Fatal("Please provide the database directory using the -wndb flag")
	}

	res, err := wndb.Convert(*dbDir, wndb.Options{
		LexiconID: *id,
		Label:     *label,
		Version:   *version,
		Language:  *language,
	})
	if err != nil {
		log.Fatalf("Error converting %s: %v", *dbDir, err)
	}

	store, err := lexicon.Open(*wnData)
	if err != nil {
		log.Fatalf("Error opening lexicon store: %v", err)
	}
	defer store.Close()

	if err := store.Import(res); err != nil {
		log.Fatalf("Error importing the converted lexicon: %v", err)
	}

	info, err := store.Find(*id + ":" + *version)
	if err != nil {
		log.Fatalf("Error locating the imported lexicon: %v", err)
	}
	entries, senses, synsets, err := store.Counts(info)
	if err != nil {
		log.Fatalf("Error counting %s: %v", info.Spec(), err)
	}
	fmt.Printf("Imported %s: %d entries, %d senses, %d synsets\n", info.Spec(), entries, senses, synsets)
}
