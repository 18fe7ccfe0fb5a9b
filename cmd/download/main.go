package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fcbond/ChainNet/internal/catalog"
	"github.com/fcbond/ChainNet/pkg/lexicon"
)

func main() {
	wordnet := flag.String("wordnet", "omw-en:1.4", "Lexicon to download, as project or project:version")
	wnData := flag.String("wn-data", "wn_data", "Directory holding downloaded lexicons")
	indexFile := flag.String("index", "", "Extra catalog index merged over the built-in one")
	force := flag.Bool("force", false, "Re-download the archive even if it is cached")
	flag.Parse()

	store, err := lexicon.Open(*wnData)
	if err != nil {
		log.Fatalf("Error opening lexicon store: %v", err)
	}
	defer store.Close()

	has, err := store.Has(*wordnet)
	if err != nil {
		log.Fatalf("Error checking the store: %v", err)
	}
	if has && !*force {
		fmt.Printf("%s is already installed in %s\n", *wordnet, store.Dir())
		return
	}

	idx, err := catalog.Default()
	if err != nil {
		log.Fatalf("Error loading the catalog: %v", err)
	}
	if *indexFile != "" {
		if err := idx.AddFile(*indexFile); err != nil {
			log.Fatalf("Error merging %s: %v", *indexFile, err)
		}
	}
	entry, err := idx.Resolve(*wordnet)
	if err != nil {
		log.Fatalf("Error resolving %s: %v", *wordnet, err)
	}

	log.Printf("Downloading %s from %s", entry.Spec(), entry.URL)
	path, err := store.Download(entry.URL, *force)
	if err != nil {
		log.Fatalf("Error downloading %s: %v", entry.URL, err)
	}
	if has {
		fmt.Printf("Refreshed the archive at %s; %s was already imported\n", path, *wordnet)
		return
	}
	if err := store.ImportFile(path); err != nil {
		log.Fatalf("Error importing %s: %v", path, err)
	}

	info, err := store.Find(entry.Spec())
	if err != nil {
		log.Fatalf("Error locating the imported lexicon: %v", err)
	}
	entries, senses, synsets, err := store.Counts(info)
	if err != nil {
		log.Fatalf("Error counting %s: %v", info.Spec(), err)
	}
	fmt.Printf("Installed %s: %d entries, %d senses, %d synsets\n", info.Spec(), entries, senses, synsets)
}
