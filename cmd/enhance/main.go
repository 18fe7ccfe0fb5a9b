package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/fcbond/ChainNet/internal/catalog"
	"github.com/fcbond/ChainNet/internal/chainnet"
	"github.com/fcbond/ChainNet/internal/enhancer"
	"github.com/fcbond/ChainNet/pkg/editor"
	"github.com/fcbond/ChainNet/pkg/lexicon"
	"github.com/fcbond/ChainNet/pkg/resolver"
)

func main() {
	// A .env file supplies environment defaults; explicit flags win.
	godotenv.Load()

	wordnet := flag.String("wordnet", envOr("CHAINNET_WORDNET", "omw-en:1.4"), "Lexicon to enhance, as project or project:version")
	wnData := flag.String("wn-data", envOr("CHAINNET_WN_DATA", "wn_data"), "Directory holding downloaded lexicons")
	chainnetDir := flag.String("chainnet", envOr("CHAINNET_DATA", "data/chainnet_simple"), "Directory with the ChainNet relation files")
	output := flag.String("output", envOr("CHAINNET_OUTPUT", ""), "Output path for the enhanced lexicon (default <wordnet>.cn.xml)")
	indexFile := flag.String("index", "", "Extra catalog index merged over the built-in one")
	verbose := flag.Bool("verbose", false, "Log the first few skipped relations")
	flag.Parse()

	relations, err := chainnet.Load(*chainnetDir)
	if err != nil {
		log.Fatalf("Error loading ChainNet relations: %v", err)
	}
	log.Printf("Loaded %d ChainNet relations from %s", len(relations), *chainnetDir)

	store, err := lexicon.Open(*wnData)
	if err != nil {
		log.Fatalf("Error opening lexicon store: %v", err)
	}
	defer store.Close()

	if err := ensureInstalled(store, *wordnet, *indexFile); err != nil {
		log.Fatalf("Error installing %s: %v", *wordnet, err)
	}

	info, err := store.Find(*wordnet)
	if err != nil {
		log.Fatalf("Error locating %s: %v", *wordnet, err)
	}

	ed, err := editor.New(store, *wordnet, info.Version+enhancer.VersionSuffix, info.Label+enhancer.LabelSuffix)
	if err != nil {
		log.Fatalf("Error preparing %s for editing: %v", *wordnet, err)
	}

	res, ambiguous, err := resolver.ForLexicon(store, ed.Lexicon())
	if err != nil {
		log.Fatalf("Error building a sense resolver for %s: %v", *wordnet, err)
	}
	if len(ambiguous) > 0 {
		log.Printf("Ignoring %d ambiguous sense keys in %s", len(ambiguous), info.Spec())
	}

	counts := enhancer.Run(relations, res, ed, *verbose)

	outPath := *output
	if outPath == "" {
		outPath = enhancer.DefaultOutputPath(*wordnet)
	}
	if err := ed.Export(outPath); err != nil {
		log.Fatalf("Error writing %s: %v", outPath, err)
	}

	fmt.Printf("Added %d relations and %d reverse relations to %s\n", counts.Added, counts.ReverseAdded, info.Spec())
	fmt.Printf("Skipped %d relations with unresolved senses\n", counts.Skipped)
	if counts.ForwardSkipped > 0 || counts.ReverseSkipped > 0 {
		fmt.Printf("Rejected %d forward and %d reverse relations\n", counts.ForwardSkipped, counts.ReverseSkipped)
	}
	fmt.Printf("Wrote %s\n", outPath)
}

// ensureInstalled downloads and imports the lexicon if the store does
// not already hold a matching version.
func ensureInstalled(store *lexicon.Store, spec, indexFile string) error {
	has, err := store.Has(spec)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	idx, err := catalog.Default()
	if err != nil {
		return err
	}
	if indexFile != "" {
		if err := idx.AddFile(indexFile); err != nil {
			return err
		}
	}
	entry, err := idx.Resolve(spec)
	if err != nil {
		return err
	}
	log.Printf("Downloading %s from %s", entry.Spec(), entry.URL)
	path, err := store.Download(entry.URL, false)
	if err != nil {
		return err
	}
	log.Printf("Importing %s", path)
	return store.ImportFile(path)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
