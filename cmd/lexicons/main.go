package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fcbond/ChainNet/pkg/lexicon"
)

func main() {
	wnData := flag.String("wn-data", "wn_data", "Directory holding downloaded lexicons")
	flag.Parse()

	store, err := lexicon.Open(*wnData)
	if err != nil {
		log.Fatalf("Error opening lexicon store: %v", err)
	}
	defer store.Close()

	lexicons, err := store.Lexicons()
	if err != nil {
		log.Fatalf("Error listing lexicons: %v", err)
	}
	if len(lexicons) == 0 {
		fmt.Printf("No lexicons installed in %s\n", store.Dir())
		return
	}
	for _, info := range lexicons {
		entries, senses, synsets, err := store.Counts(info)
		if err != nil {
			log.Fatalf("Error counting %s: %v", info.Spec(), err)
		}
		fmt.Printf("%s\t%s [%s]\t%d entries\t%d senses\t%d synsets\n",
			info.Spec(), info.Label, info.Language, entries, senses, synsets)
	}
}
