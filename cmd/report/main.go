package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fcbond/ChainNet/pkg/lmf"
)

type RelationTally struct {
	Type    string
	Senses  int
	Synsets int
}

func main() {
	filePath := flag.String("file", "", "Path to a WN-LMF XML file")
	outputFormat := flag.String("output", "csv", "Output format: csv or png")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("Please provide a lexicon file using the -file flag")
	}

	res, err := lmf.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Error reading lexicon: %v", err)
	}

	tallies := tallyRelations(res)

	switch *outputFormat {
	case "csv":
		outputCSV(tallies)
	case "png":
		outputPNG(tallies)
	default:
		log.Fatalf("Unsupported output format: %s", *outputFormat)
	}
}

func tallyRelations(res *lmf.Resource) []RelationTally {
	senses := make(map[string]int)
	synsets := make(map[string]int)
	for _, lex := range res.Lexicons {
		for _, entry := range lex.Entries {
			for _, sense := range entry.Senses {
				for _, rel := range sense.Relations {
					senses[rel.RelType]++
				}
			}
		}
		for _, synset := range lex.Synsets {
			for _, rel := range synset.Relations {
				synsets[rel.RelType]++
			}
		}
	}

	types := make(map[string]bool)
	for t := range senses {
		types[t] = true
	}
	for t := range synsets {
		types[t] = true
	}

	var tallies []RelationTally
	for t := range types {
		tallies = append(tallies, RelationTally{Type: t, Senses: senses[t], Synsets: synsets[t]})
	}
	sort.Slice(tallies, func(i, j int) bool { return tallies[i].Type < tallies[j].Type })
	return tallies
}

func outputCSV(tallies []RelationTally) {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	w.Write([]string{"Relation Type", "Sense Relations", "Synset Relations"})

	for _, t := range tallies {
		w.Write([]string{
			t.Type,
			fmt.Sprintf("%d", t.Senses),
			fmt.Sprintf("%d", t.Synsets),
		})
	}
}

func outputPNG(tallies []RelationTally) {
	p := plot.New()
	p.Title.Text = "Relation Types"
	p.Y.Label.Text = "Count"

	senseData := make(plotter.Values, len(tallies))
	synsetData := make(plotter.Values, len(tallies))
	var names []string
	for i, t := range tallies {
		senseData[i] = float64(t.Senses)
		synsetData[i] = float64(t.Synsets)
		names = append(names, t.Type)
	}

	w := vg.Points(12)
	senseBars := addBars(p, senseData, -w/2, w, color.RGBA{R: 64, G: 96, B: 192, A: 255})
	synsetBars := addBars(p, synsetData, w/2, w, color.RGBA{R: 192, G: 96, B: 64, A: 255})
	p.Legend.Add("Sense Relations", senseBars)
	p.Legend.Add("Synset Relations", synsetBars)
	p.Legend.Top = true
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = -1

	if err := p.Save(10*vg.Inch, 5*vg.Inch, "relations.png"); err != nil {
		log.Fatal(err)
	}
}

func addBars(p *plot.Plot, data plotter.Values, offset, width vg.Length, c color.Color) *plotter.BarChart {
	bars, err := plotter.NewBarChart(data, width)
	if err != nil {
		log.Fatal(err)
	}
	bars.Offset = offset
	bars.Color = c
	bars.LineStyle.Width = 0
	p.Add(bars)
	return bars
}
