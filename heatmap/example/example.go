// Package main demonstrates the use of the heatmap package to generate the
// car heatmap SVG from random data.
package main

import (
	"fmt"
	"math/rand"

	"github.com/stsysd/collisionviz/dataset"
	"github.com/stsysd/collisionviz/heatmap"
	"github.com/stsysd/collisionviz/model"
)

func main() {
	// Generate sample data for ten years
	ds, err := dataset.New(generateRecords(2013, 2022))
	if err != nil {
		panic(err)
	}

	lo, hi := ds.ValueDomain()
	r := ds.DefaultRange()
	f := heatmap.BuildFrame(heatmap.DefaultLayout(), heatmap.Selection{
		Range:    r,
		Records:  ds.Select(r),
		ValueMin: lo,
		ValueMax: hi,
	}, false)

	// Output to stdout
	fmt.Println(heatmap.RenderSVG(f, heatmap.DefaultLayout()))
}

// generateRecords creates random collision counts for every weekday of
// every year
func generateRecords(from, to int) []model.Record {
	var records []model.Record
	for year := from; year <= to; year++ {
		for _, wd := range model.Weekdays() {
			// Fridays are busier
			count := 200 + rand.Intn(100)
			if wd == model.Friday {
				count += rand.Intn(80)
			}

			// Leave the occasional gap
			if rand.Intn(30) == 0 {
				continue
			}
			records = append(records, model.Record{Year: year, Weekday: wd, Value: float64(count)})
		}
	}
	return records
}
