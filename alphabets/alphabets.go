// Package alphabets holds named, predefined directory alphabets, loaded
// from an embedded CSV table.
package alphabets

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// Preset names one predefined alphabet.
type Preset struct {
	Name        string `csv:"name"`
	Slug        string `csv:"slug"`
	Description string `csv:"description"`
	Characters  string `csv:"characters"`
}

// Alphabet converts the preset's character list into a rexfat.Alphabet.
func (p Preset) Alphabet() rexfat.Alphabet {
	return rexfat.Alphabet(p.Characters)
}

//go:embed presets.csv
var presetsRawCSV string

var presets map[string]Preset
var presetOrder []string

// Get looks up a predefined alphabet by slug (e.g. "default", "lowercase").
func Get(slug string) (rexfat.Alphabet, error) {
	preset, ok := presets[slug]
	if !ok {
		return nil, rexfat.ErrInvalidAlphabet.WithMessage(
			fmt.Sprintf("no predefined alphabet named %q (known: %s)",
				slug, strings.Join(Names(), ", ")))
	}
	return preset.Alphabet(), nil
}

// Names lists every predefined alphabet's slug, in the order they appear
// in the embedded table.
func Names() []string {
	return append([]string(nil), presetOrder...)
}

func init() {
	presets = make(map[string]Preset)
	reader := strings.NewReader(presetsRawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row Preset) error {
		if _, exists := presets[row.Slug]; exists {
			return fmt.Errorf("duplicate predefined alphabet slug %q", row.Slug)
		}
		presets[row.Slug] = row
		presetOrder = append(presetOrder, row.Slug)
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}
