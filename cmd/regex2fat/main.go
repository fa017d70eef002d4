// Command regex2fat compiles a regular expression into a FAT32 image whose
// directory graph is the regex's DFA.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/xaionaro-go/bytesextra"

	"github.com/8051enthusiast/regex2fat-go/alphabets"
	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/layout"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

func main() {
	app := &cli.App{
		Name:      "regex2fat",
		Usage:     "Convert a regex DFA into a FAT32 file system image",
		ArgsUsage: "<pattern> <outfile>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "anchor", Aliases: []string{"a"}, Usage: "anchor regex at beginning"},
			&cli.BoolFlag{Name: "nomatch", Aliases: []string{"n"}, Usage: "generate NOMATCH files in rejecting states"},
			&cli.BoolFlag{Name: "randomize", Aliases: []string{"r"}, Usage: "randomize cluster numbers for the states"},
			&cli.StringFlag{Name: "alphabet", Value: "default", Usage: "named alphabet preset (see alphabets.Names)"},
			&cli.Int64Flag{Name: "seed", Usage: "seed for --randomize, for a reproducible layout"},
			&cli.BoolFlag{Name: "verify", Usage: "read the written image back and check it before exiting"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("regex2fat: %s", err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("expected exactly two arguments: <pattern> <outfile>", 1)
	}
	pattern := c.Args().Get(0)
	outfile := c.Args().Get(1)

	alphabet, err := alphabets.Get(c.String("alphabet"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	automaton, err := dfa.Compile(pattern, alphabet, dfa.Options{Anchored: c.Bool("anchor")})
	if err != nil {
		return cli.Exit(fmt.Sprintf("could not compile regex %q: %s", pattern, err), 1)
	}

	opts := layout.Options{NoMatch: c.Bool("nomatch")}
	if c.Bool("randomize") {
		opts.Shuffle = shuffleFunc(c)
	}

	file, err := os.Create(outfile)
	if err != nil {
		return cli.Exit(rexfat.ErrOutputOpenFailed.WrapError(err).Error(), 1)
	}
	defer file.Close()

	if err := layout.Assemble(file, automaton, alphabet, opts); err != nil {
		return cli.Exit(fmt.Sprintf("could not write DFA to %q: %s", outfile, err), 1)
	}

	if c.Bool("verify") {
		return verifyWrittenImage(outfile, alphabet)
	}
	return nil
}

// shuffleFunc returns the Fisher-Yates shuffle layout.Assemble uses to
// randomize cluster layout, seeded either from --seed (for a reproducible
// image) or from the system entropy source.
func shuffleFunc(c *cli.Context) func([]dfa.StateID) {
	var rng *rand.Rand
	if c.IsSet("seed") {
		rng = rand.New(rand.NewSource(c.Int64("seed")))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return func(s []dfa.StateID) {
		rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	}
}

func verifyWrittenImage(outfile string, alphabet rexfat.Alphabet) error {
	raw, err := os.ReadFile(outfile)
	if err != nil {
		return cli.Exit(rexfat.ErrIOFailed.WrapError(err).Error(), 1)
	}
	rws := bytesextra.NewReadWriteSeeker(raw)
	if err := layout.Validate(rws, int64(len(raw)), alphabet); err != nil {
		return cli.Exit(fmt.Sprintf("verification failed: %s", err), 1)
	}
	return nil
}
