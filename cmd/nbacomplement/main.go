// Command nbacomplement reads a Büchi automaton in the line-oriented
// text format, complements it under the selected variant, and writes
// the result in the same format.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"nbacomplement/internal/automaton"
	"nbacomplement/internal/driver"
	"nbacomplement/internal/format"
	"nbacomplement/internal/options"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("nbacomplement", flag.ContinueOnError)
	outPath := fs.String("o", "", "write the complement automaton to this file")
	optsPath := fs.String("opts", "", "load an options file (key = value; pairs)")
	mode := fs.String("mode", "", "kv | schewe | schewe-reduced (overrides -opts)")
	timeout := fs.Duration("timeout", 0, "abort construction after this duration (0 = no limit)")

	cutPoint := fs.Bool("cutPoint", false, "inverseRank-based O-set semantics instead of odd-complement")
	succEmptyCheck := fs.Bool("succEmptyCheck", false, "enable rank-cache hits using <=-domination")
	roMinState := fs.Int("ROMinState", 0, "minimum |S| for the reduced optimisation enumerator")
	roMinRank := fs.Int("ROMinRank", 0, "minimum parent maxRank for the same")
	cacheMaxState := fs.Int("CacheMaxState", 0, "cache only when |S| <= this (0 = use default)")
	cacheMaxRank := fs.Int("CacheMaxRank", 0, "cache only when parent maxRank <= this (0 = use default)")
	semidetOpt := fs.Bool("semidetOpt", false, "clamp rank bound to 3 for semideterministic inputs")
	delay := fs.Bool("delay", false, "enable delayed tight-entry")
	weight := fs.Float64("w", 0, "delayed-entry weight (0 = use default)")
	version := fs.String("version", "", "delayed-entry scoring variant: version1 | version2")
	elevatorRank := fs.Bool("elevatorRank", false, "enable SCC-based rank bound refinement")
	eta4 := fs.Bool("eta4", false, "drop tight successors whose S intersect F is empty")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] INPUT\n", fs.Name())
		return 1
	}

	opts := options.Default()
	if *optsPath != "" {
		data, err := os.ReadFile(*optsPath)
		if err != nil {
			log.Printf("reading options file: %v", err)
			return 1
		}
		fileOpts, err := options.LoadFile(string(data))
		if err != nil {
			log.Printf("loading options file: %v", err)
			return 1
		}
		opts = opts.Merge(fileOpts)
	}
	opts = opts.Merge(flagOverrides(*mode, *cutPoint, *succEmptyCheck, *roMinState, *roMinRank, *cacheMaxState, *cacheMaxRank, *semidetOpt, *delay, *weight, *version, *elevatorRank, *eta4))

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Printf("reading input: %v", err)
		return 1
	}
	a, err := format.Parse(input)
	if err != nil {
		log.Printf("parsing input: %v", err)
		return 1
	}

	out, stats, err := complementWithTimeout(a, opts, *timeout)
	if err != nil {
		log.Printf("%v", err)
		var de *driver.Error
		if errors.As(err, &de) && de.Kind == driver.KindResourceExhausted {
			return 2
		}
		return 1
	}

	encoded := format.Write(out)
	if *outPath != "" {
		if err := os.WriteFile(*outPath, encoded, 0o644); err != nil {
			log.Printf("writing output: %v", err)
			return 1
		}
	} else {
		os.Stdout.Write(encoded)
	}

	fmt.Printf("states=%d transitions=%d elapsed=%s\n", stats.States, stats.Transitions, stats.Elapsed)
	return 0
}

// complementWithTimeout enforces timeout externally: cancellation is not
// cooperative, so the construction itself never observes a context, but
// a timed-out call is reported the same way as resource exhaustion so
// the CLI's exit-2 contract still holds. It also recovers an invariant
// violation panicked up from driver.Complement, converting it back into
// a plain *driver.Error — this is the only recover() in the program, and
// it runs in whichever goroutine actually calls Complement so it catches
// the panic regardless of the timeout/no-timeout path taken.
func complementWithTimeout(a *automaton.Automaton, opts options.Options, timeout time.Duration) (*automaton.Automaton, driver.Stats, error) {
	type result struct {
		out   *automaton.Automaton
		stats driver.Stats
		err   error
	}

	attempt := func() (r result) {
		defer func() {
			if rec := recover(); rec != nil {
				if de, ok := rec.(*driver.Error); ok {
					r.err = de
					return
				}
				r.err = &driver.Error{Kind: driver.KindInvariantViolation, Msg: fmt.Sprintf("%v", rec)}
			}
		}()
		r.out, r.stats, r.err = driver.Complement(a, opts)
		return r
	}

	if timeout <= 0 {
		r := attempt()
		return r.out, r.stats, r.err
	}

	ch := make(chan result, 1)
	go func() { ch <- attempt() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	select {
	case r := <-ch:
		return r.out, r.stats, r.err
	case <-ctx.Done():
		return nil, driver.Stats{}, &driver.Error{Kind: driver.KindResourceExhausted, Msg: "construction exceeded timeout"}
	}
}

func flagOverrides(mode string, cutPoint, succEmptyCheck bool, roMinState, roMinRank, cacheMaxState, cacheMaxRank int, semidetOpt, delay bool, weight float64, version string, elevatorRank, eta4 bool) options.Options {
	return options.Options{
		Mode:           options.Mode(mode),
		CutPoint:       cutPoint,
		SuccEmptyCheck: succEmptyCheck,
		ROMinState:     roMinState,
		ROMinRank:      roMinRank,
		CacheMaxState:  cacheMaxState,
		CacheMaxRank:   cacheMaxRank,
		SemidetOpt:     semidetOpt,
		Delay:          delay,
		Weight:         weight,
		Version:        options.Version(version),
		ElevatorRank:   elevatorRank,
		Eta4:           eta4,
	}
}
