package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"github.com/vocdoni/dreip/crypto/ecc/curves"
	"github.com/vocdoni/dreip/crypto/random"
	"github.com/vocdoni/dreip/dreip"
	"github.com/vocdoni/dreip/log"
	"github.com/vocdoni/dreip/util"
)

func main() {
	candidates := flag.StringSlice("candidates", []string{"Alice", "Bob", "Eve"}, "election candidates")
	ballots := flag.Int("ballots", 10, "number of ballots to cast")
	audits := flag.Int("audits", 2, "number of cast ballots to audit instead of confirm")
	curve := flag.String("curve", util.Env("DREIP_CURVE", curves.DefaultCurve), fmt.Sprintf("curve to use %v", curves.Types()))
	seed := flag.String("seed", "", "seed for a reproducible run, random and logged if empty")
	output := flag.String("output", "-", "file to write the election results to, - for stdout")
	logLevel := flag.String("logLevel", util.Env("DREIP_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	flag.Parse()
	log.Init(*logLevel, "stderr", nil)

	if *audits > *ballots || *audits < 0 {
		log.Fatalf("cannot audit %d of %d ballots", *audits, *ballots)
	}

	if *seed == "" {
		var err error
		if *seed, err = util.RandomHex(random.New(), 16); err != nil {
			log.Fatal(err)
		}
	}
	log.Infow("using seed", "seed", *seed)
	rng := random.Seeded([]byte(*seed))
	suite, err := curves.New(*curve)
	if err != nil {
		log.Fatal(err)
	}
	election, err := dreip.New(suite, *candidates, rng)
	if err != nil {
		log.Fatal(err)
	}
	log.Infow("election created", "curve", suite.Type(), "candidates", election.Candidates)

	start := time.Now()
	results, err := run(election, rng, *ballots, *audits)
	if err != nil {
		log.Fatal(err)
	}
	log.Infow("ballots cast",
		"confirmed", len(results.Confirmed),
		"audited", len(results.Audited),
		"took", time.Since(start).String())

	start = time.Now()
	if report := results.Inspect(); !report.Valid() {
		log.Fatalf("election does not verify: %s", report)
	}
	log.Infow("election verified", "took", time.Since(start).String())
	for _, c := range election.Candidates {
		if t, ok := results.Totals[c]; ok {
			log.Infow("tally", "candidate", c, "votes", t.Tally.String())
		}
	}

	if err := write(*output, results); err != nil {
		log.Fatal(err)
	}
}

// run casts n ballots with random choices, audits the first audits of them
// and confirms the rest, accumulating the totals from the draft secrets.
func run(e *dreip.Election, rng io.Reader, n, audits int) (*dreip.Results, error) {
	results := &dreip.Results{
		Params:    e.Public(),
		Audited:   make(map[string]*dreip.AuditedBallot),
		Confirmed: make(map[string]*dreip.Ballot),
		Totals:    make(map[string]*dreip.Totals),
	}
	order := e.Suite().Order()
	for i := range n {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("cannot generate ballot id: %w", err)
		}
		choice, err := util.RandomInt(rng, 0, len(e.Candidates))
		if err != nil {
			return nil, err
		}
		yes := e.Candidates[choice]
		draft, err := e.Draft(rng, id.String(), yes, e.Candidates)
		if err != nil {
			return nil, fmt.Errorf("cannot create ballot %s: %w", id, err)
		}
		if i < audits {
			audited, err := draft.Audit()
			if err != nil {
				return nil, err
			}
			if !audited.Verify(results.Params, id.String()) {
				return nil, fmt.Errorf("audited ballot %s does not verify", id)
			}
			log.Debugw("ballot audited", "id", id.String(), "yes", audited.Yes())
			results.Audited[id.String()] = audited
			continue
		}
		for c, s := range draft.Secrets() {
			if results.Totals[c] == nil {
				results.Totals[c] = new(dreip.Totals)
			}
			results.Totals[c].Add(order, s)
		}
		if results.Confirmed[id.String()], err = draft.Confirm(); err != nil {
			return nil, err
		}
		log.Debugw("ballot confirmed", "id", id.String())
	}
	return results, nil
}

func write(output string, results *dreip.Results) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode results: %w", err)
	}
	data = append(data, '\n')
	if output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("cannot write results: %w", err)
	}
	log.Infow("results written", "file", output)
	return nil
}
