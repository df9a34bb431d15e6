package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/vocdoni/dreip/dreip"
	"github.com/vocdoni/dreip/log"
	"github.com/vocdoni/dreip/util"
)

// Exit codes.
const (
	exitValid   = 0
	exitFailure = 1
	exitInvalid = 255
)

func main() {
	logLevel := flag.String("logLevel", util.Env("DREIP_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <results.json | ->\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.Init(*logLevel, "stderr", nil)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(exitFailure)
	}
	os.Exit(verify(flag.Arg(0), os.Stdout))
}

// verify checks the results stored at path, writes the outcome to out and
// returns the process exit code.
func verify(path string, out io.Writer) int {
	results, err := load(path)
	if err != nil {
		log.Errorw(err, "cannot load election results")
		return exitFailure
	}
	report := results.Inspect()
	if !report.Valid() {
		log.Warnw("election does not verify",
			"stage", report.Stage.String(),
			"ballot", report.BallotID,
			"candidate", report.Candidate)
		fmt.Fprintln(out, report)
		return exitInvalid
	}
	log.Infow("election verified",
		"curve", results.Params.Curve(),
		"confirmed", len(results.Confirmed),
		"audited", len(results.Audited))
	fmt.Fprintln(out, report)
	for _, c := range results.Params.Candidates {
		if t, ok := results.Totals[c]; ok {
			fmt.Fprintf(out, "%s\t%s\n", c, t.Tally.String())
		}
	}
	return exitValid
}

func load(path string) (*dreip.Results, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	results := new(dreip.Results)
	if err := json.Unmarshal(data, results); err != nil {
		return nil, err
	}
	return results, nil
}
