// Command mergelocals loads a multiparty scenario from a YAML file and
// prints the reconstructed global type, or the MergeError explaining
// why the locals could not be merged.
//
// The engine is otherwise invoked from tests; this is a thin, optional
// surface over the pkg/mpst package for ad-hoc exploration of a
// scenario file.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/LvlAndFarm/mpst-inference/pkg/mpst"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/definition"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/scenario"
	"github.com/LvlAndFarm/mpst-inference/pkg/mpst/types"
)

var (
	app          = kingpin.New("mergelocals", "Merge multiparty local session types into a global type.")
	scenarioPath = app.Arg("scenario", "Path to a YAML scenario file.").Required().String()
	debug        = app.Flag("debug", "Log every attempted dual reduction.").Bool()
	metrics      = app.Flag("metrics", "Register Prometheus merge counters with the default registry (they are not printed).").Bool()
	raw          = app.Flag("raw", "Skip the Choice-to-Message simplification pass.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	opts := []mpst.Option{}

	logger := definition.NewDefaultLogger()
	if *debug {
		logger.ToggleDebug(true)
	}
	opts = append(opts, mpst.WithLogger(logger))

	var collector *definition.PrometheusCollector
	if *metrics {
		collector = definition.NewPrometheusCollector(prometheus.DefaultRegisterer)
		opts = append(opts, mpst.WithMetrics(collector))
	}

	if *raw {
		opts = append(opts, mpst.WithoutSimplify())
	}

	gt, err := mergeScenarioFile(*scenarioPath, opts...)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Println(gt.String())
	return nil
}

// mergeScenarioFile loads the YAML scenario at path and merges its
// parties, split out of run() so it can be driven directly from a
// test without going through the kingpin flag parser.
func mergeScenarioFile(path string, opts ...mpst.Option) (*types.GT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	parties, err := scenario.Load(data)
	if err != nil {
		return nil, err
	}

	return mpst.MergeLocals(parties, opts...)
}
