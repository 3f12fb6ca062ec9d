// Package build orchestrates the CLIKE pipeline -- parsing, semantic
// analysis, and execution -- behind a phase-spinner presentation.
package build

import (
	"os"
	"path/filepath"

	"clike/internal/config"
	"clike/internal/diag"
	"clike/internal/interp"
	"clike/internal/parser"
	"clike/internal/sema"
	"clike/internal/source"
)

// StdoutSink adapts os.Stdout to interp.Output.
type StdoutSink struct{}

func (StdoutSink) Println(s string) { os.Stdout.WriteString(s + "\n") }

// Pipeline wires together a source loader, trace sink, logger, and config
// to run a CLIKE file from disk to completion.
type Pipeline struct {
	Loader source.Loader
	Trace  diag.Trace
	Logger *diag.Logger
	Config config.Config
}

// NewPipeline constructs a Pipeline from the given config, defaulting the
// loader to an FSLoader seeded with the config's search paths.
func NewPipeline(cfg config.Config, trace diag.Trace, logger *diag.Logger) *Pipeline {
	return &Pipeline{
		Loader: source.FSLoader{SearchPaths: cfg.IncludeSearchPaths},
		Trace:  trace,
		Logger: logger,
		Config: cfg,
	}
}

// Run executes the file at inputPath: parse (with include resolution),
// analyze, execute. Returns a non-nil *diag.Diagnostic on the first error
// from any phase.
func (p *Pipeline) Run(inputPath string) *diag.Diagnostic {
	canonical, err := filepath.Abs(inputPath)
	if err != nil {
		return diag.Errorf(diag.ParseIncludeIO, nil, "cannot resolve input path: %v", err)
	}

	text, err := os.ReadFile(canonical)
	if err != nil {
		return diag.Errorf(diag.ParseIncludeIO, nil, "cannot read %s: %v", inputPath, err)
	}

	p.Logger.BeginPhase("Parsing")
	prog, perr := parser.ParseWithDepth(canonical, text, p.Loader, p.Config.IncludeMaxDepth)
	if perr != nil {
		p.Logger.Report(perr)
		return perr
	}
	p.Logger.EndPhase(true)

	p.Logger.BeginPhase("Analyzing")
	analyzer := sema.New(p.Trace)
	funcs, serr := analyzer.Analyze(prog)
	if serr != nil {
		p.Logger.Report(serr)
		return serr
	}
	p.Logger.EndPhase(true)

	p.Logger.BeginPhase("Executing")
	ip := interp.New(StdoutSink{}, p.Trace)
	if rerr := ip.Run(prog, funcs); rerr != nil {
		p.Logger.Report(rerr)
		return rerr
	}
	p.Logger.EndPhase(true)

	return nil
}
