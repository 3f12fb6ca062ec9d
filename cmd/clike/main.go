// Command clike is the CLIKE interpreter's entry point: it parses, analyzes,
// and executes a single .clike source file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"clike/common"
	"clike/internal/build"
	"clike/internal/config"
	"clike/internal/diag"
)

func main() {
	cli := olive.NewCLI("clike", "clike is an interpreter for the CLIKE language", true)

	runCmd := cli.AddSubcommand("run", "parse, analyze, and execute a source file", true)
	runCmd.AddPrimaryArg("file", "the "+common.SrcFileExtension+" file to run", true)
	runCmd.AddStringArg("config", "c", "path to a clike.toml to use instead of the file's directory default", false)
	logLvlArg := runCmd.AddSelectorArg("loglevel", "ll", "the interpreter log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")
	runCmd.AddFlag("debug", "d", "trace every evaluated AST node")
	runCmd.AddFlag("scope", "s", "trace symbol scope exits")
	runCmd.AddFlag("stack", "k", "trace call stack pushes and pops")

	cli.AddSubcommand("version", "print the clike version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		diag.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(2)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "run":
		execRun(subResult)
	case "version":
		diag.PrintInfoMessage("clike", "version "+common.Version)
	default:
		diag.PrintErrorMessage("CLI Usage Error", fmt.Errorf("no subcommand given, expected run or version"))
		os.Exit(2)
	}
}

func execRun(result *olive.ArgParseResult) {
	filePath, _ := result.PrimaryArg()
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		diag.PrintErrorMessage("Path Error", err)
		os.Exit(2)
	}

	configPath := filepath.Join(filepath.Dir(absPath), common.ConfigFileName)
	if cfgArg, ok := result.Arguments["config"]; ok {
		configPath = cfgArg.(string)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		diag.PrintErrorMessage("Config Error", err)
		os.Exit(2)
	}

	if result.HasFlag("debug") {
		cfg.TraceDebug = true
	}
	if result.HasFlag("scope") {
		cfg.TraceScope = true
	}
	if result.HasFlag("stack") {
		cfg.TraceStack = true
	}

	trace := diag.PtermTrace{Debug: cfg.TraceDebug, Scope: cfg.TraceScope, Stack: cfg.TraceStack}
	logLevel := diag.LevelFromName(result.Arguments["loglevel"].(string))
	runID := common.GenerateIDFromPath(absPath)
	logger := diag.NewLogger(logLevel, absPath)
	diag.PrintInfoMessage("clike", fmt.Sprintf("run %s (id %d)", absPath, runID))

	pipeline := build.NewPipeline(cfg, trace, logger)
	runErr := pipeline.Run(absPath)
	logger.Finish(runErr == nil)

	if runErr != nil {
		os.Exit(1)
	}
}
