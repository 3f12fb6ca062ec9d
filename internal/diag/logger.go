package diag

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Level controls how much the Logger prints.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarning
	LevelVerbose
)

// LevelFromName maps a CLI/config string to a Level, defaulting to verbose
// for anything unrecognized.
func LevelFromName(name string) Level {
	switch name {
	case "silent":
		return LevelSilent
	case "error":
		return LevelError
	case "warning":
		return LevelWarning
	default:
		return LevelVerbose
	}
}

var (
	successFG = pterm.FgLightGreen
	successBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnFG    = pterm.FgYellow
	warnBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorFG   = pterm.FgRed
	errorBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoFG    = successFG
)

// Logger renders diagnostics and pipeline-phase progress to the terminal.
// Each run of the pipeline owns its own Logger instance -- CLIKE has no
// concurrent compilation units to synchronize across, so there is nothing
// for a shared mutex to protect.
type Logger struct {
	Level Level

	filePath string

	errorCount   int
	warningCount int

	phaseName  string
	phaseStart time.Time
	spinner    *pterm.SpinnerPrinter
}

// NewLogger creates a Logger for the given source file at the given level.
func NewLogger(level Level, filePath string) *Logger {
	return &Logger{Level: level, filePath: filePath}
}

// PrintErrorMessage prints a standalone error not tied to a source position
// (configuration, I/O, CLI usage).
func PrintErrorMessage(tag string, err error) {
	errorBG.Print(tag)
	errorFG.Println(" " + err.Error())
}

// PrintInfoMessage prints an informational banner.
func PrintInfoMessage(tag, msg string) {
	successBG.Print(tag)
	infoFG.Println(" " + msg)
}

// BeginPhase announces the start of a pipeline stage (Parsing/Analyzing/
// Executing) with a spinner, if the logger is at verbose level.
func (l *Logger) BeginPhase(name string) {
	l.phaseName = name
	l.phaseStart = time.Now()

	if l.Level < LevelVerbose {
		return
	}

	l.spinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoFG))
	l.spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: successBG, Text: "Done"},
	}
	l.spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: errorBG, Text: "Fail"},
	}
	l.spinner.Start(name + "...")
}

// EndPhase closes out the current phase, reporting success or failure.
func (l *Logger) EndPhase(success bool) {
	if l.spinner == nil {
		return
	}

	if success {
		l.spinner.Success(l.phaseName, fmt.Sprintf("(%.3fs)", time.Since(l.phaseStart).Seconds()))
	} else {
		l.spinner.Fail(l.phaseName)
	}

	l.spinner = nil
}

// Report renders a Diagnostic and updates the running counts. It does not
// decide whether to halt the pipeline -- callers propagate *Diagnostic as an
// ordinary error and stop on the first one; Report is purely presentational.
func (l *Logger) Report(d *Diagnostic) {
	if d.IsWarning {
		l.warningCount++
	} else {
		l.errorCount++
	}

	if l.Level == LevelSilent {
		return
	}
	if d.IsWarning && l.Level < LevelWarning {
		return
	}

	l.EndPhase(false)
	displayDiagnostic(d, l.filePath)
}

// Finish prints the closing summary line.
func (l *Logger) Finish(success bool) {
	if l.Level == LevelSilent {
		return
	}

	fmt.Print("\n")
	if success {
		successFG.Print("All done! ")
	} else {
		errorFG.Print("Oh no! ")
	}

	fmt.Print("(")
	printCount(l.errorCount, "error", errorFG)
	fmt.Print(", ")
	printCount(l.warningCount, "warning", warnFG)
	fmt.Println(")")
}

func printCount(n int, noun string, style pterm.Color) {
	switch n {
	case 0:
		successFG.Print(0)
	case 1:
		style.Print(1)
	default:
		style.Print(n)
	}
	fmt.Print(" " + noun)
	if n != 1 {
		fmt.Print("s")
	}
}

// -----------------------------------------------------------------------------
// Source-excerpt rendering.

func displayDiagnostic(d *Diagnostic, filePath string) {
	fmt.Print("\n\n-- ")
	if d.IsWarning {
		warnBG.Print(d.Kind.String() + " Warning")
	} else {
		errorBG.Print(d.Kind.String() + " Error")
	}
	fmt.Print(" ")
	infoFG.Println(filePath)

	fmt.Println(d.Message)

	if d.Pos != nil {
		displayCodeExcerpt(d.Pos, filePath)
	}
}

func displayCodeExcerpt(pos *Position, filePath string) {
	f, err := os.Open(filePath)
	if err != nil {
		return
	}
	defer f.Close()

	lines := make([]string, pos.EndLn-pos.StartLn+1)
	scanner := bufio.NewScanner(f)
	for lineNo := 1; lineNo <= pos.EndLn && scanner.Scan(); lineNo++ {
		if lineNo >= pos.StartLn {
			lines[lineNo-pos.StartLn] = scanner.Text()
		}
	}

	width := len(strconv.Itoa(pos.EndLn)) + 1
	numFmt := "%-" + strconv.Itoa(width) + "v"

	for i, line := range lines {
		infoFG.Print(fmt.Sprintf(numFmt, i+pos.StartLn))
		fmt.Print("|  ")
		fmt.Println(line)

		fmt.Print(strings.Repeat(" ", width), "|  ")
		switch {
		case len(lines) == 1:
			fmt.Print(strings.Repeat(" ", pos.StartCol))
			errorFG.Println(strings.Repeat("^", maxInt(pos.EndCol-pos.StartCol, 1)))
		case i == 0:
			fmt.Print(strings.Repeat(" ", pos.StartCol))
			errorFG.Println(strings.Repeat("^", maxInt(len(line)-pos.StartCol, 1)))
		case i == len(lines)-1:
			errorFG.Println(strings.Repeat("^", maxInt(pos.EndCol, 1)))
		default:
			errorFG.Println(strings.Repeat("^", maxInt(len(line), 1)))
		}
	}

	fmt.Println()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
