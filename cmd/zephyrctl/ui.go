package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/zephyr/internal/logger"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorReset  = "\033[0m"
)

var titleCaser = cases.Title(language.English)

func printSuccess(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, colorGreen+"✓ "+format+colorReset+"\n", a...)
}

func printWarning(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, colorYellow+"⚠ "+format+colorReset+"\n", a...)
}

func printError(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, colorRed+"✗ "+format+colorReset+"\n", a...)
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

// displayName turns a catalog id such as "addition_1" into "Addition 1"
func displayName(id string) string {
	runes := []rune(id)
	for i, r := range runes {
		if r == '_' || r == '-' {
			runes[i] = ' '
		}
	}
	return titleCaser.String(string(runes))
}

// initLogger keeps engine logs off stdout so command output stays parseable
func initLogger(verbose bool) {
	logger.InitLoggerWithWriter(logger.CLIConfig(verbose), os.Stderr)
}
