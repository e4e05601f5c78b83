// Package repl implements the interactive command loop around the
// calculator engine.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"go-decimal-calculator/internal/calc"
	"go-decimal-calculator/internal/metrics"
	"go-decimal-calculator/internal/operations"
)

var (
	helpColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	headerColor  = color.New(color.FgMagenta)
	entryColor   = color.New(color.FgCyan)
	noticeColor  = color.New(color.FgRed)
	unknownColor = color.New(color.FgRed, color.Bold)
)

// REPL reads commands from in and writes responses to out until the user
// exits or input ends.
type REPL struct {
	calc     *calc.Calculator
	registry *operations.Registry
	in       *bufio.Scanner
	out      io.Writer
}

func New(c *calc.Calculator, registry *operations.Registry, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		calc:     c,
		registry: registry,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run drives the command loop. It returns when the user exits or input is
// exhausted.
func (r *REPL) Run() error {
	fmt.Fprintln(r.out, "Calculator started. Type 'help' for commands.")

	for {
		fmt.Fprint(r.out, "\nEnter command: ")
		line, ok := r.readLine()
		if !ok {
			fmt.Fprintln(r.out, "\nInput terminated. Exiting...")
			return r.in.Err()
		}

		command := strings.ToLower(strings.TrimSpace(line))
		switch command {
		case "":
			continue

		case "help":
			r.printHelp()

		case "exit":
			if err := r.calc.SaveHistory(); err != nil {
				fmt.Fprintf(r.out, "Warning: Could not save history: %v\n", err)
			} else {
				successColor.Fprintln(r.out, "History saved successfully.")
			}
			successColor.Fprintln(r.out, "Goodbye!")
			return nil

		case "history":
			r.printHistory()

		case "clear":
			r.calc.ClearHistory()
			noticeColor.Fprintln(r.out, "History cleared")

		case "undo":
			if r.calc.Undo() {
				noticeColor.Fprintln(r.out, "Operation undone")
			} else {
				noticeColor.Fprintln(r.out, "Nothing to undo")
			}

		case "redo":
			if r.calc.Redo() {
				noticeColor.Fprintln(r.out, "Operation redone")
			} else {
				noticeColor.Fprintln(r.out, "Nothing to redo")
			}

		case "save":
			if err := r.calc.SaveHistory(); err != nil {
				fmt.Fprintf(r.out, "Error saving history: %v\n", err)
			} else {
				fmt.Fprintln(r.out, "History saved successfully")
			}

		case "load":
			if err := r.calc.LoadHistory(); err != nil {
				fmt.Fprintf(r.out, "Error loading history: %v\n", err)
			} else {
				fmt.Fprintln(r.out, "History loaded successfully")
			}

		case "stats":
			r.printStats()

		default:
			if r.registry.Has(command) {
				if !r.runOperation(command) {
					fmt.Fprintln(r.out, "\nInput terminated. Exiting...")
					return r.in.Err()
				}
				continue
			}
			unknownColor.Fprintf(r.out, "Unknown command: '%s'. Type 'help' for available commands.\n", command)
		}
	}
}

// runOperation prompts for both operands and performs the named operation.
// It reports false when input ended mid-prompt.
func (r *REPL) runOperation(name string) bool {
	fmt.Fprintln(r.out, "Enter numbers (or 'cancel' to abort):")

	fmt.Fprint(r.out, "First number: ")
	a, ok := r.readLine()
	if !ok {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(a), "cancel") {
		noticeColor.Fprintln(r.out, "Operation cancelled")
		return true
	}

	fmt.Fprint(r.out, "Second number: ")
	b, ok := r.readLine()
	if !ok {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(b), "cancel") {
		noticeColor.Fprintln(r.out, "Operation cancelled")
		return true
	}

	op, err := r.registry.Create(name)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return true
	}
	r.calc.SetOperation(op)

	result, err := r.calc.PerformOperation(a, b)
	if err != nil {
		metrics.RecordError(name)
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return true
	}

	fmt.Fprintf(r.out, "\nResult: %s\n", result)
	return true
}

func (r *REPL) printHelp() {
	helpColor.Fprintln(r.out, "Available commands:")
	helpColor.Fprintf(r.out, "  %s - Perform calculations\n", strings.Join(r.registry.Names(), ", "))
	helpColor.Fprintln(r.out, "  history - Show calculation history")
	helpColor.Fprintln(r.out, "  clear - Clear calculation history")
	helpColor.Fprintln(r.out, "  undo - Undo the last calculation")
	helpColor.Fprintln(r.out, "  redo - Redo the last undone calculation")
	helpColor.Fprintln(r.out, "  save - Save calculation history to file")
	helpColor.Fprintln(r.out, "  load - Load calculation history from file")
	helpColor.Fprintln(r.out, "  stats - Show operation metrics for this session")
	helpColor.Fprintln(r.out, "  exit - Exit the calculator")
}

func (r *REPL) printHistory() {
	entries := r.calc.FormatHistory()
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No calculations in history")
		return
	}
	headerColor.Fprintln(r.out, "\nCalculation History:")
	for i, entry := range entries {
		entryColor.Fprintf(r.out, "%d. %s\n", i+1, entry)
	}
}

func (r *REPL) printStats() {
	lines, err := metrics.Snapshot()
	if err != nil {
		fmt.Fprintf(r.out, "Error gathering stats: %v\n", err)
		return
	}
	if len(lines) == 0 {
		fmt.Fprintln(r.out, "No operations recorded yet")
		return
	}
	for _, line := range lines {
		fmt.Fprintln(r.out, line)
	}
}

func (r *REPL) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}
