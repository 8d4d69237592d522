package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "lispctl",
	Short: "Exercise and inspect the cons-cell heap",
	Long: `lispctl drives the lispkit cons-cell allocator from the command line.
It can stress the allocator with configurable churn, run simulated
mark/sweep cycles against the tracer interface, and dump the block
chain and slot states for inspection.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// title renders a section heading, honoring --no-color.
func title(s string) string {
	if noColor {
		return s
	}
	return titleStyle.Render(s)
}

// kv renders one "label: value" stats line.
func kv(label string, format string, args ...any) string {
	val := fmt.Sprintf(format, args...)
	if noColor {
		return fmt.Sprintf("  %-24s %s", label, val)
	}
	return fmt.Sprintf("  %s %s", labelStyle.Render(fmt.Sprintf("%-24s", label)), valueStyle.Render(val))
}

func printVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
