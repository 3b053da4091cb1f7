package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/kaptinlin/jsonrepair"

	"github.com/mcncl/jsonflex/internal/config"
	"github.com/mcncl/jsonflex/internal/document"
	"github.com/mcncl/jsonflex/internal/errors"
	"github.com/mcncl/jsonflex/internal/normalize"
	"github.com/mcncl/jsonflex/internal/report"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to rules file. If not specified, searches for .jsonnorm.yml in this directory and its parents." short:"c" type:"path"`
	Repair      bool   `help:"Repair malformed JSON input before decoding."`
	Strict      bool   `help:"Abort on the first field a rule cannot coerce."`
	Compact     bool   `help:"Emit compact output instead of indented."`
	Indent      int    `help:"Number of spaces to indent output with." default:"2"`
	Summary     bool   `help:"Print a per-rule coercion summary to stderr." short:"s"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonnorm"),
		kong.Description("A tool to normalize string/number representations in JSON documents"),
		kong.UsageOnError(),
	)

	// With no arguments at all, assume the user wants to paste JSON.
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage was already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonnorm version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonnorm --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	// 1. Load the rules file and fold in CLI overrides
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Read the raw input
	input, err := readInput()
	if err != nil {
		return err
	}

	// 3. Optionally repair malformed JSON before decoding
	if CLI.Repair {
		repaired, err := jsonrepair.JSONRepair(input)
		if err != nil {
			return errors.NewRepairError("could not repair input", err)
		}
		input = repaired
	}

	// 4. Decode the document
	root, err := document.DecodeString(input)
	if err != nil {
		return err
	}

	// 5. Apply the coercion rules
	result, err := normalize.New(cfg).Apply(root)
	if err != nil {
		return err
	}

	// 6. Encode and write the normalized document
	encoded, err := document.Encode(result.Root, cfg.IndentString())
	if err != nil {
		return err
	}
	if err := writeOutput(encoded); err != nil {
		return err
	}

	// 7. Report what the rules did
	if CLI.Summary {
		fmt.Fprint(os.Stderr, report.Render(result))
	}
	return nil
}

// loadConfig resolves the rules file and applies CLI overrides
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if CLI.Strict {
		cfg.Strict = true
	}
	if CLI.Compact {
		cfg.Output.Compact = true
	}
	if CLI.Indent != 2 {
		cfg.Output.Indent = CLI.Indent
	}
	return cfg, nil
}

// readInput reads the raw JSON text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes the normalized document to file or stdout
func writeOutput(encoded []byte) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, encoded, 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Normalized JSON written to %s\n", CLI.Output)
		return nil
	}

	if _, err := os.Stdout.Write(encoded); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste
// JSON and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonnorm Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	input := builder.String()
	if len(input) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return input, nil
}
