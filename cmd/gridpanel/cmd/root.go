// Package cmd implements the gridpanel CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (layout, tui, version).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/gridpanel/cmd/gridpanel/internal/config"
	"github.com/go-drift/gridpanel/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "gridpanel",
	Short: "gridpanel - a recycling grid panel for very large lists",
	Long: `gridpanel lays items out in equal-width columns and only realizes
containers for the rows that cover the viewport. A million items
cost as much as a screenful.

Use "gridpanel <command> --help" for more information about a command.`,
	Usage: "gridpanel <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// Global settings parsed by Execute.
var (
	configPath string
	verbose    bool
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// appLogger is installed by setupLogging.
	appLogger = slog.New(slog.DiscardHandler)
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	configPath, verbose = "", false

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --config
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			verbose = true
		case "--config":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				return fmt.Errorf("--config requires a file path")
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	setupLogging()

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return runCommand(cmd, cmdArgs)
}

// runCommand runs cmd. A panic inside the command is reported and returned
// as a KindPanic error instead of crashing the process.
func runCommand(cmd *Command, args []string) error {
	var err error
	if gerr := errors.Guard("cmd."+cmd.Name, errors.KindPanic, -1, func() {
		err = cmd.Run(args)
	}); gerr != nil {
		return gerr
	}
	return err
}

// setupLogging routes panel diagnostics and reported grid errors to stderr.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	appLogger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	errors.SetLogger(appLogger)
	errors.SetHandler(&errors.LogHandler{Logger: appLogger, Verbose: verbose})
}

// loadConfig resolves gridpanel.yaml from the working directory or --config.
func loadConfig() (*config.Resolved, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(dir, configPath)
	if err != nil {
		return nil, &errors.GridError{Op: "config.resolve", Kind: errors.KindConfig, Index: -1, Err: err}
	}
	return cfg, nil
}

func printVersion() {
	fmt.Fprintf(stdout, "gridpanel version %s (built %s)\n", Version, BuildTime)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --config FILE        Read configuration from FILE (default: ./gridpanel.yaml)")
	fmt.Fprintln(stdout, "  --verbose            Log layout diagnostics to stderr")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Environment:")
	fmt.Fprintln(stdout, "  OTEL_EXPORTER_OTLP_ENDPOINT   Export layout spans over OTLP/HTTP")
	fmt.Fprintln(stdout, "  OTEL_SERVICE_NAME             Service name for exported spans (default: gridpanel)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  gridpanel tui                 Browse a million items")
	fmt.Fprintln(stdout, "  gridpanel layout --y 5000     Print the containers realized at y=5000")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
