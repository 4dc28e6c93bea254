// Package cmd implements the shapewrap CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (render, list, preview).
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/shapewrap/pkg/errors"
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
	Name:  "shapewrap",
	Short: "shapewrap - shape-outside masks for decorative shapes",
	Long: `shapewrap renders decorative vector shapes together with the
shape-outside masks that make text flow around their silhouette.

Use "shapewrap <command> --help" for more information about a command.`,
	Usage: "shapewrap <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// Global flag overrides, applied on top of shapewrap.yaml.
var (
	registryOverride string
	logLevelOverride string
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --registry and --log-level
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
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Printf("shapewrap version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--registry", "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--registry" {
				registryOverride = args[i+1]
			} else {
				logLevelOverride = args[i+1]
			}
			i++
		default:
			if v, ok := strings.CutPrefix(arg, "--registry="); ok {
				registryOverride = v
				continue
			}
			if v, ok := strings.CutPrefix(arg, "--log-level="); ok {
				logLevelOverride = v
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

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return runCommand(cmd, cmdArgs)
}

// runCommand runs cmd, turning a panic into an error.
func runCommand(cmd *Command, args []string) (err error) {
	defer errors.RecoverWithCallback("cmd."+cmd.Name, func(r any) {
		err = fmt.Errorf("%s: internal error: %v", cmd.Name, r)
	})
	return cmd.Run(args)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --registry FILE      Shape registry YAML (default: shapewrap.yaml or builtin)")
	fmt.Println("  --log-level LEVEL    debug, info, warn or error (default: warn)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  shapewrap render wave --viewport desktop --pane 400")
	fmt.Println("  shapewrap render wave --side right --zoom 0.5 --pad-left 20 --pad-top 10")
	fmt.Println("  shapewrap preview wave --out wave.png")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
