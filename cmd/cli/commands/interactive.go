package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands over one
database connection. The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\n🚀 Starting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			siblings := collectSiblings(cmd)
			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("scheduler> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Printf("❌ Error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}

				name, cmdArgs := parts[0], parts[1:]
				switch name {
				case "exit", "quit":
					fmt.Println("👋 Goodbye!")
					return nil
				case "help":
					printInteractiveHelp(siblings)
					continue
				}

				target, known := siblings[name]
				if !known {
					fmt.Printf("❌ Unknown command: %s (type 'help' for available commands)\n\n", name)
					continue
				}

				if err := runInteractive(target, cmdArgs); err != nil {
					fmt.Printf("❌ Error: %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

// collectSiblings indexes the root's other commands by name, skipping the
// session command itself and cobra's built-ins
func collectSiblings(cmd *cobra.Command) map[string]*cobra.Command {
	siblings := make(map[string]*cobra.Command)
	for _, subCmd := range cmd.Parent().Commands() {
		switch subCmd.Name() {
		case "interactive", "completion", "help":
			continue
		}
		siblings[subCmd.Name()] = subCmd
	}
	return siblings
}

// runInteractive executes one command inside the session. The command's RunE
// is invoked directly, bypassing the full Execute() flow so PersistentPreRunE
// doesn't re-initialize the app. Flags are reset first so values from earlier
// invocations don't leak in.
func runInteractive(target *cobra.Command, args []string) error {
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	positional := target.Flags().Args()
	if err := target.Args(target, positional); err != nil {
		return err
	}

	switch {
	case target.RunE != nil:
		return target.RunE(target, positional)
	case target.Run != nil:
		target.Run(target, positional)
	}
	return nil
}

func printInteractiveHelp(siblings map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(siblings))
	useWidth := len("exit, quit")
	for name, cmd := range siblings {
		names = append(names, name)
		if len(cmd.Use) > useWidth {
			useWidth = len(cmd.Use)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := siblings[name]
		fmt.Printf("  %-*s   %s\n", useWidth, cmd.Use, cmd.Short)
	}

	fmt.Printf("  %-*s   Show this help message\n", useWidth, "help")
	fmt.Printf("  %-*s   Exit the interactive session\n", useWidth, "exit, quit")
}

// parseCommandLine splits a command line into arguments, respecting quoted
// strings. Supports both single and double quotes.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune // 0 if not in quote, '"' or '\'' if in quote

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
