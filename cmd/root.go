package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mend/agent"
	"mend/config"
	"mend/console"
	"mend/llm"
	"mend/scanner"
	"mend/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "mend [instruction]",
	Short: "Mend is a terminal-based, AI-driven coding assistant",
	Long: `Mend runs inside any project folder and turns natural-language
instructions into reviewed file changes. Pass an instruction as arguments
for a single command, or run mend without arguments for an interactive
session.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		workspacePath, err := workspace.DetectWorkspace()
		if err != nil {
			fmt.Printf("Error detecting workspace: %v\n", err)
			os.Exit(1)
		}

		cfg, err := config.LoadConfig(workspacePath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := workspace.EnsureMendDir(workspacePath); err != nil {
			fmt.Printf("Error creating .mend directory: %v\n", err)
			os.Exit(1)
		}

		adapter, err := llm.CreateAdapter(cfg)
		if err != nil {
			fmt.Printf("Error creating %s adapter: %v\n", cfg.Provider, err)
			os.Exit(1)
		}

		scan := scanner.NewCachedScanner(workspacePath)
		ui := console.New()
		usage := config.NewUsageStore(workspacePath)
		a := agent.New(workspacePath, adapter, cfg.Provider, usage, scan, ui, cfg.MaxFileSize)

		if len(args) > 0 {
			if err := a.Run(context.Background(), strings.Join(args, " ")); err != nil {
				os.Exit(1)
			}
			return
		}

		runInteractive(a, scan, ui, adapter)
	},
}

// runInteractive reads instructions from stdin until exit/quit or EOF.
// The cached scanner watches the workspace so repeated commands reuse
// the inventory until a file actually changes.
func runInteractive(a *agent.Agent, scan *scanner.CachedScanner, ui *console.Console, adapter llm.Adapter) {
	if err := scan.StartWatching(); err != nil {
		ui.Warn("File watching unavailable: %v", err)
	}
	defer scan.StopWatching()

	ui.Info("mend interactive session, model %s. Type 'exit' to leave.", adapter.ModelName())

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}

		command := strings.TrimSpace(line)
		switch command {
		case "":
			continue
		case "exit", "quit":
			return
		}

		// Command failures are already reported; the session continues
		_ = a.Run(context.Background(), command)
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(usageCmd)
}
