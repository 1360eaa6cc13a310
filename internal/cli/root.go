// Package cli provides the command-line interface for democat.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// annotationTUI marks commands that take over the terminal. Their logs go to
// the log file instead of stderr.
const annotationTUI = "democat/tui"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "democat [prefix]",
		Short: "Browse and launch demos from a hierarchical catalog",
		Long: `democat organizes runnable demos into a tree by their slash-separated
labels ("App/Activity/Alert Dialog") and lets you browse it one level at a
time. Picking a folder descends into it; picking a demo launches it with the
chosen transition preset.

Run without a command to open the interactive browser.`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}
			return a.setup(cmd, cfgFile)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, a, args)
		},
		Annotations:   map[string]string{annotationTUI: "true"},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags. Names match config keys with "-" for "_".
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/democat/config.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to the catalog manifest")
	rootCmd.PersistentFlags().String("catalog-dir", "", "Directory of additional manifests")
	rootCmd.PersistentFlags().String("catalog-glob", "", "Manifest pattern inside --catalog-dir")
	rootCmd.PersistentFlags().String("locale", "", "Collation locale for titles (default: $LANG)")
	rootCmd.PersistentFlags().String("transition", "", "Default transition preset")
	rootCmd.PersistentFlags().String("history-path", "", "Path to the launch history database")
	rootCmd.PersistentFlags().String("prefs-path", "", "Path to the preferences file")
	rootCmd.PersistentFlags().String("log-path", "", "Log file used while browsing")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("watch", true, "Reload the browser when manifests change")
	rootCmd.PersistentFlags().String("editor", "", "Editor for the manifest: auto, code, cursor, zed or a command")

	_ = rootCmd.RegisterFlagCompletionFunc("transition", completeTransitions)

	rootCmd.AddCommand(newBrowseCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newLaunchCmd(a))
	rootCmd.AddCommand(newTransitionsCmd())
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newRecentCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
