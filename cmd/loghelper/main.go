// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cocowh/loghelper/pkg/logger"
	"github.com/cocowh/loghelper/pkg/pathpick"
	"github.com/spf13/cobra"
)

var (
	callerName  string
	scopeName   string
	configDir   string
	levelName   string
	contextText string
	logDir      string
	noConsole   bool
	noFile      bool
	persistFlag bool
	exportOut   string
	purgeDir    string
	purgeDays   int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "loghelper",
	Short: "loghelper writes structured log lines with durable configuration",
	Long: `loghelper is the operator front end of the logging facility: it emits
timestamped, level-tagged log lines to console and daily files, manages the
persisted logging configuration, and sweeps aged-out archives.`,
	Version: "1.0.0",
}

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write [message...]",
	Short: "Emit one log record",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWrite,
}

// configCmd groups the configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the persisted logging configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Override configuration fields, optionally persisting them",
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the persisted configuration file",
	RunE:  runConfigPath,
}

var configExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy the effective configuration to a chosen file",
	RunE:  runConfigExport,
}

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete log files older than the retention window",
	RunE:  runPurge,
}

func init() {
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(purgeCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configExportCmd)

	rootCmd.PersistentFlags().StringVar(&callerName, "caller", "", "caller identity recorded in log lines (defaults to the executable name)")
	rootCmd.PersistentFlags().StringVar(&scopeName, "scope", "", "configuration scope (global, caller)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding persisted configuration files")

	writeCmd.Flags().StringVarP(&levelName, "level", "l", "", "record level (debug, info, success, warning, error, critical); defaults to the configured level")
	writeCmd.Flags().StringVar(&contextText, "context", "", "context segment appended to the line")
	writeCmd.Flags().StringVar(&logDir, "dir", "", "write under this directory instead of the configured one")
	writeCmd.Flags().BoolVar(&noConsole, "no-console", false, "suppress the console sink for this record")
	writeCmd.Flags().BoolVar(&noFile, "no-file", false, "suppress the file sink for this record")

	configSetCmd.Flags().String("dir", "", "default log directory")
	configSetCmd.Flags().String("level", "", "default record level")
	configSetCmd.Flags().Bool("console", true, "enable the console sink")
	configSetCmd.Flags().Bool("file", true, "enable the file sink")
	configSetCmd.Flags().String("timestamp-format", "", "timestamp layout for rendered lines")
	configSetCmd.Flags().String("prefix", "", "log filename prefix")
	configSetCmd.Flags().String("date-format", "", "date layout in log filenames")
	configSetCmd.Flags().Int64("max-size", 0, "rotation threshold in bytes")
	configSetCmd.Flags().Int("retention-days", -1, "archive retention in days (0 disables purging)")
	configSetCmd.Flags().BoolVar(&persistFlag, "persist", false, "save the result to the scope-appropriate file")

	configExportCmd.Flags().StringVar(&exportOut, "out", "", "destination file; prompts when omitted")

	purgeCmd.Flags().StringVar(&purgeDir, "dir", "", "directory to sweep (defaults to the configured log directory)")
	purgeCmd.Flags().IntVar(&purgeDays, "retention-days", -1, "retention window override in days")
}

func newStore() (*logger.Store, error) {
	var opts []logger.StoreOption
	if configDir != "" {
		opts = append(opts, logger.WithConfigDir(configDir))
	}
	if scopeName != "" {
		scope := logger.Scope(strings.ToLower(scopeName))
		if scope != logger.ScopeGlobal && scope != logger.ScopeCaller {
			return nil, fmt.Errorf("unknown scope %q", scopeName)
		}
		opts = append(opts, logger.WithScope(scope))
	}
	return logger.NewStore(effectiveCaller(), opts...), nil
}

func effectiveCaller() string {
	if callerName != "" {
		return callerName
	}
	return "loghelper"
}

func runWrite(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	log := logger.New(effectiveCaller(), logger.WithStore(store))

	var opts []logger.Option
	if contextText != "" {
		opts = append(opts, logger.WithContext(contextText))
	}
	if logDir != "" {
		opts = append(opts, logger.WithDirectory(logDir))
	}
	if noConsole {
		opts = append(opts, logger.WithConsole(false))
	}
	if noFile {
		opts = append(opts, logger.WithFile(false))
	}

	message := strings.Join(args, " ")
	if levelName == "" {
		log.Write(message, opts...)
		return nil
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	log.Log(level, message, opts...)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	return printConfig(cmd.OutOrStdout(), store.Resolve())
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}

	var o logger.Overrides
	flags := cmd.Flags()
	if flags.Changed("dir") {
		v, _ := flags.GetString("dir")
		o.Directory = &v
	}
	if flags.Changed("level") {
		v, _ := flags.GetString("level")
		level, err := logger.ParseLevel(v)
		if err != nil {
			return err
		}
		o.Level = &level
	}
	if flags.Changed("console") {
		v, _ := flags.GetBool("console")
		o.ConsoleEnabled = &v
	}
	if flags.Changed("file") {
		v, _ := flags.GetBool("file")
		o.FileEnabled = &v
	}
	if flags.Changed("timestamp-format") {
		v, _ := flags.GetString("timestamp-format")
		o.TimestampFormat = &v
	}
	if flags.Changed("prefix") {
		v, _ := flags.GetString("prefix")
		o.FilenamePrefix = &v
	}
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		o.FilenameDateFormat = &v
	}
	if flags.Changed("max-size") {
		v, _ := flags.GetInt64("max-size")
		o.MaxFileSizeBytes = &v
	}
	if flags.Changed("retention-days") {
		v, _ := flags.GetInt("retention-days")
		o.RetentionDays = &v
	}
	if scopeName != "" {
		scope := logger.Scope(strings.ToLower(scopeName))
		o.Scope = &scope
	}

	cfg := store.Apply(o)
	if persistFlag {
		if err := store.Persist(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", store.ScopePath(cfg.Scope, effectiveCaller()))
	}
	return printConfig(cmd.OutOrStdout(), cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	cfg := store.Resolve()
	fmt.Fprintln(cmd.OutOrStdout(), store.ScopePath(cfg.Scope, effectiveCaller()))
	return nil
}

func runConfigExport(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	out := exportOut
	if out == "" {
		selector := &pathpick.TerminalSelector{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
		out, err = selector.Select(pathpick.Request{
			Mode:   pathpick.SaveFile,
			Title:  "Export configuration to",
			Filter: "*.json",
		})
		if err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(store.Resolve(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
	return nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	cfg := store.Resolve()
	dir := purgeDir
	if dir == "" {
		dir = cfg.Directory
	}
	days := purgeDays
	if days < 0 {
		days = cfg.RetentionDays
	}
	removed := logger.PurgeExpired(dir, days)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired log file(s) from %s\n", removed, dir)
	return nil
}

func printConfig(w io.Writer, cfg logger.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
