// Package cmd provides the root command and CLI setup for urler.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/curl/urler/internal/adapter"
	"github.com/curl/urler/internal/controller"
	"github.com/curl/urler/internal/domain"
	"github.com/curl/urler/internal/engine"
	m "github.com/curl/urler/internal/model"
)

const progName = "urler"

var urlEngine engine.Engine
var executor domain.Executor
var renderer domain.Renderer
var orchestrator domain.Orchestrator
var ui controller.UI

// Transform flags collected by the root command. The single-value ones use
// string arrays too, so that a repeated flag is detected instead of silently
// overwritten.
var urlFlags []string
var urlFileFlags []string
var setFlags []string
var appendFlags []string
var redirectFlags []string
var getFlags []string
var urldecodeFlag bool
var diffFlag bool

// verboseFlag and logFileFlag are persistent and feed the logger.
var verboseFlag bool
var logFileFlag string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewConsole(rootCmd)
	urlEngine = engine.NewURLEngine()
	executor = domain.NewExecutor(urlEngine)
	renderer = domain.NewRenderer(ui)
	orchestrator = domain.NewOrchestrator(executor, renderer, ui)
}

const componentListHelp = `URL components:
  url, scheme, user, password, options, host, port, path, query,
  fragment, zoneid`

const rootLongDescription = `Urler transforms URLs. It takes one or more base URLs from arguments or a
file, applies component mutations (--set, --append, --redirect) and prints
either the rebuilt URL or a custom rendering of its components (--get).

` + componentListHelp

// rootCmd represents the base command. Unlike most CLIs it does the real
// work itself: subcommands only cover the auxiliary surfaces.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "urler [flags] [URL ...]",
		Short:         "Transform URLs from the command line",
		Long:          rootLongDescription,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(logFileFlag, viper.GetBool(logVerboseKey))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return transform(cmd, args)
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&urlFlags, urlFlagName, nil, "URL to start with (can be repeated)")
	cmd.Flags().StringArrayVar(&urlFileFlags, urlFileFlagName, nil, `read URLs from file, "-" for stdin`)
	cmd.Flags().StringArrayVar(&setFlags, setFlagName, nil, "set a component, component=value (can be repeated)")
	cmd.Flags().StringArrayVar(&appendFlags, appendFlagName, nil, "append data, path=segment or query=key=value (can be repeated)")
	cmd.Flags().StringArrayVar(&redirectFlags, redirectFlagName, nil, "redirect the base URL to this URL")
	cmd.Flags().StringArrayVar(&getFlags, getFlagName, nil, "output URL components with a {component} template")

	cmd.Flags().BoolVar(&urldecodeFlag, urldecodeFlagName, viper.GetBool(outputURLDecodeKey), "URL decode the output")
	bindFlagToConfig(cmd.Flags().Lookup(urldecodeFlagName), outputURLDecodeKey)

	cmd.Flags().BoolVar(&diffFlag, diffFlagName, false, "show mutated components as a diff")

	cmd.PersistentFlags().BoolVar(&verboseFlag, verboseFlagName, viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.SetFlagErrorFunc(classifyFlagError)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// classifyFlagError separates a flag that misses its argument from every
// other flag mistake; the two carry different exit codes.
func classifyFlagError(_ *cobra.Command, err error) error {
	if strings.Contains(err.Error(), "needs an argument") {
		return &exitError{Err: err, Code: exitArg}
	}

	return &exitError{Err: err, Code: exitFlag}
}

func transform(cmd *cobra.Command, args []string) error {
	mset, err := buildMutationSet(args)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if len(urlFileFlags) == 1 {
		return transformStream(ctx, cmd, *mset, urlFileFlags[0])
	}

	return orchestrator.Run(ctx, *mset)
}

// buildMutationSet validates the collected flags into one immutable
// MutationSet shared by the whole batch.
func buildMutationSet(args []string) (*m.MutationSet, error) {
	if len(urlFileFlags) > 1 {
		return nil, &exitError{Err: errors.New("only one --url-file is supported"), Code: exitFlag}
	}

	if len(redirectFlags) > 1 {
		return nil, &exitError{Err: errors.New("only one --redirect is supported"), Code: exitFlag}
	}

	if len(getFlags) > 1 {
		return nil, &exitError{Err: errors.New("only one --get is supported"), Code: exitFlag}
	}

	mset := &m.MutationSet{
		URLs:         append(append([]string{}, urlFlags...), args...),
		DecodeOutput: viper.GetBool(outputURLDecodeKey),
		Diff:         diffFlag,
	}

	if len(redirectFlags) == 1 {
		mset.Redirect = &redirectFlags[0]
	}

	switch {
	case len(getFlags) == 1:
		mset.Format = &getFlags[0]
	case viper.GetString(outputFormatKey) != "":
		format := viper.GetString(outputFormatKey)
		mset.Format = &format
	}

	for _, raw := range setFlags {
		op, err := m.ParseSetOp(raw)
		if err != nil {
			return nil, err
		}

		mset.Sets = append(mset.Sets, op)
	}

	for _, raw := range appendFlags {
		op, err := m.ParseAppendOp(raw)
		if err != nil {
			return nil, err
		}

		mset.Appends = append(mset.Appends, op)
	}

	return mset, nil
}

// transformStream runs the batch against URLs read line by line from a file
// or stdin. The literal URL list does not apply in this mode.
func transformStream(ctx context.Context, cmd *cobra.Command, mset m.MutationSet, file string) error {
	if file == "-" {
		return orchestrator.RunStream(ctx, mset, adapter.NewLineSource(cmd.InOrStdin()))
	}

	f, err := os.Open(file)
	if err != nil {
		slog.Error("Failed to open URL file", "file", file, "error", err)
		return &exitError{Err: fmt.Errorf("--url-file %s not found", file), Code: exitFile}
	}
	defer func() { _ = f.Close() }()

	return orchestrator.RunStream(ctx, mset, adapter.NewLineSource(f))
}

// Execute runs the root command and exits the process with the code of
// whatever failed. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	code, printed := exitStatus(err)
	if !printed {
		errorf(rootCmd.ErrOrStderr(), "%v", err)
	}

	os.Exit(code)
}

// errorf prints a fatal diagnostic in the fixed two line form.
func errorf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, "%s error: %s\n", progName, fmt.Sprintf(format, args...))
	_, _ = fmt.Fprintf(w, "%s error: Try %s -h for help\n", progName, progName)
}
