// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/changetree/internal/changes"
	"github.com/temirov/changetree/internal/config"
	"github.com/temirov/changetree/internal/output"
	"github.com/temirov/changetree/internal/pathtree"
	"github.com/temirov/changetree/internal/services/clipboard"
	"github.com/temirov/changetree/internal/types"
	"github.com/temirov/changetree/internal/utils"
)

const (
	configFlagName     = "config"
	verboseFlagName    = "verbose"
	formatFlagName     = "format"
	sourceFlagName     = "source"
	basePathFlagName   = "base-path"
	vaultPathsFlagName = "vault-paths"
	copyFlagName       = "copy"
	relativeFlagName   = "relative-to-vault"
	globalFlagName     = "global"
	forceFlagName      = "force"

	versionTemplate      = "changetree version: {{.Version}}\n"
	defaultPath          = "."
	standardInputPath    = "-"
	standardInputLabel   = "stdin"
	rootUse              = "changetree"
	rootShortDescription = "changetree command line interface"
	rootLongDescription  = `changetree renders the change set of a git working tree as a directory tree.
Directories holding a single subdirectory are folded into one node, directories are listed before files.
Use --format to select raw, json, xml, or yaml output, and --source to pick staged, changed, conflicted, or all files.`

	treeUse              = "tree [repositories...]"
	treeAlias            = "t"
	treeShortDescription = "display the change tree of repositories (" + treeAlias + ")"
	treeLongDescription  = `Read the status of one or more git working trees and render the changed files as a tree.
Repositories are read concurrently and printed in argument order.`
	treeUsageExample = `  # Show staged files of the current repository
  changetree tree --source staged

  # Render two repositories as JSON with vault paths
  changetree tree --format json --base-path notes --vault-paths ~/vault ~/work`

	pathsUse              = "paths [file]"
	pathsAlias            = "p"
	pathsShortDescription = "display a tree of paths read from a file or stdin (" + pathsAlias + ")"
	pathsLongDescription  = `Read newline separated paths and render them as a tree.
Blank lines and lines starting with # are ignored. Use - or no argument to read stdin.`
	pathsUsageExample = `  # Fold the output of git diff into a tree
  git diff --name-only | changetree paths

  # Render a saved list as YAML
  changetree paths --format yaml changed.txt`

	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration to ` + utils.LocalConfigFileName + ` in the working directory,
or to ~/` + utils.GlobalConfigDirectoryName + `/` + utils.GlobalConfigFileName + ` with --global.`

	configFlagDescription     = "configuration file to use instead of " + utils.LocalConfigFileName
	verboseFlagDescription    = "enable debug logging"
	formatFlagDescription     = "output format (raw, json, xml, yaml)"
	sourceFlagDescription     = "files to include (all, staged, changed, conflicted)"
	basePathFlagDescription   = "location of the repository inside the vault"
	vaultPathsFlagDescription = "include vault paths in structured output"
	copyFlagDescription       = "copy the rendered output to the clipboard"
	relativeFlagDescription   = "treat listed paths as vault paths and strip the base path"
	globalFlagDescription     = "write the global configuration file"
	forceFlagDescription      = "overwrite an existing configuration file"

	invalidFormatMessage        = "invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorReadStatusFormat       = "reading status of %s: %w"
	errorSelectFormat           = "selecting files of %s: %w"
	errorBuildTreeFormat        = "building tree for %s: %w"
	errorOpenPathListFormat     = "opening path list %s: %w"
	errorReadPathListFormat     = "reading path list %s: %w"
	errorLoggerFormat           = "configure logger: %w"
	initWrittenMessageFormat    = "configuration written to %s\n"
	warningCopyFailedMessage    = "unable to copy output to clipboard"
)

// Dependencies are the collaborators used by the commands.
type Dependencies struct {
	Logger       *zap.Logger
	StatusReader changes.StatusReader
	Copier       clipboard.Copier
}

// Execute runs the changetree application.
func Execute(logger *zap.Logger) error {
	rootCommand, app := newRootCommand(Dependencies{
		Logger: logger,
		Copier: clipboard.NewService(),
	})
	defer app.syncDebugLogger()
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	for _, supported := range types.SupportedFormats {
		if format == supported {
			return true
		}
	}
	return false
}

// application carries the dependencies and root flags shared by subcommands.
type application struct {
	dependencies   Dependencies
	configPath     string
	verbose        bool
	newDebugLogger func() (*zap.Logger, error)
	debugLogger    *zap.Logger
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	rootCommand, _ := newRootCommand(dependencies)
	return rootCommand
}

func newRootCommand(dependencies Dependencies) (*cobra.Command, *application) {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	app := &application{
		dependencies: dependencies,
		newDebugLogger: func() (*zap.Logger, error) {
			return utils.NewApplicationLogger(zapcore.DebugLevel)
		},
	}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Version:      utils.GetApplicationVersion(),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !app.verbose {
				return nil
			}
			debugLogger, loggerError := app.newDebugLogger()
			if loggerError != nil {
				return fmt.Errorf(errorLoggerFormat, loggerError)
			}
			app.debugLogger = debugLogger
			app.dependencies.Logger = debugLogger
			return nil
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.PersistentFlags().StringVar(&app.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &app.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.AddCommand(
		app.createTreeCommand(),
		app.createPathsCommand(),
		app.createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand, app
}

// syncDebugLogger flushes the logger installed by --verbose.
func (app *application) syncDebugLogger() {
	if app.debugLogger != nil {
		_ = app.debugLogger.Sync()
	}
}

// treeFlags stores the output related flags of the tree and paths commands.
type treeFlags struct {
	format     string
	source     changes.Source
	basePath   string
	vaultPaths bool
	copy       bool
}

func addOutputFlags(command *cobra.Command, flags *treeFlags) {
	command.Flags().StringVar(&flags.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	command.Flags().StringVar(&flags.basePath, basePathFlagName, "", basePathFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.vaultPaths, vaultPathsFlagName, false, vaultPathsFlagDescription)
	registerBooleanFlag(command.Flags(), &flags.copy, copyFlagName, false, copyFlagDescription)
}

// resolveSettings merges configuration files with explicitly set flags.
func (app *application) resolveSettings(command *cobra.Command, flags treeFlags) (config.TreeSettings, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return config.TreeSettings{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: app.configPath,
	})
	if loadError != nil {
		return config.TreeSettings{}, loadError
	}
	settings := applicationConfiguration.Tree.Settings()

	commandFlags := command.Flags()
	if commandFlags.Changed(formatFlagName) {
		settings.Format = flags.format
	}
	if commandFlags.Changed(sourceFlagName) {
		settings.Source = flags.source
	}
	if commandFlags.Changed(basePathFlagName) {
		settings.BasePath = flags.basePath
	}
	if commandFlags.Changed(vaultPathsFlagName) {
		settings.VaultPaths = flags.vaultPaths
	}
	if commandFlags.Changed(copyFlagName) {
		settings.Copy = flags.copy
	}

	settings.Format = strings.ToLower(settings.Format)
	if !isSupportedFormat(settings.Format) {
		return config.TreeSettings{}, fmt.Errorf(invalidFormatMessage, settings.Format)
	}
	return settings, nil
}

// createTreeCommand returns the tree subcommand.
func (app *application) createTreeCommand() *cobra.Command {
	var flags treeFlags

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			settings, settingsError := app.resolveSettings(command, flags)
			if settingsError != nil {
				return settingsError
			}
			trees, collectError := app.collectRepositoryTrees(command.Context(), arguments, settings)
			if collectError != nil {
				return collectError
			}
			return app.emit(command.OutOrStdout(), settings, trees)
		},
	}

	addOutputFlags(treeCommand, &flags)
	registerSourceFlag(treeCommand.Flags(), &flags.source, sourceFlagName, changes.SourceAll, sourceFlagDescription)
	return treeCommand
}

// createPathsCommand returns the paths subcommand.
func (app *application) createPathsCommand() *cobra.Command {
	var flags treeFlags
	var relativeToVault bool

	pathsCommand := &cobra.Command{
		Use:     pathsUse,
		Aliases: []string{pathsAlias},
		Short:   pathsShortDescription,
		Long:    pathsLongDescription,
		Example: pathsUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := app.resolveSettings(command, flags)
			if settingsError != nil {
				return settingsError
			}
			listPath := standardInputPath
			if len(arguments) == 1 {
				listPath = arguments[0]
			}
			tree, listError := app.buildPathListTree(command.InOrStdin(), listPath, relativeToVault, settings)
			if listError != nil {
				return listError
			}
			return app.emit(command.OutOrStdout(), settings, []*types.TreeOutput{tree})
		},
	}

	addOutputFlags(pathsCommand, &flags)
	registerBooleanFlag(pathsCommand.Flags(), &relativeToVault, relativeFlagName, false, relativeFlagDescription)
	return pathsCommand
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initWrittenMessageFormat, writtenPath)
			return nil
		},
	}

	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func (app *application) statusReader() changes.StatusReader {
	if app.dependencies.StatusReader != nil {
		return app.dependencies.StatusReader
	}
	return changes.NewService(app.dependencies.Logger)
}

// collectRepositoryTrees reads every repository concurrently. The result keeps
// the order of repositories.
func (app *application) collectRepositoryTrees(ctx context.Context, repositories []string, settings config.TreeSettings) ([]*types.TreeOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reader := app.statusReader()
	locator := changes.NewLocator(settings.BasePath)
	trees := make([]*types.TreeOutput, len(repositories))

	group, groupContext := errgroup.WithContext(ctx)
	for repositoryIndex, repository := range repositories {
		group.Go(func() error {
			absolutePath, absolutePathError := filepath.Abs(repository)
			if absolutePathError != nil {
				return fmt.Errorf(errorAbsolutePathFormat, repository, absolutePathError)
			}
			status, statusError := reader.Status(groupContext, absolutePath)
			if statusError != nil {
				return fmt.Errorf(errorReadStatusFormat, absolutePath, statusError)
			}
			files, selectError := status.Select(settings.Source)
			if selectError != nil {
				return fmt.Errorf(errorSelectFormat, absolutePath, selectError)
			}
			tree, buildError := app.buildTree(absolutePath, string(settings.Source), locator.Annotate(files), settings, locator)
			if buildError != nil {
				return buildError
			}
			trees[repositoryIndex] = tree
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return trees, nil
}

func (app *application) buildPathListTree(stdin io.Reader, listPath string, relativeToVault bool, settings config.TreeSettings) (*types.TreeOutput, error) {
	reader := stdin
	label := standardInputLabel
	if listPath != standardInputPath {
		listFile, openError := os.Open(listPath)
		if openError != nil {
			return nil, fmt.Errorf(errorOpenPathListFormat, listPath, openError)
		}
		defer listFile.Close()
		reader = listFile
		label = listPath
	}
	files, parseError := changes.ParsePathList(reader)
	if parseError != nil {
		return nil, fmt.Errorf(errorReadPathListFormat, label, parseError)
	}
	locator := changes.NewLocator(settings.BasePath)
	files = locator.RepositoryRelative(files, relativeToVault)
	return app.buildTree(label, "", locator.Annotate(files), settings, locator)
}

func (app *application) buildTree(root string, source string, files []changes.FileStatus, settings config.TreeSettings, locator changes.Locator) (*types.TreeOutput, error) {
	nodes, buildError := pathtree.Build(changes.Records(files))
	if buildError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, root, buildError)
	}
	app.dependencies.Logger.Debug("tree built",
		zap.String("root", root),
		zap.String("source", source),
		zap.Int("files", len(files)),
		zap.Int("topLevelNodes", len(nodes)))
	return output.NewTreeOutput(root, source, nodes, output.ConversionOptions{
		Locator:           locator,
		IncludeVaultPaths: settings.VaultPaths,
	}), nil
}

// emit renders trees to the writer and optionally copies the same text to the clipboard.
func (app *application) emit(writer io.Writer, settings config.TreeSettings, trees []*types.TreeOutput) error {
	rendered, renderError := output.Render(settings.Format, trees)
	if renderError != nil {
		return renderError
	}
	if _, writeError := io.WriteString(writer, rendered); writeError != nil {
		return writeError
	}
	if settings.Copy && app.dependencies.Copier != nil {
		if copyError := app.dependencies.Copier.Copy(rendered); copyError != nil {
			app.dependencies.Logger.Warn(warningCopyFailedMessage, zap.Error(copyError))
		}
	}
	return nil
}
