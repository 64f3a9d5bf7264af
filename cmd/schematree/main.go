// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

// schematree builds document trees, markdown and example payloads from JSON Schema.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/schematree"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schematree"
	_buildTime string
)

// errEmptyStdin reports empty schema input read from stdin.
var errEmptyStdin = errors.New("empty input")

// stdinSource marks schema read from stdin in rendered source lines.
const stdinSource = "(stdin)"

// cliOptions describes schematree CLI flags and subcommands.
type cliOptions struct {
	Verbose          bool                    `short:"v" long:"verbose" description:"Log debug diagnostics to stderr"`
	Version          versionCommand          `command:"version" description:"Print version information"`
	Tree             treeCommand             `command:"tree" description:"Print JSON Schema document tree"`
	Template         templateCommand         `command:"template" description:"Print built-in markdown template"`
	Example          exampleCommand          `command:"example" description:"Generate example payload from JSON Schema"`
	SchemaToMarkdown schemaToMarkdownCommand `command:"schema2md" description:"Convert JSON Schema to markdown"`
}

// ioArgs groups positional input and output paths.
type ioArgs struct {
	Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
	Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
}

// sourceFlags groups schema source selection flags.
type sourceFlags struct {
	Component string `short:"c" long:"component" description:"Read components.schemas entry from OpenAPI 3 document instead of JSON Schema"`
}

// markdownRenderFlags groups markdown rendering flags.
type markdownRenderFlags struct {
	TemplatePath string `short:"f" long:"template-file" description:"Path to custom markdown template (.gotmpl)"`
	Title        string `short:"T" long:"title" description:"Markdown document title" default:"schema reference"`
	ListMarker   string `short:"l" long:"list-marker" description:"Unordered list marker for normalized descriptions" choice:"-" choice:"*" default:"*"`
	WrapWidth    int    `short:"w" long:"wrap" description:"Wrap width for plain text descriptions" default:"80"`
	RootDetails  bool   `long:"root-details" description:"Render description and attributes of object root"`
}

// templateSelectFlags groups built-in template selection flags.
type templateSelectFlags struct {
	TemplateName string `short:"t" long:"template" description:"Built-in template style" choice:"list" choice:"table" default:"list"`
}

// exampleFlags groups example generation flags.
type exampleFlags struct {
	Mode   string `short:"m" long:"mode" description:"Example property coverage" choice:"all" choice:"required"`
	Format string `short:"F" long:"format" description:"Example payload format" choice:"json" choice:"yaml" default:"json"`
}

// treeCommand prints the document tree.
type treeCommand struct {
	runner *cliRunner
	Args   ioArgs `positional-args:"yes"`

	Source  sourceFlags `group:"Schema Source"`
	Format  string      `short:"F" long:"format" description:"Tree encoding" choice:"json" choice:"yaml" default:"json"`
	Path    string      `short:"p" long:"path" description:"Path prefix assigned to the root node"`
	Depth   int         `short:"d" long:"depth" description:"Depth assigned to the root node" default:"0"`
	Checked bool        `long:"checked" description:"Fail on schemas that reference their own ancestors"`
}

// Execute runs tree subcommand.
func (command *treeCommand) Execute(_ []string) error {
	return command.runner.runTree(treeOptions{
		component: command.Source.Component,
		format:    schematree.TreeFormat(command.Format),
		path:      command.Path,
		depth:     command.Depth,
		checked:   command.Checked,
	}, command.Args)
}

// schemaToMarkdownCommand converts schema to markdown.
type schemaToMarkdownCommand struct {
	runner *cliRunner
	Args   ioArgs `positional-args:"yes"`

	Source        sourceFlags         `group:"Schema Source"`
	TemplateFlags templateSelectFlags `group:"Template Select"`
	RenderFlags   markdownRenderFlags `group:"Markdown Render"`
	ExampleFlags  exampleFlags        `group:"Embedded Example"`
}

// Execute runs schema2md subcommand.
func (command *schemaToMarkdownCommand) Execute(_ []string) error {
	return command.runner.runSchemaToMarkdown(command.Source, command.TemplateFlags, command.RenderFlags, command.ExampleFlags, command.Args)
}

// exampleCommand generates example payload.
type exampleCommand struct {
	runner *cliRunner
	Args   ioArgs `positional-args:"yes"`

	Source       sourceFlags  `group:"Schema Source"`
	ExampleFlags exampleFlags `group:"Example"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(command.Source, command.ExampleFlags, command.Args)
}

// templateCommand exports built-in markdown template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateFlags templateSelectFlags `group:"Template Select"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateFlags.TemplateName, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	return command.runner.printVersionInfo()
}

// treeOptions configures tree subcommand output.
type treeOptions struct {
	component string
	format    schematree.TreeFormat
	path      string
	depth     int
	checked   bool
}

// loadedSchema is a decoded schema with its source marker.
type loadedSchema struct {
	doc        schematree.Document
	sourcePath string
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	logger      *slog.Logger
	logLevel    *slog.LevelVar
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schematree"
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logLevel:    logLevel,
		logger:      slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel})),
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runTree builds document tree and writes it in selected encoding.
func (runner *cliRunner) runTree(options treeOptions, args ioArgs) error {
	loaded, err := runner.loadSchema(args.Input, options.component)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	var root schematree.Node
	if options.checked {
		root, err = schematree.BuildChecked(loaded.doc.Root, options.path, options.depth)
		if err != nil {
			return fmt.Errorf("build tree: %w", err)
		}
	} else {
		root = schematree.Build(loaded.doc.Root, options.path, options.depth)
	}

	runner.logger.Debug("tree built", "source", loaded.sourcePath, "children", len(root.Children))

	data, err := schematree.EncodeTree(root, options.format)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}

	return runner.writeOutput(args.Output, data, "tree")
}

// runSchemaToMarkdown renders markdown from schema and writes result to stdout or file.
func (runner *cliRunner) runSchemaToMarkdown(source sourceFlags, templateFlags templateSelectFlags, renderFlags markdownRenderFlags, example exampleFlags, args ioArgs) error {
	loaded, err := runner.loadSchema(args.Input, source.Component)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	renderOptions := schematree.Options{
		Title:           renderFlags.Title,
		SourcePath:      loaded.sourcePath,
		TemplateName:    templateFlags.TemplateName,
		WrapWidth:       renderFlags.WrapWidth,
		ListMarker:      renderFlags.ListMarker,
		ShowRootDetails: renderFlags.RootDetails,
		ExampleMode:     schematree.ExampleMode(example.Mode),
		ExampleFormat:   schematree.ExampleFormat(example.Format),
	}

	if renderFlags.TemplatePath != "" {
		customTemplate, err := os.ReadFile(renderFlags.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", renderFlags.TemplatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
	}

	rendered, err := schematree.RenderDocument(loaded.doc, renderOptions)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	return runner.writeOutput(args.Output, []byte(rendered), "markdown")
}

// runExample generates example payload and writes result to stdout or file.
func (runner *cliRunner) runExample(source sourceFlags, example exampleFlags, args ioArgs) error {
	loaded, err := runner.loadSchema(args.Input, source.Component)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	mode := schematree.ExampleMode(example.Mode)
	if mode == "" {
		mode = schematree.ExampleModeAll
	}

	data, err := schematree.EncodeExample(schematree.BuildTree(loaded.doc), mode, schematree.ExampleFormat(example.Format))
	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	return runner.writeOutput(args.Output, data, "example")
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := schematree.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, []byte(tpl), "template")
}

// loadSchema reads JSON Schema or OpenAPI component from file path or stdin.
func (runner *cliRunner) loadSchema(path, component string) (loadedSchema, error) {
	path = strings.TrimSpace(path)
	component = strings.TrimSpace(component)
	if component != "" {
		return runner.loadComponent(path, component)
	}

	if path != "" {
		doc, err := schematree.LoadFile(path)
		if err != nil {
			return loadedSchema{}, fmt.Errorf("load schema file %q: %w", path, err)
		}

		runner.warnDraft(doc)
		return loadedSchema{doc: doc, sourcePath: path}, nil
	}

	data, err := runner.readStdin()
	if err != nil {
		return loadedSchema{}, err
	}

	doc, err := schematree.Parse(data)
	if err != nil {
		return loadedSchema{}, err
	}

	runner.warnDraft(doc)
	return loadedSchema{doc: doc, sourcePath: stdinSource}, nil
}

// loadComponent converts OpenAPI components.schemas entry from file path or stdin.
func (runner *cliRunner) loadComponent(path, component string) (loadedSchema, error) {
	var (
		schema *schematree.Schema
		err    error
	)

	sourcePath := path
	if path != "" {
		schema, err = schematree.LoadOpenAPIFile(path, component)
		if err != nil {
			err = fmt.Errorf("load openapi file %q: %w", path, err)
		}
	} else {
		sourcePath = stdinSource

		var data []byte
		if data, err = runner.readStdin(); err == nil {
			schema, err = schematree.FromOpenAPI(data, component)
		}
	}

	if err != nil {
		return loadedSchema{}, err
	}

	return loadedSchema{
		doc:        schematree.Document{Root: schema},
		sourcePath: sourcePath + "#/components/schemas/" + component,
	}, nil
}

// warnDraft logs missing or unsupported $schema declarations.
func (runner *cliRunner) warnDraft(doc schematree.Document) {
	switch {
	case strings.TrimSpace(doc.SchemaURI) == "":
		runner.logger.Warn("schema has no $schema value; draft support is unknown")
	case !doc.Draft.Supported:
		runner.logger.Warn("unsupported $schema value", "schema", doc.SchemaURI)
	default:
		runner.logger.Debug("schema draft detected", "draft", doc.Draft.Canonical)
	}
}

// readStdin reads schema bytes from stdin, rejecting blank input.
func (runner *cliRunner) readStdin() ([]byte, error) {
	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("read schema from stdin: %w", errEmptyStdin)
	}

	return data, nil
}

// writeOutput writes payload to stdout or file.
func (runner *cliRunner) writeOutput(outputPath string, data []byte, what string) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, outputPath, err)
	}

	runner.logger.Debug("output written", "kind", what, "path", outputPath, "bytes", len(data))
	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Tree.runner = runner
	options.Template.runner = runner
	options.Example.runner = runner
	options.SchemaToMarkdown.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if options.Verbose {
			runner.logLevel.Set(slog.LevelDebug)
		}

		if command == nil {
			return nil
		}

		return command.Execute(args)
	}
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"tree": strings.TrimSpace(fmt.Sprintf(`
Build render-agnostic document tree from JSON Schema.
Every field gets path, depth, kind, required flag, visibility and metadata.
Use --component to read a schema from OpenAPI 3 components.

Examples:
> $ %s tree schema.json > tree.json
> $ %s tree -F yaml --checked schema.yaml
> $ %s tree -c Pet openapi.yaml
`, programName, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in markdown template text (`+"`list` or `table`"+`).
Use it as a starting point for a custom template file.

Examples:
> $ %s template > list.gotmpl
> $ %s template -t table templates/table.gotmpl
`, programName, programName)),
		"schema2md": strings.TrimSpace(fmt.Sprintf(`
Convert JSON Schema to markdown.
Reads schema from file argument or stdin; writes markdown to file argument or stdout.

Examples:
> $ %s schema2md schema.json > schema.md
> $ cat schema.json | %s schema2md -t table > schema.table.md
> $ %s schema2md --mode required -F yaml schema.json
`, programName, programName, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Generate example payload from JSON Schema.
Scalars take first enum value or a type placeholder; YAML output carries descriptions as comments.

Examples:
> $ %s example schema.json > config.json
> $ %s example -m required -F yaml schema.json config.yaml
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// printVersionInfo writes build information to stdout.
func (runner *cliRunner) printVersionInfo() error {
	_, err := fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, runner.programName, Version, Commit, BuildTime)
	return err
}
