// Command csspp compiles the csspp dialect to CSS. Grounded on
// cmd/lessgo/main.go's flag-driven compile command, rebuilt on cobra,
// the corpus's only CLI-flag library and already used by titpetric/lessgo's
// other dependencies.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/csspp/csspp/driver"
	"github.com/csspp/csspp/internal/config"
	"github.com/csspp/csspp/internal/source"
)

func main() {
	root := newRootCmd()
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		if _, reported := err.(*driver.Reported); !reported {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		confFile                string
		defaultEncoding         string
		sourceEncoding          string
		destEncoding            string
		enableImports           string
		enableFlatten           string
		enableSolve             string
		curfileRelativeImports  string
		toplevelRelativeImports string
	)

	cmd := &cobra.Command{
		Use:   "csspp",
		Short: "csspp compiles the csspp stylesheet dialect to CSS",
	}

	compileCmd := &cobra.Command{
		Use:   "compile INPUT OUTPUT",
		Short: "Compile a stylesheet to CSS",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(confFile, defaultEncoding, sourceEncoding, destEncoding,
				enableImports, enableFlatten, enableSolve, curfileRelativeImports, toplevelRelativeImports)
			if err != nil {
				return err
			}
			return runCompile(args[0], args[1], opts)
		},
	}

	flags := compileCmd.Flags()
	flags.StringVar(&confFile, "conf", "", "Configuration file path (overrides default lookup)")
	flags.StringVar(&defaultEncoding, "default-encoding", "", "Encoding to assume when sniffing finds none")
	flags.StringVar(&sourceEncoding, "source-encoding", "", "Force the input encoding (ignores @charset/BOM)")
	flags.StringVar(&destEncoding, "dest-encoding", "", "Encoding of the output file")
	flags.StringVar(&enableImports, "enable-imports", "", "yes|no, default yes")
	flags.StringVar(&enableFlatten, "enable-flatten", "", "yes|no, default yes")
	flags.StringVar(&enableSolve, "enable-solve", "", "yes|no, default yes (flatten requires solve)")
	flags.StringVar(&curfileRelativeImports, "curfile-relative-imports", "", "enable|disable, default enable")
	flags.StringVar(&toplevelRelativeImports, "toplevel-relative-imports", "", "enable|disable, default enable")

	cmd.AddCommand(compileCmd)
	return cmd
}

func resolveOptions(confFile, defaultEncoding, sourceEncoding, destEncoding,
	enableImports, enableFlatten, enableSolve,
	curfileRelativeImports, toplevelRelativeImports string) (config.Options, error) {

	var fileOverlay config.Overlay
	if confFile != "" {
		var err error
		fileOverlay, err = config.ReadINIFile(confFile)
		if err != nil {
			return config.Options{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cliOverlay, err := cliOverlayFromFlags(defaultEncoding, sourceEncoding, destEncoding,
		enableImports, enableFlatten, enableSolve, curfileRelativeImports, toplevelRelativeImports)
	if err != nil {
		return config.Options{}, err
	}

	return config.Merge(fileOverlay, cliOverlay), nil
}

// cliOverlayFromFlags converts cobra's string flags (empty means
// "unset") into a config.Overlay, applying the yes/no and
// enable/disable vocabularies.
func cliOverlayFromFlags(defaultEncoding, sourceEncoding, destEncoding,
	enableImports, enableFlatten, enableSolve,
	curfileRelativeImports, toplevelRelativeImports string) (config.Overlay, error) {

	var o config.Overlay
	if defaultEncoding != "" {
		o.DefaultEncoding = &defaultEncoding
	}
	if sourceEncoding != "" {
		o.SourceEncoding = &sourceEncoding
	}
	if destEncoding != "" {
		o.DestEncoding = &destEncoding
	}
	var err error
	if o.EnableImports, err = parseFlagBool(enableImports); err != nil {
		return o, err
	}
	if o.EnableFlatten, err = parseFlagBool(enableFlatten); err != nil {
		return o, err
	}
	if o.EnableSolve, err = parseFlagBool(enableSolve); err != nil {
		return o, err
	}
	if o.CurfileRelativeImports, err = parseFlagBool(curfileRelativeImports); err != nil {
		return o, err
	}
	if o.ToplevelRelativeImports, err = parseFlagBool(toplevelRelativeImports); err != nil {
		return o, err
	}
	return o, nil
}

func parseFlagBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	switch s {
	case "yes", "enable", "true":
		v := true
		return &v, nil
	case "no", "disable", "false":
		v := false
		return &v, nil
	}
	return nil, fmt.Errorf("invalid boolean flag value %q", s)
}

func runCompile(inputPath, outputPath string, opts config.Options) error {
	var (
		data []byte
		err  error
		dir  string
		base string
	)
	if inputPath == "-" {
		data, err = io.ReadAll(os.Stdin)
		dir, base = ".", "<stdin>"
	} else {
		data, err = os.ReadFile(inputPath)
		dir, base = filepath.Dir(inputPath), filepath.Base(inputPath)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	logger := log.New(os.Stderr, "", 0)
	drv := driver.New(opts, os.DirFS(dir), logger)

	css, err := drv.CompileBytes(base, data)
	if err != nil {
		return err
	}

	out, err := source.EncodeOutput(css, opts.DestEncoding)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outputPath, out, 0644)
}
