package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cppjava/enumgen"
)

type CLI struct {
	Gen     GenCmd     `cmd:"" help:"Generate Java enum classes from C++ headers."`
	List    ListCmd    `cmd:"" help:"Print output paths without writing files."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type GenCmd struct {
	Out     string   `arg:"" help:"Output directory for generated files."`
	Sources []string `arg:"" help:"Header files to scan."`

	Include    []string `short:"I" placeholder:"PATH" help:"Include search path (repeatable)."`
	AssertFile []string `help:"Assert that the given file is an output (repeatable)."`
	Watch      bool     `short:"w" help:"Watch sources and regenerate on change."`
	Verbose    bool     `help:"Print output paths and debug logging."`
}

func (c *GenCmd) Run() error {
	cfg := &enumgen.Config{
		OutDir:       c.Out,
		Sources:      c.Sources,
		IncludePaths: c.Include,
		AssertFiles:  c.AssertFile,
	}
	if c.Verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	ctx := context.Background()
	if c.Watch {
		return enumgen.Watch(ctx, cfg, func(result *enumgen.Result, err error) {
			if err == nil && c.Verbose {
				printPaths(result)
			}
		})
	}

	result, err := enumgen.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	if c.Verbose {
		printPaths(result)
	}
	return nil
}

type ListCmd struct {
	Out     string   `arg:"" help:"Output directory used to compute paths."`
	Sources []string `arg:"" help:"Header files to scan."`

	Include []string `short:"I" placeholder:"PATH" help:"Include search path (repeatable)."`
}

func (c *ListCmd) Run() error {
	result, err := enumgen.Generate(context.Background(), &enumgen.Config{
		OutDir:       c.Out,
		Sources:      c.Sources,
		IncludePaths: c.Include,
		DryRun:       true,
	})
	if err != nil {
		return err
	}
	printPaths(result)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func printPaths(result *enumgen.Result) {
	for _, p := range result.OutputPaths {
		fmt.Println(p)
	}
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("enumgen"),
		kong.Description("Generates Java classes of integer constants from annotated C/C++ enums."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
