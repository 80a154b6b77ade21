package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	diff "github.com/shogoki/gotextdiff"
	"github.com/spf13/cobra"
)

type fmtOptions struct {
	write bool
	diff  bool
	list  bool
}

func newFmtCmd(a *app) *cobra.Command {
	opts := &fmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt [flags] <file|dir|-> ...",
		Short: "Normalize the formatting of rule files",
		Long: `fmt parses each rule file and prints it back in canonical form: one blank
line between blocks, attributes indented by four spaces, and repeated
BaseType, Class and Prophecy lines merged.

Directories are searched recursively for files with the configured
extension.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFmt(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write result to the source file instead of stdout")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "print a unified diff instead of the result")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "only list files whose formatting would change")

	return cmd
}

func (a *app) runFmt(cmd *cobra.Command, opts *fmtOptions, args []string) error {
	var files []string

	for _, arg := range args {
		if arg == "-" {
			if opts.write {
				return fmt.Errorf("%w: cannot write to stdin", ErrUsage)
			}

			files = append(files, arg)

			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		names, err := a.store(arg).Scan()
		if err != nil {
			return err
		}

		for _, name := range names {
			files = append(files, filepath.Join(arg, filepath.FromSlash(name)))
		}
	}

	for _, path := range files {
		err := a.formatFile(cmd, opts, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func (a *app) formatFile(cmd *cobra.Command, opts *fmtOptions, path string) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	before := string(data)
	after := a.serializer().Serialize(a.parser().Parse(before))
	changed := before != after

	out := cmd.OutOrStdout()

	switch {
	case opts.list:
		if changed {
			fmt.Fprintln(out, path)
		}

	case opts.diff:
		if changed {
			_, err = out.Write(diff.Diff(path, data, path, []byte(after)))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}
		}

	case !opts.write:
		_, err = fmt.Fprint(out, after)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	if opts.write && changed {
		err = writeOutput(cmd, path, []byte(after))
		if err != nil {
			return err
		}

		a.logger.Info("formatted", slog.String("path", path))
	}

	return nil
}
