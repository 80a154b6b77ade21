package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/lootfilter/structured"
)

type convertOptions struct {
	format string
	output string
}

func (o *convertOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", string(structured.FormatYAML),
		fmt.Sprintf("structured format, one of: %s", structured.Formats()))
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")

	err := cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, f := range structured.Formats() {
			out = append(out, string(f))
		}

		return out, cobra.ShellCompDirectiveNoFileComp
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}
}

func newExportCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "export [flags] <file|->",
		Short: "Convert a rule file to its structured form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := structured.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			out, err := structured.Marshal(a.parser().Parse(string(data)), f)
			if err != nil {
				return err
			}

			return writeOutput(cmd, opts.output, out)
		},
	}

	opts.register(cmd)

	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "import [flags] <file|->",
		Short: "Convert a structured document back to a rule file",
		Long: `import validates a structured YAML or JSON document against the schema
printed by "lootfilter schema" and writes the equivalent rule file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := structured.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			doc, err := structured.Unmarshal(data, f,
				structured.WithIDGenerator(a.settings.IDs.Generator()))
			if err != nil {
				return err
			}

			return writeOutput(cmd, opts.output, []byte(a.serializer().Serialize(doc)))
		},
	}

	opts.register(cmd)

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the structured form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := structured.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return writeOutput(cmd, "", append(out, '\n'))
		},
	}
}
