package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/autostate/autostate/pkg/codegen"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <model.yaml>",
	Short: "Generate code or policy artifacts from a model",
	Long: `Renders a model through one of the built-in templates and prints the
result to stdout, or writes it to a file with --output.

Template options are passed as repeated --opt key=value flags, e.g.:

  autostate generate door.yaml --template python_class --opt include_tests=false`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		model, err := loadModelFile(args[0])
		if err != nil {
			fmt.Printf("Error loading model: %v\n", err)
			os.Exit(1)
		}

		template, _ := cmd.Flags().GetString("template")
		rawOpts, _ := cmd.Flags().GetStringArray("opt")
		output, _ := cmd.Flags().GetString("output")

		options, err := parseTemplateOptions(rawOpts)
		if err != nil {
			fmt.Printf("Error parsing options: %v\n", err)
			os.Exit(1)
		}

		generated, err := codegen.Generate(model, template, options)
		if err != nil {
			fmt.Printf("Error generating code: %v\n", err)
			os.Exit(1)
		}

		if output != "" {
			if err := os.WriteFile(output, []byte(generated.Content), 0o644); err != nil {
				fmt.Printf("Error writing output: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s (%s)\n", output, generated.Language)
			return
		}
		fmt.Print(generated.Content)
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available code-generation templates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range codegen.Templates() {
			fmt.Printf("%-16s %-8s %s\n", info.ID, info.Language, info.Description)
		}
	},
}

// parseTemplateOptions turns key=value pairs into a typed option map.
// Values that look like booleans or integers are coerced so they decode
// into the emitters' option structs.
func parseTemplateOptions(pairs []string) (codegen.Options, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	options := make(codegen.Options, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed option %q, want key=value", pair)
		}
		if b, err := strconv.ParseBool(value); err == nil {
			options[key] = b
		} else if n, err := strconv.Atoi(value); err == nil {
			options[key] = n
		} else {
			options[key] = value
		}
	}
	return options, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templatesCmd)
	generateCmd.Flags().StringP("template", "t", codegen.TemplatePythonClass, "Template to render (see 'autostate templates')")
	generateCmd.Flags().StringP("output", "o", "", "Write the artifact to a file instead of stdout")
	generateCmd.Flags().StringArray("opt", nil, "Template option as key=value (repeatable)")
}
