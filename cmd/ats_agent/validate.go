package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/schemas"
	embedded "github.com/jonathan/ats-optimizer/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a schema",
	Long: `Validates a JSON document against one of the built-in schemas
(parsed_resume, job_requirements, score_result, recommendation_set) or
against a schema file on disk.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateIn     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Built-in schema name or path to a schema file (required)")
	validateCmd.Flags().StringVarP(&validateIn, "in", "i", "", "Path to the JSON file (required)")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if _, lookupErr := embedded.Get(validateSchema); lookupErr == nil {
		err = validateBuiltin(validateSchema, validateIn)
	} else {
		err = schemas.ValidateJSON(validateSchema, validateIn)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid against %s\n", validateIn, validateSchema)
	return nil
}

func validateBuiltin(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return schemas.ValidateDocument(name, doc)
}
