package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"
)

func validateOutputFormat(output string) error {
	switch output {
	case "", "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unsupported output format %q: use 'text', 'json' or 'yaml'", output)
}

// printStructured writes v as JSON or YAML. It reports false for text
// output so the caller renders its own form.
func (a *app) printStructured(w io.Writer, v any) (bool, error) {
	switch a.output {
	case "json":
		return true, printJSON(w, v)
	case "yaml":
		return true, printYAML(w, v)
	}
	return false, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}
