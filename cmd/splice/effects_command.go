package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"splice/internal/effects"
)

func newEffectsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "effects",
		Short: "List the effect catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := effects.All()
			if asJSON {
				return writeJSON(cmd, effectCatalogEntries(catalog))
			}

			rows := make([][]string, 0, len(catalog))
			for _, descriptor := range catalog {
				rows = append(rows, []string{
					descriptor.ID,
					descriptor.Name,
					string(descriptor.Category),
					parameterSummary(descriptor.Parameters),
				})
			}
			table := renderTable([]string{"Effect", "Name", "Category", "Parameters"}, rows)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the catalog as JSON")
	return cmd
}

func parameterSummary(params []effects.Parameter) string {
	if len(params) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(params))
	for _, param := range params {
		part := fmt.Sprintf("%s=%s", param.Name, trimFloat(param.Default))
		if param.Clamped {
			part += fmt.Sprintf(" [%s..%s]", trimFloat(param.Min), trimFloat(param.Max))
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type effectParameterEntry struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
	Neutral float64 `json:"neutral"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Clamped bool    `json:"clamped"`
}

type effectCatalogEntry struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Category   string                 `json:"category"`
	Parameters []effectParameterEntry `json:"parameters"`
}

func effectCatalogEntries(catalog []effects.Descriptor) []effectCatalogEntry {
	entries := make([]effectCatalogEntry, 0, len(catalog))
	for _, descriptor := range catalog {
		entry := effectCatalogEntry{
			ID:       descriptor.ID,
			Name:     descriptor.Name,
			Category: string(descriptor.Category),
		}
		for _, param := range descriptor.Parameters {
			entry.Parameters = append(entry.Parameters, effectParameterEntry{
				Name:    param.Name,
				Default: param.Default,
				Neutral: param.Neutral,
				Min:     param.Min,
				Max:     param.Max,
				Clamped: param.Clamped,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}
