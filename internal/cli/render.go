package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samvad-hq/samvad-recipes/internal/domain"
	"github.com/samvad-hq/samvad-recipes/internal/preview"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func renderRecipes(w io.Writer, format string, list []domain.Recipe) error {
	if format != formatTable {
		return encode(w, format, list)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UUID\tCUISINE\tNAME\tSOURCE")
	for _, r := range list {
		source := ""
		if r.SourceURL != nil {
			source = r.SourceURL.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.UUID, r.Cuisine, r.Name, source)
	}
	return tw.Flush()
}

func renderCuisines(w io.Writer, format string, cuisines []string) error {
	if format != formatTable {
		return encode(w, format, cuisines)
	}
	for _, c := range cuisines {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}

func renderPreviews(w io.Writer, format string, previews []preview.Preview) error {
	if format != formatTable {
		return encode(w, format, previews)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UUID\tTITLE\tIMAGE")
	for _, p := range previews {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.RecipeUUID, p.Title, p.ImageURL)
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
