package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"immolist/internal/domain"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property in text format.
func printPropertySummary(p domain.Property) {
	fmt.Printf("Property %s\n", p.ID)
	fmt.Printf("  Title:    %s\n", p.Title)
	fmt.Printf("  City:     %s\n", p.City)
	fmt.Printf("  Price:    %s\n", formatNumber(p.Price))
	fmt.Printf("  Surface:  %s m2\n", formatNumber(p.Surface))
	fmt.Printf("  Type:     %s\n", p.Type)
	fmt.Printf("  Category: %s\n", p.Category)
	fmt.Printf("  Status:   %s\n", p.Status)
	if len(p.Images) > 0 {
		fmt.Printf("  Images:   %s\n", strings.Join(p.Images, ", "))
	}
}

// printPropertyTable prints the catalog as a formatted table.
func printPropertyTable(props []domain.Property) error {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tCITY\tPRICE\tSURFACE\tTYPE\tCATEGORY\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, p := range props {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.City, formatNumber(p.Price), formatNumber(p.Surface), p.Type, p.Category, p.Status); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return w.Flush()
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%.2f", n)
}
