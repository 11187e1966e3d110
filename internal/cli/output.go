// Package cli provides output writers for the fsaptvis CLI subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/hyperjump/fsaptvis/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a -output flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteRecord writes an interaction record for pairKey to w.
func WriteRecord(w io.Writer, pairKey string, rec *models.InteractionRecord, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, rec)
	}
	fmt.Fprintf(w, "\n%s: %d significant interactions (%s)\n", pairKey, len(rec.EnergyContributions), rec.InteractionType)
	fmt.Fprintf(w, "Total interaction energy: %.3f\n\n", rec.TotalInteractionEnergy)
	fmt.Fprintf(w, "%8s  %10s  %s\n", "atom", "energy", "")
	for i, e := range rec.EnergyContributions {
		fmt.Fprintf(w, "%8d  %10.3f  %s\n", rec.AtomIndices[i], e, energyBar(e))
	}
	fmt.Fprintf(w, "\nLigand atoms:  %s\n", joinInts(rec.LigandAtoms))
	fmt.Fprintf(w, "Protein atoms: %s\n", joinInts(rec.ProteinAtoms))
	return nil
}

// WriteSummary writes summary statistics for pairKey to w.
func WriteSummary(w io.Writer, pairKey string, s *models.SummaryStats, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, s)
	}
	fmt.Fprintf(w, "pair:                     %s\n", pairKey)
	fmt.Fprintf(w, "interaction_type:         %s\n", s.InteractionType)
	fmt.Fprintf(w, "total_interactions:       %d\n", s.TotalInteractions)
	fmt.Fprintf(w, "attractive_interactions:  %d\n", s.AttractiveInteractions)
	fmt.Fprintf(w, "repulsive_interactions:   %d\n", s.RepulsiveInteractions)
	fmt.Fprintf(w, "total_energy:             %.3f\n", s.TotalEnergy)
	fmt.Fprintf(w, "average_energy:           %.3f\n", s.AverageEnergy)
	fmt.Fprintf(w, "strongest_attractive:     %.3f\n", s.StrongestAttractive)
	fmt.Fprintf(w, "strongest_repulsive:      %.3f\n", s.StrongestRepulsive)
	return nil
}

// WritePairs writes the available pair keys to w.
func WritePairs(w io.Writer, pairs []string, format OutputFormat) error {
	if format == OutputJSON {
		if pairs == nil {
			pairs = []string{}
		}
		return writeJSON(w, pairs)
	}
	for _, p := range pairs {
		fmt.Fprintln(w, p)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// maxBarWidth caps the length of an energy bar.
const maxBarWidth = 40

// energyBar renders one '-' per kcal/mol for attractive energies and '+' for repulsive ones.
// NaN renders as an empty bar.
func energyBar(e float64) string {
	if math.IsNaN(e) {
		return ""
	}
	n := maxBarWidth
	if abs := math.Abs(e); abs < maxBarWidth {
		n = int(math.Round(abs))
	}
	if e < 0 {
		return strings.Repeat("-", n)
	}
	return strings.Repeat("+", n)
}

func joinInts(xs []int) string {
	if len(xs) == 0 {
		return "(none)"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
