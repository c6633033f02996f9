package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"Armature/internal/calc/element"
)

const rule = "───────────────────────────────────────────────────────────────"

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

func passMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func printChecks(w io.Writer, c element.Checks) {
	heading(w, "CHECKS:")
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  Check\tDemand\tCapacity\tUnit\t\n")
	row := func(name string, ch *element.Check) {
		if ch == nil {
			return
		}
		capacity := "-"
		if ch.Capacity != nil {
			capacity = fmt.Sprintf("%.3f", *ch.Capacity)
		}
		fmt.Fprintf(tw, "  %s\t%.3f\t%s\t%s\t%s\n", name, ch.Demand, capacity, ch.Unit, passMark(ch.Pass))
	}
	row("Bending", c.Bending)
	row("Shear", c.Shear)
	row("Punching", c.Punching)
	row("Bearing", c.Bearing)
	tw.Flush()
}

func printQuantities(w io.Writer, q element.Quantities) {
	heading(w, "QUANTITIES:")
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  Concrete volume:\t%.3f m³\n", q.ConcreteVolumeM3)
	fmt.Fprintf(tw, "  Concrete mass:\t%.1f kg\n", q.ConcreteMassKg)
	fmt.Fprintf(tw, "  Cement bags:\t%d\n", q.CementBags)
	fmt.Fprintf(tw, "  Steel mass:\t%.2f kg\n", q.SteelMassKg)
	tw.Flush()
}

func printBars(w io.Writer, lines []element.BbsLine) {
	heading(w, "REINFORCEMENT:")
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  Bars\tØ (mm)\tNo.\tSpacing (mm)\tUnit (m)\tTotal (m)\n")
	for _, l := range lines {
		spacing := "-"
		if l.SpacingMM > 0 {
			spacing = fmt.Sprintf("%.0f", l.SpacingMM)
		}
		fmt.Fprintf(tw, "  %s\t%.0f\t%d\t%s\t%.3f\t%.3f\n", l.Name, l.DiameterMM, l.Count, spacing, l.UnitLengthM, l.TotalLengthM)
	}
	tw.Flush()
}

func printNotes(w io.Writer, title string, notes []string) {
	if len(notes) == 0 {
		return
	}
	heading(w, title)
	for _, n := range notes {
		fmt.Fprintf(w, "  • %s\n", n)
	}
}

func printSummary(w io.Writer, summary string) {
	heading(w, "SUMMARY:")
	fmt.Fprintf(w, "  %s\n\n", summary)
}
