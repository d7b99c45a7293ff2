package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/LinFrancis/escuela-aucca/internal/config"
	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// printDashboard writes every dashboard section as aligned plain text
func printDashboard(out io.Writer, d *domain.Dashboard) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n%s\n\n", config.AppTitle, config.AppSubtitle)
	fmt.Fprintf(tw, "Mostrando resultados para:\t%s\n", d.Selection.Label)
	if d.Selection.Column != "" {
		fmt.Fprintf(tw, "Columna real detectada:\t%s\n", d.Selection.Column)
	}
	fmt.Fprintf(tw, "Respuestas:\t%d de %d\n", d.FilteredRows, d.TotalRows)
	if len(d.MissingColumns) > 0 {
		fmt.Fprintf(tw, "Columnas ausentes:\t%s\n", strings.Join(d.MissingColumns, ", "))
	}

	section(tw, "Participación en el taller")
	if d.Attendance == nil {
		fmt.Fprintln(tw, "Selecciona un taller específico para analizar la participación declarada.")
	} else {
		a := d.Attendance
		fmt.Fprintf(tw, "Total Asistentes\t%d\n", a.AttendeesTotal)
		fmt.Fprintf(tw, "Participaré\t%d\n", a.WillAttend)
		fmt.Fprintf(tw, "Asistiré con infancias\t%d\n", a.WithChildren)
		fmt.Fprintf(tw, "No participaré\t%d\n", a.WillNotAttend)
		fmt.Fprintf(tw, "No estoy seguro/a todavía\t%d\n", a.NotSure)
		printBars(tw, a.Categories)
		if len(a.Undecided) > 0 {
			fmt.Fprintln(tw, "\nPor confirmar:")
			fmt.Fprintln(tw, "Nombre\tTeléfono\tCorreo\tTerritorio")
			for _, c := range a.Undecided {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Phone, c.Email, c.Territory)
			}
		}
	}

	section(tw, "Participación de infancias")
	c := d.Childcare
	fmt.Fprintf(tw, "Con infancias\t%d\t%.1f%%\n", c.WithChildren, c.WithChildrenPct)
	fmt.Fprintf(tw, "Sin infancias\t%d\t%.1f%%\n", c.WithoutChildren, c.WithoutChildrenPct)
	for _, child := range c.Children {
		fmt.Fprintf(tw, "%s\t%s\n", child.Name, child.Children)
	}

	printKnowledge(tw, d.Knowledge)
	printKnowledge(tw, d.Recycling)

	section(tw, "Motivaciones")
	if len(d.Motivations) == 0 {
		fmt.Fprintln(tw, "Sin comentarios.")
	}
	for _, m := range d.Motivations {
		fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Comment)
	}

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func printBars(w io.Writer, bars []domain.CategoryCount) {
	for _, b := range bars {
		fmt.Fprintf(w, "%s\t%d personas (%.1f%%)\t%s\n", b.Category, b.Count, b.Percentage, bar(b.Percentage))
	}
}

func bar(pct float64) string {
	n := int(pct/5 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 20 {
		n = 20
	}
	return strings.Repeat("#", n)
}

func printKnowledge(w io.Writer, k domain.KnowledgeBreakdown) {
	section(w, k.Topic)
	switch k.Status {
	case domain.KnowledgeOK:
		if k.Question != "" {
			fmt.Fprintln(w, k.Question)
		}
		fmt.Fprintf(w, "Promedio de conocimiento\t%.2f/5\t(%d respuestas)\n", k.Mean, k.Count)
		for _, l := range k.Distribution {
			fmt.Fprintf(w, "Nivel %d\t%d personas (%.1f%%)\t%s\n", l.Level, l.Count, l.Percentage, bar(l.Percentage))
		}
		for _, r := range k.High {
			fmt.Fprintf(w, "Nivel alto\t%s\t%.0f\n", r.Name, r.Level)
		}
		for _, r := range k.Low {
			fmt.Fprintf(w, "Nivel bajo\t%s\t%.0f\n", r.Name, r.Level)
		}
	case domain.KnowledgeNoValidResponses:
		fmt.Fprintln(w, "No hay respuestas válidas para este taller.")
	case domain.KnowledgeColumnMissing:
		fmt.Fprintln(w, "No se encontró la columna asociada a este taller en la base de datos.")
	default:
		fmt.Fprintln(w, "Este taller no tiene preguntas asociadas de conocimiento.")
	}
}
