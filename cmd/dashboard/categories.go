package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/cli"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the keywords that assign metrics to categories",
		Long: `Show the keyword table used to group metrics. A metric belongs to every
category whose keywords appear in its name, ignoring case. Override a
category with categories.<name> in the config file.`,
		Args: cobra.NoArgs,
		RunE: runCategoriesList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "match <metric name>",
		Short: "Show which categories a metric name falls into",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCategoriesMatch,
	})

	return cmd
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Category"), headerStyle.Render("Keywords"))
	fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 10), strings.Repeat("-", 8))

	for _, entry := range engine.Classifier().Table() {
		fmt.Fprintf(w, "%s\t%s\n", entry.Category.Title(), strings.Join(entry.Keywords, ", "))
	}
	return nil
}

func runCategoriesMatch(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	categories := engine.Classifier().Categories(model.Metric{Name: name})

	out := cmd.OutOrStdout()
	switch len(categories) {
	case 0:
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%q matches no category", name)))
	case 1:
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%q is %s", name, categories[0].Title())))
	default:
		titles := make([]string, len(categories))
		for i, c := range categories {
			titles[i] = c.Title()
		}
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%q matches %s and is counted in each",
			name, strings.Join(titles, ", "))))
	}
	return nil
}
