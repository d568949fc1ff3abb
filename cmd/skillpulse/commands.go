package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillpulse/internal/config"
	"skillpulse/pkg/contracts"
	"skillpulse/pkg/contracts/domain"
)

// cliFlags holds command-line overrides; only flags that were set are applied
type cliFlags struct {
	configFile string
	input      string
	out        string
	country    string
	title      string
	topN       int
	salaryTopN int
	minDemand  float64
	ascending  bool
	noWorkbook bool
	noConsole  bool
	logLevel   string
}

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "skillpulse",
		Short: "Skill demand and salary analysis over job postings",
		Long: "skillpulse reads a job postings file, cleans it and answers four questions:\n" +
			"which skills the top data roles ask for, how skills trend month by month,\n" +
			"how jobs and skills pay, and which skills combine demand with pay.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, flags, domain.AllQuestions)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "YAML config file (default: skillpulse.yaml or configs/skillpulse.yaml when present)")
	pf.StringVar(&flags.input, "input", "", "job postings file, CSV or XLSX")
	pf.StringVar(&flags.out, "out", "", "output directory")
	pf.StringVar(&flags.country, "country", "", "country to analyse")
	pf.StringVar(&flags.title, "title", "", "focus job title for trend, pay and optimal")
	pf.IntVar(&flags.topN, "top-n", 0, "skills per title for demand and trend")
	pf.IntVar(&flags.salaryTopN, "salary-top-n", 0, "skills in each salary ranking")
	pf.Float64Var(&flags.minDemand, "min-demand", 0, "minimum demand percent for optimal skills")
	pf.BoolVar(&flags.ascending, "ascending", false, "rank smallest values first")
	pf.BoolVar(&flags.noWorkbook, "no-workbook", false, "skip the chart workbook")
	pf.BoolVar(&flags.noConsole, "no-console", false, "skip the console summary")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newQuestionCommand(flags, "run", "Answer all four questions", domain.AllQuestions...),
		newQuestionCommand(flags, string(domain.QuestionDemand), domain.QuestionDemand.Title(), domain.QuestionDemand),
		newQuestionCommand(flags, string(domain.QuestionTrend), domain.QuestionTrend.Title(), domain.QuestionTrend),
		newQuestionCommand(flags, string(domain.QuestionPay), domain.QuestionPay.Title(), domain.QuestionPay),
		newQuestionCommand(flags, string(domain.QuestionOptimal), domain.QuestionOptimal.Title(), domain.QuestionOptimal),
		newVersionCommand(),
	)

	return root
}

func newQuestionCommand(flags *cliFlags, use, short string, questions ...domain.Question) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, flags, questions)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}

// applyFlags overlays the flags that were set on the loaded configuration
func applyFlags(cmd *cobra.Command, flags *cliFlags, cfg *config.Config) {
	set := cmd.Flags().Changed

	if set("input") {
		cfg.Analysis.Input = flags.input
	}
	if set("out") {
		cfg.Output.Dir = flags.out
	}
	if set("country") {
		cfg.Analysis.Country = flags.country
	}
	if set("title") {
		cfg.Analysis.FocusTitle = flags.title
	}
	if set("top-n") {
		cfg.Analysis.TopN = flags.topN
	}
	if set("salary-top-n") {
		cfg.Analysis.SalaryTopN = flags.salaryTopN
	}
	if set("min-demand") {
		cfg.Analysis.MinDemandPercent = flags.minDemand
	}
	if set("ascending") {
		cfg.Analysis.Ascending = flags.ascending
	}
	if set("no-workbook") {
		cfg.Output.Workbook = !flags.noWorkbook
	}
	if set("no-console") {
		cfg.Output.Console = !flags.noConsole
	}
	if set("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
}
