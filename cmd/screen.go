package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/screening"
)

const (
	PromptReportByRole = "Report by role"
	PromptRosterToFile = "Dump roster to file"
	PromptPrintRoster  = "Print roster"
	PromptExit         = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next action",
	Items: []string{PromptReportByRole, PromptRosterToFile, PromptPrintRoster, PromptExit},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Assess a roster of candidates and screen it",
	Run: func(cmd *cobra.Command, _ []string) {
		screen(cmd)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringP("roster", "r", "", "roster file with candidates (json or yaml), - for stdin")
	screenCmd.Flags().BoolP("auto-approve", "y", false, "print the screened roster and exit without prompting")
	screenCmd.Flags().Bool("selected-only", true, "drop candidates who were not selected")
	screenCmd.Flags().Int("minimum-score", 0, "drop candidates with a lower overall score")
	screenCmd.Flags().StringSlice("role", nil, "keep only candidates suggested for these roles")
	screenCmd.Flags().StringP("exclude-file", "e", "", "file listing candidate ids to drop")

	viper.BindPFlag("screening.selected-only", screenCmd.Flags().Lookup("selected-only"))
	viper.BindPFlag("screening.minimum-score", screenCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("screening.roles", screenCmd.Flags().Lookup("role"))
	viper.BindPFlag("screening.exclude-file", screenCmd.Flags().Lookup("exclude-file"))
}

func screen(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.New().String()
	log := newLogger().With(zap.String("run_id", runID))

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the screening", zap.String("version", version))

	path, _ := cmd.Flags().GetString("roster")
	if path == "" {
		log.Fatal("roster is required", zap.String("hint", "pass --roster <file> or --roster - for stdin"))
	}

	records, err := candidate.LoadRecords(path)
	if err != nil {
		log.Fatal("loading the roster", zap.Error(err), zap.String("path", path))
	}

	roster := screening.Assess(records)
	roster.RunID = runID
	log.Info("candidates assessed", zap.Int("count", roster.Len()))

	if roster.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	steps := screening.DefaultSteps()
	deps := screening.Deps{Logger: log}

	debriefer, err := newDebriefer(ctx, config.AI, log)
	switch {
	case errors.Is(err, errAIDisabled):
		screening.DisableByName(steps, screening.NameAIDebrief, err.Error())
	case err != nil:
		log.Warn("skipping AI debrief", zap.Error(err))
		screening.DisableByName(steps, screening.NameAIDebrief, err.Error())
	default:
		deps.Debriefer = debriefer
	}

	for _, status := range screening.Describe(steps) {
		log.Debug("screening step",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	roster, err = screening.Run(ctx, screeningConfig(config), deps, steps, roster)
	if err != nil {
		log.Fatal("screening failed", zap.Error(err))
	}

	if roster.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no candidates left after screening"))
		return
	}

	if auto, _ := cmd.Flags().GetBool("auto-approve"); auto {
		if err := writeDocument(config.Output, (*rosterView)(roster)); err != nil {
			log.Fatal("writing the roster", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		log.Info("current roster", zap.Int("count", roster.Len()))

		if err := handleAction(action, log, config, roster); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, log *zap.Logger, config *Config, roster *screening.Roster) error {
	switch action {
	case PromptReportByRole:
		return writeDocument(config.Output, roleReportView(roster.ReportByRole()))
	case PromptRosterToFile:
		filename, err := roster.DumpToTmpFile(fmt.Sprintf("roster_%s_*.json", roster.RunID))
		if err != nil {
			return fmt.Errorf("dump roster to file: %w", err)
		}
		log.Info("dumping roster to file", zap.String("filename", filename))
		return nil
	case PromptPrintRoster:
		return writeDocument(config.Output, (*rosterView)(roster))
	case PromptExit:
		log.Info("exiting", zap.String("reason", "exit requested from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}
