package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/intake"
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Fill in the candidate questionnaire and save the record",
	Run: func(cmd *cobra.Command, _ []string) {
		runIntake(cmd)
	},
}

func init() {
	rootCmd.AddCommand(intakeCmd)

	intakeCmd.Flags().StringP("output", "o", "", "write the record to this file instead of stdout")
}

func runIntake(cmd *cobra.Command) {
	log := newLogger()

	record, err := intake.Collect(intake.NewPromptAsker())
	if err != nil {
		if errors.Is(err, intake.ErrAborted) {
			log.Info("exiting", zap.String("reason", "questionnaire aborted"))
			return
		}
		log.Fatal("collecting the questionnaire", zap.Error(err))
	}

	path, _ := cmd.Flags().GetString("output")
	if path = strings.TrimSpace(path); path == "" {
		if err := record.Encode(os.Stdout); err != nil {
			log.Fatal("writing the record", zap.Error(err))
		}
		return
	}

	if err := record.ToFile(path); err != nil {
		log.Fatal("writing the record", zap.Error(err), zap.String("path", path))
	}
	log.Info("candidate record saved", zap.String("path", path),
		zap.String("hint", "evaluate it with: "+app+" evaluate -i "+path))
}
