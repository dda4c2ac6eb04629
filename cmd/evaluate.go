package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/ai"
	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/intake"
	"github.com/spigell/mars-eval/internal/logger"
	"github.com/spigell/mars-eval/internal/scoring"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single candidate and suggest a mission role",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("input", "i", "", "candidate record file (json or yaml), - for stdin")
	evaluateCmd.Flags().Bool("interactive", false, "fill in the questionnaire instead of reading a file")
	evaluateCmd.Flags().Bool("explain", false, "include the scoring rules that awarded points")
	evaluateCmd.Flags().Bool("debrief", false, "add an AI debrief of the assessment (requires ai.enabled)")
}

func evaluate(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	explain, _ := cmd.Flags().GetBool("explain")
	withDebrief, _ := cmd.Flags().GetBool("debrief")
	input, _ := cmd.Flags().GetString("input")

	record, err := readCandidate(input, interactive)
	if err != nil {
		if errors.Is(err, intake.ErrAborted) {
			log.Info("exiting", zap.String("reason", "questionnaire aborted"))
			return
		}
		log.Fatal("reading a candidate record", zap.Error(err),
			zap.String("hint", "pass --input <file>, --input - for stdin, or --interactive"),
		)
	}

	assessment, awards := scoring.Trace(record)
	logger.WithCandidate(log, record).Info("candidate evaluated", logger.AssessmentFields(assessment)...)

	report := newEvaluationReport(record, assessment)
	if explain {
		report.Awards = awards
	}

	if withDebrief {
		report.Debrief = debriefCandidate(ctx, config.AI, log, record, assessment)
	}

	if err := writeDocument(config.Output, report); err != nil {
		log.Fatal("writing the assessment", zap.Error(err))
	}
}

func readCandidate(input string, interactive bool) (*candidate.Record, error) {
	if interactive {
		return intake.Collect(intake.NewPromptAsker())
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("no candidate record given")
	}
	return candidate.LoadRecord(input)
}

// debriefCandidate never fails the command: problems are logged and attached to the debrief.
func debriefCandidate(ctx context.Context, cfg *AIConfig, log *zap.Logger, record *candidate.Record, assessment scoring.Assessment) *ai.Debrief {
	debriefer, err := newDebriefer(ctx, cfg, log)
	if err != nil {
		log.Warn("skipping AI debrief", zap.Error(err), zap.String("hint", "set ai.enabled: true and configure ai.gemini"))
		return &ai.Debrief{Error: err.Error()}
	}

	debrief, err := debriefer.Debrief(ctx, record, assessment)
	if err != nil {
		logger.WithCandidate(log, record).Warn("AI debrief failed", zap.Error(err))
		return &ai.Debrief{Error: err.Error()}
	}

	return debrief
}
