package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"persona-match/internal/compatibility"
	"persona-match/internal/config"
	"persona-match/internal/db"
	"persona-match/internal/domain"
	"persona-match/internal/personality"
	"persona-match/internal/repository"
	"persona-match/internal/service"
)

const app = "personactl"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           app,
		Short:         "personactl scores personalities and compatibility from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("table", "", "affinity table YAML (default is the embedded table)")

	root.AddCommand(
		newScoreCmd(),
		newQuizCmd(),
		newCompatCmd(),
		newTableCmd(),
		newRecomputeCmd(),
		newTokenCmd(),
	)
	return root
}

func newScoreCmd() *cobra.Command {
	var (
		interests string
		policy    string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Infer a type from a comma-separated interest list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			normalizer, err := personality.NormalizerFor(policy)
			if err != nil {
				return err
			}
			set := domain.NewInterestSet(splitList(interests))
			scores := personality.NewScorer(nil).Score(set)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"type":        personality.Resolve(scores),
				"scores":      scores,
				"percentages": normalizer.Normalize(scores),
			})
		},
	}
	cmd.Flags().StringVarP(&interests, "interests", "i", "", "comma-separated interests")
	cmd.Flags().StringVar(&policy, "normalizer", personality.PolicySoftmax, "softmax or linear")
	return cmd
}

func newQuizCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz ANSWER ANSWER ANSWER ANSWER",
		Short: "Score the onboarding quiz (one letter per axis: I/E S/N T/F J/P)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := personality.ScoreQuiz(args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newCompatCmd() *cobra.Command {
	var (
		fromType, toType string
		fromInt, toInt   string
	)
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Compute blended and ranking scores between two type/interest pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}
			from, err := domain.ParseType(fromType)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := domain.ParseType(toType)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			scorer := compatibility.NewScorer(table, compatibility.DefaultVocabulary)
			a := domain.NewInterestSet(splitList(fromInt))
			b := domain.NewInterestSet(splitList(toInt))
			aff, known := scorer.Affinity(from, to)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"affinity":            aff,
				"affinity_known":      known,
				"interest_similarity": scorer.InterestSimilarity(a, b),
				"blended_score":       scorer.BlendedScore(from, to, a, b),
				"ranking_score":       compatibility.RankingScore(aff, a, b),
			})
		},
	}
	cmd.Flags().StringVar(&fromType, "from", "", "viewer type")
	cmd.Flags().StringVar(&toType, "to", "", "candidate type")
	cmd.Flags().StringVar(&fromInt, "from-interests", "", "viewer interests, comma-separated")
	cmd.Flags().StringVar(&toInt, "to-interests", "", "candidate interests, comma-separated")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Validate the affinity table and report gaps and asymmetric pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}
			asym := table.Asymmetries()
			pairs := make([]string, 0, len(asym))
			for _, p := range asym {
				pairs = append(pairs, string(p[0])+"->"+string(p[1]))
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"version":     table.Version(),
				"missing":     len(table.Missing()),
				"asymmetric":  len(asym),
				"asym_sample": sample(pairs, 10),
			})
		},
	}
}

func newRecomputeCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "recompute USER_ID",
		Short: "Recompute a user's personality against the configured database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()

			normalizer, err := personality.NormalizerFor(cfg.InterestNormalizer)
			if err != nil {
				return err
			}
			svc := service.NewPersonalityService(
				repository.NewPgProfileRepository(pool),
				repository.NewPgPostRepository(pool),
				repository.NewPgHistoryRepository(pool),
				normalizer,
				compatibility.DefaultVocabulary,
				service.NewMemoryUserLocker(cfg.UserLockTTL),
				nil,
				cfg.HistoryLimit,
				logger,
			)
			inf, err := svc.Recompute(ctx, args[0])
			if err != nil {
				return err
			}
			out := map[string]any{"inference": inf}
			if refresh {
				ref, err := svc.RefreshProfileType(ctx, args[0])
				if err != nil {
					return err
				}
				out["refresh"] = ref
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", true, "also reconcile the profile type against history")
	return cmd
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token USER_ID",
		Short: "Mint an access token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
			token, err := jwtSvc.GenerateAccessToken(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}

func loadTable(cmd *cobra.Command) (*compatibility.AffinityTable, error) {
	path, _ := cmd.Flags().GetString("table")
	return compatibility.LoadAffinityFile(path)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func sample(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
