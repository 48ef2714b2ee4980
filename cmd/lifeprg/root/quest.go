package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
	"github.com/wenci-bit/LifePRG-sub002/internal/storage"
	"github.com/wenci-bit/LifePRG-sub002/internal/ui"
)

func newQuestCmd() *cobra.Command {
	var priority string
	var questType string
	var focus int

	cmd := &cobra.Command{
		Use:   "quest <title>",
		Short: "Report a completed quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.QuestCompletion{
				Title:        args[0],
				Type:         questType,
				Priority:     engine.QuestPriority(priority),
				FocusMinutes: focus,
				At:           time.Now(),
			})
			if err != nil {
				return err
			}

			printResult(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVarP(&questType, "type", "t", "", "Quest type (study|health|work|creative)")
	cmd.Flags().IntVar(&focus, "focus", 0, "Focus minutes spent on the quest")

	return cmd
}

func printResult(cmd *cobra.Command, res *engine.SubmitResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s +%d exp, +%d %s\n", ui.Good.Render(ui.IconDone+" Rewarded:"), res.Bundle.Exp, res.Bundle.Currency, ui.IconCoin)
	if res.Bundle.BonusMessage != "" {
		fmt.Fprintln(out, ui.Gold.Render(ui.IconGift+" "+res.Bundle.BonusMessage))
	}
	for k, v := range res.Bundle.CategorizedCurrency {
		fmt.Fprintf(out, "  %s wallet +%d\n", k, v)
	}
	for _, up := range res.LevelUps {
		line := fmt.Sprintf("%s Level %d — %s", ui.BadgeLevelUp, up.Level, up.Title)
		if up.Coins > 0 {
			line += fmt.Sprintf(" (+%d %s)", up.Coins, ui.IconCoin)
		}
		fmt.Fprintln(out, line)
	}
	for _, id := range res.NewlyUnlocked {
		fmt.Fprintln(out, ui.Gold.Render(ui.IconUnlock+" Unlocked: "+id))
	}
	if res.SaveErr != nil {
		fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" progress applied locally but not saved: "+res.SaveErr.Error()))
	}
}
