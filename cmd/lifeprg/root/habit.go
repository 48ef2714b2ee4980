package root

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
	"github.com/wenci-bit/LifePRG-sub002/internal/storage"
	"github.com/wenci-bit/LifePRG-sub002/internal/ui"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit [id]",
		Short: "Log a habit completion (no id lists known habits)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one habit id")
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

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconLoop+" Habits"))
				ids := make([]string, 0, len(svc.Catalog().Habits))
				for id := range svc.Catalog().Habits {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					h := svc.Catalog().Habits[id]
					fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s (%s, base %d exp / %d coins)\n",
						id, h.Name, h.Attribute, h.BaseExp, h.BaseCoins)
				}
				return nil
			}

			res, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.HabitCompletion{
				HabitID: args[0],
				At:      time.Now(),
			})
			if err != nil {
				return err
			}

			st, err := svc.Progress(ctx, storage.MainUserKey)
			if err != nil {
				return err
			}
			sc := st.Streak(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: day %d (best %d)\n", ui.IconFire, args[0], sc.CurrentStreak, sc.LongestStreak)

			printResult(cmd, res)
			return nil
		},
	}
	return cmd
}
