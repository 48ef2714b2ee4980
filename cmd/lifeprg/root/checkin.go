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

func newCheckinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record today's check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.SubmitActivity(ctx, storage.MainUserKey, engine.CheckIn{At: time.Now()})
			var already engine.AlreadyCheckedInError
			if errors.As(err, &already) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconCalendar+" Already checked in today — see you tomorrow!"))
				return nil
			}
			if err != nil {
				return err
			}

			st, err := svc.Progress(ctx, storage.MainUserKey)
			if err != nil {
				return err
			}
			sc := st.Streak(engine.CheckInDomain)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Day %d (best %d), next milestone at day %d\n",
				ui.IconFire, sc.CurrentStreak, sc.LongestStreak, engine.NextMilestone(sc.CurrentStreak))

			printResult(cmd, res)
			return nil
		},
	}
	return cmd
}
