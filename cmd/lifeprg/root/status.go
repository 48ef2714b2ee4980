package root

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
	"github.com/wenci-bit/LifePRG-sub002/internal/storage"
	"github.com/wenci-bit/LifePRG-sub002/internal/ui"
)

var attrIcons = map[engine.AttributeKey]string{
	engine.AttrINT: "🧠",
	engine.AttrVIT: "💪",
	engine.AttrMNG: "💼",
	engine.AttrCRE: "🎨",
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progression, streaks and unlocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, store, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Progress(ctx, storage.MainUserKey)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			title := engine.LevelTitle(svc.Catalog(), st.Level)
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Progression"))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (%s)", st.Level, title)))
			fmt.Fprintln(out, ui.LabelValue("Exp", ui.ExpBar(st.CurrentExp, st.MaxExp, 20)))
			fmt.Fprintln(out, ui.LabelValue("Coins", fmt.Sprintf("%s %d", ui.IconCoin, st.Currency)))
			fmt.Fprintln(out, ui.LabelValue("Quests done", st.Stats.TotalQuestsCompleted))
			fmt.Fprintln(out, ui.LabelValue("Focus time", fmt.Sprintf("%d min", st.Stats.TotalFocusTime)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
			for _, k := range engine.AttributeKeys() {
				wallet := ""
				if w := st.Wallet[k]; w > 0 {
					wallet = ui.Muted.Render(fmt.Sprintf(" (wallet %d)", w))
				}
				fmt.Fprintf(out, "- %s %s: %d%s\n", attrIcons[k], strings.ToUpper(string(k)), st.Attributes[k], wallet)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconFire+" Streaks"))
			if len(st.Streaks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("- none yet; try `lifeprg checkin`"))
			}
			domains := make([]string, 0, len(st.Streaks))
			for d := range st.Streaks {
				domains = append(domains, d)
			}
			sort.Strings(domains)
			for _, d := range domains {
				sc := st.Streaks[d]
				next := engine.NextMilestone(sc.CurrentStreak)
				fmt.Fprintf(out, "- %s: %d day(s), best %d %s\n",
					d, sc.CurrentStreak, sc.LongestStreak,
					ui.Muted.Render(fmt.Sprintf("(next milestone: day %d)", next)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconUnlock+" Unlocked"))
			ids := st.UnlockedIDs()
			sort.Strings(ids)
			if len(ids) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("- nothing yet"))
			}
			for _, id := range ids {
				fmt.Fprintf(out, "- %s\n", id)
			}
			fmt.Fprintln(out, "")

			recent, err := store.RecentActivity(ctx, storage.MainUserKey, 5)
			if err != nil {
				return err
			}
			if len(recent) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconCalendar+" Recent activity"))
				for _, rec := range recent {
					fmt.Fprintf(out, "- %s %s %s\n",
						rec.At.Local().Format("Jan 02 15:04"), rec.Kind,
						ui.Muted.Render(fmt.Sprintf("(+%d exp, %+d coins)", rec.Exp, rec.Coins)))
				}
			}
			return nil
		},
	}
	return cmd
}
