package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
	"github.com/wenci-bit/LifePRG-sub002/internal/storage"
	"github.com/wenci-bit/LifePRG-sub002/internal/ui"
)

func newUnlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlocks",
		Short: "List entitlements and their unlock conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Progress(ctx, storage.MainUserKey)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Entitlements"))
			for _, def := range svc.Catalog().Entitlements {
				mark := ui.Muted.Render(ui.IconLock)
				if st.IsUnlocked(def.ID) {
					mark = ui.Good.Render(ui.IconUnlock)
				}
				cond := ""
				switch def.Condition.Type {
				case catalog.CondDefault:
					cond = "always"
				case catalog.CondLevel:
					cond = fmt.Sprintf("level %d", def.Condition.Value)
				case catalog.CondAchievement:
					cond = fmt.Sprintf("%d quests", def.Condition.Value)
				case catalog.CondCoins:
					cond = fmt.Sprintf("buy for %d %s", def.Condition.Value, ui.IconCoin)
				}
				fmt.Fprintf(out, "%s %s — %s %s\n", mark, def.ID, def.Name, ui.Muted.Render("("+cond+")"))
			}
			return nil
		},
	}
	return cmd
}

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <entitlement-id>",
		Short: "Spend coins on a purchasable unlock",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("entitlement id is required")
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

			res, err := svc.Purchase(ctx, storage.MainUserKey, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Unlocked %s for %d %s\n", ui.Gold.Render(ui.IconUnlock), res.ID, res.Spent, ui.IconCoin)
			if res.SaveErr != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" purchase applied locally but not saved: "+res.SaveErr.Error()))
			}
			return nil
		},
	}
	return cmd
}
