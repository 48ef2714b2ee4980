package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wenci-bit/LifePRG-sub002/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lifeprg",
	Short:         "LifeRPG — gamified personal-productivity tracker",
	Long:          "LifeRPG turns quests, habits and daily check-ins into experience, coins, attributes and unlocks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newQuestCmd(),
		newCheckinCmd(),
		newHabitCmd(),
		newUnlocksCmd(),
		newBuyCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render("error:")+" "+err.Error())
		os.Exit(1)
	}
}
