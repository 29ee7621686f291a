package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erfanbaree-007/easyRx/internal/logger"
	"github.com/erfanbaree-007/easyRx/internal/usage"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show or change your subscription plan",
	Long: `Show the current plan and today's scan usage.

The free plan allows ` + fmt.Sprint(usage.FreeDailyLimit) + ` scans per calendar day; the counter resets
automatically on the first use of a new day. The pro plan has no daily limit.`,
	Example: `  # Show plan and remaining scans
  easyrx plan

  # Switch to the pro plan
  easyrx plan upgrade`,
	RunE: runPlanShow,
}

var planUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade to the pro plan",
	RunE:  runPlanUpgrade,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planUpgradeCmd)
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	kv, err := newKVStore()
	if err != nil {
		return err
	}

	gate := usage.NewGate(kv)
	state := gate.Current()

	fmt.Printf("Plan: %s\n", state.Plan)
	if state.Plan == usage.PlanPro {
		fmt.Println("Scans today: unlimited")
		return nil
	}

	fmt.Printf("Scans today: %d of %d\n", state.ScansToday, usage.FreeDailyLimit)
	fmt.Printf("Remaining: %d\n", gate.RemainingScans())
	return nil
}

func runPlanUpgrade(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("plan")

	kv, err := newKVStore()
	if err != nil {
		return err
	}

	state := usage.NewGate(kv).Upgrade()
	log.Info().Str("plan", string(state.Plan)).Msg("Plan changed")

	fmt.Println("You are now on the pro plan. Enjoy unlimited scans!")
	return nil
}
