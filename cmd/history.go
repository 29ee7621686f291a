package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erfanbaree-007/easyRx/internal/history"
	"github.com/erfanbaree-007/easyRx/internal/language"
	"github.com/erfanbaree-007/easyRx/internal/logger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past translations",
	Long: `List, show and clear the local translation history.

The history keeps the most recent ` + fmt.Sprint(history.MaxEntries) + ` completed translations, newest
first. Entries are immutable; older entries are evicted automatically when the
cap is reached.`,
	Example: `  # List all history entries
  easyrx history

  # Show one entry in full
  easyrx history show 1726502400123456789

  # Remove all entries
  easyrx history clear`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one history entry in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history entries",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	kv, err := newKVStore()
	if err != nil {
		return err
	}

	entries := history.NewStore(kv).Load()
	if len(entries) == 0 {
		fmt.Println("No translations yet.")
		return nil
	}

	for _, e := range entries {
		flag := ""
		if lang, ok := language.ByName(e.TargetLanguage); ok {
			flag = lang.Flag + " "
		}
		preview := e.TranslatedText
		if preview == "" {
			preview = e.ImageDescription
		}
		if len([]rune(preview)) > 60 {
			preview = string([]rune(preview)[:57]) + "..."
		}
		fmt.Printf("%s  %s  %s%s: %s\n", e.ID, history.FormatTime(e.Timestamp), flag, e.TargetLanguage, preview)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	kv, err := newKVStore()
	if err != nil {
		return err
	}

	entry, ok := history.NewStore(kv).Find(args[0])
	if !ok {
		return fmt.Errorf("no history entry with id %s", args[0])
	}

	fmt.Printf("Translated at: %s\n", history.FormatTime(entry.Timestamp))
	fmt.Printf("Target language: %s\n", entry.TargetLanguage)
	if entry.DetectedLanguage != "" {
		fmt.Printf("Detected language: %s\n", entry.DetectedLanguage)
	}
	fmt.Printf("\nImage: %s\n", entry.ImageDescription)
	if entry.HasText() {
		fmt.Printf("\nOriginal text:\n%s\n", entry.OriginalText)
		fmt.Printf("\nTranslation:\n%s\n", entry.TranslatedText)
	} else {
		fmt.Println("\nNo readable text was found in this image.")
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("history")

	kv, err := newKVStore()
	if err != nil {
		return err
	}

	if err := history.NewStore(kv).Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	log.Info().Msg("History cleared")
	fmt.Println("History cleared.")
	return nil
}
