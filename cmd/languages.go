package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erfanbaree-007/easyRx/internal/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported target languages",
	Example: `  easyrx languages
  easyrx translate photo.jpg --lang ja`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, l := range language.All() {
			fmt.Printf("%s  %-5s %-22s %s\n", l.Flag, l.Code, l.Name, l.NativeName)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
