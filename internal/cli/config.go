package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shatter/pkg/config"
)

// configCommand creates the config file command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.config.Encode()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.Default().Save(path, force); err != nil {
				return err
			}
			printSuccess("Wrote default config")
			printFile(path)
			printKeyValue("pieces", fmt.Sprint(config.Default().Shatter.PieceCount))
			printKeyValue("format", config.Default().Output.Format)
			printNextStep("Edit it, then check with", appName+" config show")
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
