package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rcpsp-inv/core/rcpsp"
)

var validateCmd = &cobra.Command{
	Use:   "validate <instance>",
	Short: "Parse an instance file and report its shape",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	inst, err := rcpsp.LoadInstance(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("tasks                %d\n", inst.NumTasks())
	fmt.Printf("renewable resources  %d\n", inst.NumRenewable())
	fmt.Printf("inventory resources  %d\n", inst.NumInventory())
	fmt.Printf("horizon              %d\n", inst.Horizon())
	return nil
}
