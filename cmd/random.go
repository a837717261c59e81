package cmd

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rcpsp-inv/core/rcpsp"
)

var randomSeed int64

var randomCmd = &cobra.Command{
	Use:   "random <instance>",
	Short: "Emit a uniformly sampled start-time vector for an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runRandom,
}

func init() {
	randomCmd.Flags().Int64Var(&randomSeed, "seed", 1, "random seed")
	rootCmd.AddCommand(randomCmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	inst, err := rcpsp.LoadInstance(args[0])
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	starts := inst.RandomSolution(rand.New(rand.NewSource(randomSeed)))
	out := make([]string, len(starts))
	for i, s := range starts {
		out[i] = fmt.Sprintf("%d", s)
	}
	fmt.Println(strings.Join(out, " "))
	return nil
}
