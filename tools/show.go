package tools

import (
	"fmt"

	"github.com/graphprotocol/ets-indexer/model"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var (
	showCmd = &cobra.Command{
		Use:     "show {kind} {id}",
		Short:   "Prints the stored JSON of one entity",
		Args:    cobra.ExactArgs(2),
		RunE:    showE,
		Example: "etsindexer tools show Tag 1\n  etsindexer tools show Relayer 0x2e6f...",
	}

	checkpointCmd = &cobra.Command{
		Use:   "checkpoint",
		Short: "Prints the position of the last applied event",
		Args:  cobra.NoArgs,
		RunE:  checkpointE,
	}

	countCmd = &cobra.Command{
		Use:   "count",
		Short: "Prints the number of stored entities of every kind",
		Args:  cobra.NoArgs,
		RunE:  countE,
	}
)

func showE(cmd *cobra.Command, args []string) error {
	kind, id := args[0], args[1]
	if !knownKind(kind) {
		return fmt.Errorf("unknown entity kind %q, expected one of %v", kind, model.Kinds)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	value, err := st.Lookup(kind, id)
	if err != nil {
		return err
	}

	fmt.Println(string(value))
	return nil
}

func checkpointE(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	checkpoint, err := st.LoadCheckpoint()
	if err != nil {
		return err
	}
	if checkpoint == nil {
		fmt.Println(aurora.Yellow("No event applied yet"))
		return nil
	}

	fmt.Printf("Block #%d (%s), log index %d\n",
		aurora.Green(checkpoint.BlockNumber),
		checkpoint.BlockHash,
		checkpoint.LogIndex,
	)
	return nil
}

func countE(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, kind := range model.Kinds {
		count := 0
		err := st.Each(cmd.Context(), kind, func(string, []byte) error {
			count++
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("%-16s %d\n", kind, count)
	}
	return nil
}
