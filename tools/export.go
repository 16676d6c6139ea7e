package tools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/graphprotocol/ets-indexer/model"
	"github.com/graphprotocol/ets-indexer/store"
	"github.com/spf13/cobra"
	"github.com/streamingfast/dstore"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:     "export {store-url}",
	Short:   "Writes one JSONL file per entity kind to a dstore URL",
	Args:    cobra.ExactArgs(1),
	RunE:    exportE,
	Example: "etsindexer tools export file:///tmp/ets-snapshot\n  etsindexer tools export gs://bucket/ets/snapshot --kinds Tag,TaggingRecord",
}

func exportE(cmd *cobra.Command, args []string) error {
	kinds, err := cmd.Flags().GetStringSlice("kinds")
	if err != nil {
		return err
	}
	if len(kinds) == 0 {
		kinds = model.Kinds
	}

	out, err := dstore.NewStore(args[0], "", "", true)
	if err != nil {
		return fmt.Errorf("snapshot store %q: %w", args[0], err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	counts, err := Export(cmd.Context(), st, out, kinds)
	if err != nil {
		return err
	}

	for _, kind := range kinds {
		fmt.Printf("%-16s %d\n", kind, counts[kind])
	}
	return nil
}

// ExportFileName is the snapshot object holding every entity of kind.
func ExportFileName(kind string) string {
	return kind + ".jsonl"
}

// Export writes every entity of kinds to out, one JSON document per line,
// and returns how many entities each kind holds.
func Export(ctx context.Context, st *store.Store, out dstore.Store, kinds []string) (map[string]int, error) {
	counts := map[string]int{}

	for _, kind := range kinds {
		if !knownKind(kind) {
			return nil, fmt.Errorf("unknown entity kind %q", kind)
		}

		buf := bytes.NewBuffer(nil)
		err := st.Each(ctx, kind, func(id string, value []byte) error {
			buf.Write(value)
			buf.WriteByte('\n')
			counts[kind]++
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", kind, err)
		}

		if err := out.WriteObject(ctx, ExportFileName(kind), buf); err != nil {
			return nil, fmt.Errorf("write %s: %w", ExportFileName(kind), err)
		}
		zlog.Info("exported entities", zap.String("kind", kind), zap.Int("count", counts[kind]))
	}
	return counts, nil
}

func knownKind(kind string) bool {
	for _, k := range model.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
