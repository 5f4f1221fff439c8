package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/envoic/internal/output"
	"github.com/blackwell-systems/envoic/internal/store"
)

var (
	historyLimit int

	historyCmd = &cobra.Command{
		Use:   "history [batch]",
		Short: "Show recent deletion batches",
		Long: `Show the deletion batches recorded by manage and clean, newest first, with
how many items each deleted and how much space it freed. Dry runs are not
recorded.

Pass a batch ID, or a unique prefix of one, to list every item in that batch
with its outcome.`,
		Example: `  envoic history
  envoic history --limit 0
  envoic history 3f2a9c1e`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of batches to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", historyLimit)
	}
	out := cmd.OutOrStdout()

	path, err := getDBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprint(out, output.RenderHistoryTable(nil))
		return nil
	}

	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer st.Close()

	if len(args) == 1 {
		return showBatch(cmd, st, args[0])
	}

	batches, err := st.ListBatches(historyLimit)
	if errors.Is(err, store.ErrNotInitialized) {
		fmt.Fprint(out, output.RenderHistoryTable(nil))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprint(out, output.RenderHistoryTable(batches))

	total, err := st.TotalBytesFreed()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal freed: %s\n", output.FormatBytes(total))
	return nil
}

func showBatch(cmd *cobra.Command, st *store.Store, id string) error {
	batch, err := findBatch(st, id)
	if err != nil {
		return err
	}

	deletions, err := st.GetDeletions(batch.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.RenderBatchDetail(batch, deletions))
	return nil
}

// findBatch resolves a full batch ID or a unique prefix of one.
func findBatch(st *store.Store, id string) (*store.Batch, error) {
	if batch, err := st.GetBatch(id); err == nil {
		return batch, nil
	} else if errors.Is(err, store.ErrNotInitialized) {
		return nil, fmt.Errorf("no batch %s: no deletions recorded", id)
	}

	batches, err := st.ListBatches(0)
	if err != nil {
		return nil, err
	}

	var match *store.Batch
	for _, b := range batches {
		if !strings.HasPrefix(b.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("batch prefix %s is ambiguous", id)
		}
		match = b
	}
	if match == nil {
		return nil, fmt.Errorf("no batch %s", id)
	}
	return match, nil
}
