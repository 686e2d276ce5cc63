// Export command: load the tables and write a graph snapshot.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/txlens/internal/export"
)

// Snapshot formats accepted by --format.
const (
	formatSQLite = "sqlite"
	formatJSON   = "json"
)

func newExportCmd() *cobra.Command {
	var (
		tf       tableFlags
		out      string
		format   string
		doSample bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load the three tables and export a graph snapshot",
		Long: `Export runs the pipeline and materializes the assembled graph for the
rendering collaborator, either as a SQLite database or a JSON document.

Example:
  txlens export --features f.csv --classes c.csv --edges e.csv --out graph.db
  txlens export --features f.csv --classes c.csv --edges e.csv --out graph.json --format json --sample`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatSQLite && format != formatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatSQLite, formatJSON)
			}

			graph, err := runPipeline(cmd, tf, doSample)
			if err != nil {
				return err
			}

			switch format {
			case formatJSON:
				err = export.WriteJSON(graph, out)
			default:
				err = export.WriteSQLite(graph, out)
			}
			if err != nil {
				return err
			}

			fmt.Printf("exported snapshot %s (%d nodes, %d edges) to %s\n",
				graph.SnapshotID, graph.Statistics.Total, graph.Statistics.EdgeCount, out)
			return nil
		},
	}

	registerTableFlags(cmd, &tf)
	cmd.Flags().StringVar(&out, "out", "", "output path for the snapshot")
	cmd.Flags().StringVar(&format, "format", formatSQLite, "snapshot format: sqlite or json")
	cmd.Flags().BoolVar(&doSample, "sample", false, "downsample the graph before exporting")
	cobra.CheckErr(cmd.MarkFlagRequired("out"))

	return cmd
}
