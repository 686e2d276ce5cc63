// Load command: run the pipeline and print graph statistics.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/txlens/internal/pipeline"
	"github.com/mesh-intelligence/txlens/internal/stats"
	"github.com/mesh-intelligence/txlens/pkg/types"
)

// tableFlags holds the input file paths shared by load and export.
type tableFlags struct {
	features string
	classes  string
	edges    string
}

// registerTableFlags adds the three required input-file flags to cmd.
func registerTableFlags(cmd *cobra.Command, tf *tableFlags) {
	cmd.Flags().StringVar(&tf.features, "features", "", "path to the features table")
	cmd.Flags().StringVar(&tf.classes, "classes", "", "path to the classes table")
	cmd.Flags().StringVar(&tf.edges, "edges", "", "path to the edgelist table")
	cobra.CheckErr(cmd.MarkFlagRequired("features"))
	cobra.CheckErr(cmd.MarkFlagRequired("classes"))
	cobra.CheckErr(cmd.MarkFlagRequired("edges"))
}

// runPipeline loads the three tables and optionally samples the result.
func runPipeline(cmd *cobra.Command, tf tableFlags, doSample bool) (*types.AssembledGraph, error) {
	cfg, err := loadConfig(resolveConfigDir())
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	if logger != nil {
		defer func() { _ = logger.Sync() }()
	}

	loader, err := pipeline.NewLoader(cfg, logger)
	if err != nil {
		return nil, err
	}

	featuresFile, err := os.Open(tf.features)
	if err != nil {
		return nil, fmt.Errorf("open features table: %w", err)
	}
	defer featuresFile.Close()
	classesFile, err := os.Open(tf.classes)
	if err != nil {
		return nil, fmt.Errorf("open classes table: %w", err)
	}
	defer classesFile.Close()
	edgesFile, err := os.Open(tf.edges)
	if err != nil {
		return nil, fmt.Errorf("open edgelist table: %w", err)
	}
	defer edgesFile.Close()

	graph, err := loader.Load(cmd.Context(), pipeline.Inputs{
		Features: featuresFile,
		Classes:  classesFile,
		Edges:    edgesFile,
	})
	if err != nil {
		return nil, err
	}
	if doSample {
		graph = loader.Sample(graph)
	}
	return graph, nil
}

func newLoadCmd() *cobra.Command {
	var (
		tf       tableFlags
		doSample bool
		detail   bool
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the three tables and print graph statistics",
		Long: `Load parses the features, classes, and edgelist tables, assembles the
transaction graph, and prints its statistics.

Example:
  txlens load --features txs_features.csv --classes txs_classes.csv --edges txs_edgelist.csv
  txlens load --features f.csv --classes c.csv --edges e.csv --sample --detail
  txlens load --features f.csv --classes c.csv --edges e.csv --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := runPipeline(cmd, tf, doSample)
			if err != nil {
				return err
			}
			if detail {
				return printExtended(graph)
			}
			return printStatistics(graph)
		},
	}

	registerTableFlags(cmd, &tf)
	cmd.Flags().BoolVar(&doSample, "sample", false, "downsample the graph per the configured class proportions")
	cmd.Flags().BoolVar(&detail, "detail", false, "include per-class feature-score statistics")

	return cmd
}

// printStatistics prints the basic summary, as JSON or a table.
func printStatistics(g *types.AssembledGraph) error {
	s := stats.Summarize(g)
	if flags.jsonMode {
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal statistics: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOTAL\tILLICIT\tLICIT\tUNKNOWN\tEDGES")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", s.Total, s.Illicit, s.Licit, s.Unknown, s.EdgeCount)
	w.Flush()
	fmt.Print(sb.String())
	return nil
}

// printExtended prints the summary plus per-class feature-score moments.
func printExtended(g *types.AssembledGraph) error {
	ext := stats.Extended(g)
	if flags.jsonMode {
		out, err := json.MarshalIndent(ext, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal statistics: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if err := printStatistics(g); err != nil {
		return err
	}

	classes := make([]types.Classification, 0, len(ext.PerClass))
	for class := range ext.PerClass {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nCLASS\tCOUNT\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, class := range classes {
		cs := ext.PerClass[class]
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n", class, cs.Count, cs.MeanSum, cs.StdDevSum, cs.MinSum, cs.MaxSum)
	}
	w.Flush()
	fmt.Print(sb.String())
	return nil
}
