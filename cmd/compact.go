package cmd

import (
	"fmt"
	"path/filepath"

	"record-compactor/core/codec"
	"record-compactor/core/compactor"
	"record-compactor/core/utils"
	"record-compactor/feature/compaction"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	compactOutput    string
	compactFidelity  string
	compactCodeWidth int
	compactFormat    string
	compactPublish   string
)

// compactCmd compacts a document into an artifact.
var compactCmd = &cobra.Command{
	Use:   "compact [input]",
	Short: "Compact a subresources document into an artifact",
	Long: `Reads a {"subresources": [...]} document (JSON, comments and trailing
commas allowed) from a file or stdin and writes the columnar artifact.

Examples:
  # JSON artifact on stdout
  record-compactor compact resources.json

  # CBOR artifact, aggressive abbreviation
  record-compactor compact resources.json -o out.cbor --fidelity aggressive

  # Publish to the artifact bucket as "nightly"
  record-compactor compact resources.json -o out.json --publish nightly`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompact,
}

func init() {
	compactCmd.Flags().StringVarP(&compactOutput, "output", "o", "", "Output file (default stdout)")
	compactCmd.Flags().StringVar(&compactFidelity, "fidelity", "", "structural, columnar or aggressive (default from config)")
	compactCmd.Flags().IntVar(&compactCodeWidth, "code-width", 0, "Dictionary code width: 8, 16 or 32")
	compactCmd.Flags().StringVar(&compactFormat, "format", "", "Artifact encoding: json or cbor (default from output extension)")
	compactCmd.Flags().StringVar(&compactPublish, "publish", "", "Also publish the artifact under this name")
	RootCmd.AddCommand(compactCmd)
}

func runCompact(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	svc, err := rt.compactionService()
	if err != nil {
		return err
	}

	inputPath := ""
	if len(args) == 1 {
		inputPath = args[0]
	}
	input, err := readInput(inputPath)
	if err != nil {
		return err
	}
	format, err := outputFormat(compactFormat, compactOutput, svc.DefaultFormat())
	if err != nil {
		return err
	}

	source := "stdin"
	if inputPath != "" && inputPath != "-" {
		source = filepath.Base(inputPath)
	}
	res, err := svc.Compact(ctx, compaction.Request{
		Input:     input,
		Source:    source,
		Fidelity:  compactFidelity,
		CodeWidth: compactCodeWidth,
		PublishAs: compactPublish,
		Format:    format,
	})
	if err != nil {
		return err
	}

	data, err := codec.Marshal(res.Artifact, format)
	if err != nil {
		return err
	}
	if err := writeOutput(compactOutput, data); err != nil {
		return err
	}

	logCompactionStats(rt.log, res.Artifact, len(data))
	if res.ObjectKey != "" {
		rt.log.Info("Artifact published", zap.String("key", res.ObjectKey))
	}
	return nil
}

func logCompactionStats(log *zap.Logger, a *compactor.Artifact, written int) {
	s := a.Stats
	log.Info("Compaction summary",
		zap.String("fidelity", string(a.Fidelity)),
		zap.String("resources", utils.FormatCount(s.ResourcesProcessed)),
		zap.String("dropped", utils.FormatCount(s.ResourcesDropped)),
		zap.Int("groups", len(a.Groups)),
		zap.String("original", utils.FormatBytes(s.OriginalSize)),
		zap.String("compacted", utils.FormatBytes(s.CompactedSize)),
		zap.String("written", utils.FormatBytes(written)),
		zap.String("ratio", utils.FormatRatio(s.CompressionRatio)),
		zap.Int("urls", len(a.Dictionaries.URLs)),
		zap.Int("strings", len(a.Dictionaries.Strings)),
		zap.Int("dictionary_hits", s.DictionaryHits))
	if s.UnreversibleKeys > 0 {
		log.Warn(fmt.Sprintf("%d keys cannot be expanded on reconstruction", s.UnreversibleKeys),
			zap.String("fidelity", string(a.Fidelity)))
	}
}
