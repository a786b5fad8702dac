package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"record-compactor/core/codec"
	"record-compactor/core/utils"
	"record-compactor/feature/compaction"

	"github.com/spf13/cobra"
)

var (
	verifyFidelity  string
	verifyCodeWidth int
	verifyFormat    string
	verifyJSON      bool
)

// verifyCmd checks that a document survives compaction.
var verifyCmd = &cobra.Command{
	Use:   "verify [input]",
	Short: "Check that a document round-trips through compaction",
	Long: `Compacts the input, encodes and decodes the artifact, reconstructs the
records and reconciles them against the input by url (or a content
fingerprint). Exits non-zero when the round trip is not lossless.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFidelity, "fidelity", "", "structural, columnar or aggressive (default from config)")
	verifyCmd.Flags().IntVar(&verifyCodeWidth, "code-width", 0, "Dictionary code width: 8, 16 or 32")
	verifyCmd.Flags().StringVar(&verifyFormat, "format", "", "Codec used for the round trip: json or cbor")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print the full result as JSON")
	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
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
	var format codec.Format
	if verifyFormat != "" {
		if format, err = codec.ParseFormat(verifyFormat); err != nil {
			return err
		}
	}

	res, err := svc.Verify(ctx, compaction.Request{
		Input:     input,
		Fidelity:  verifyFidelity,
		CodeWidth: verifyCodeWidth,
		Format:    format,
	})
	if err != nil {
		return err
	}

	if verifyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printVerifyResult(res)
	}

	if !res.Lossless {
		return fmt.Errorf("round trip is not lossless: %d missing, %d extra, %d mismatched",
			res.Summary.Missing, res.Summary.Extra, res.Summary.Mismatches)
	}
	return nil
}

func printVerifyResult(res *compaction.VerifyResult) {
	s := res.Summary
	fmt.Printf("Fidelity:    %s (%s)\n", res.Fidelity, res.Format)
	fmt.Printf("Records:     %s matched of %s\n", utils.FormatCount(s.Matched), utils.FormatCount(s.TotalItems))
	fmt.Printf("Missing:     %d\n", s.Missing)
	fmt.Printf("Extra:       %d\n", s.Extra)
	fmt.Printf("Mismatched:  %d\n", s.Mismatches)
	fmt.Printf("Size:        %s -> %s (%s)\n",
		utils.FormatBytes(res.Stats.OriginalSize), utils.FormatBytes(res.Stats.CompactedSize),
		utils.FormatRatio(res.Stats.CompressionRatio))

	const maxShown = 20
	for i, p := range res.Problems {
		if i == maxShown {
			fmt.Printf("... and %d more\n", len(res.Problems)-maxShown)
			break
		}
		switch {
		case !p.ReconstructedPresent:
			fmt.Printf("  - %s: missing after reconstruction\n", p.ID)
		case !p.OriginalPresent:
			fmt.Printf("  - %s: not in input\n", p.ID)
		default:
			fmt.Printf("  - %s: %s\n", p.ID, strings.Join(p.Mismatch, "; "))
		}
	}
}
