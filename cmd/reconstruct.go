package cmd

import (
	"fmt"

	"record-compactor/core/codec"
	"record-compactor/core/compactor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconstructOutput string
	reconstructFormat string
	reconstructFrom   string
)

// reconstructCmd rebuilds a document from an artifact.
var reconstructCmd = &cobra.Command{
	Use:   "reconstruct [artifact]",
	Short: "Rebuild the subresources document from an artifact",
	Long: `Decodes an artifact from a file, stdin or the artifact bucket (--from)
and writes the reconstructed {"subresources": [...]} document as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReconstruct,
}

func init() {
	reconstructCmd.Flags().StringVarP(&reconstructOutput, "output", "o", "", "Output file (default stdout)")
	reconstructCmd.Flags().StringVar(&reconstructFormat, "format", "", "Artifact encoding: json or cbor (default from input extension)")
	reconstructCmd.Flags().StringVar(&reconstructFrom, "from", "", "Fetch the published artifact with this name instead of reading a file")
	RootCmd.AddCommand(reconstructCmd)
}

func runReconstruct(cmd *cobra.Command, args []string) error {
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

	var a *compactor.Artifact
	if reconstructFrom != "" {
		if len(args) > 0 {
			return fmt.Errorf("--from and an input file are mutually exclusive")
		}
		var format codec.Format
		if reconstructFormat != "" {
			if format, err = codec.ParseFormat(reconstructFormat); err != nil {
				return err
			}
		}
		if a, err = svc.Fetch(ctx, reconstructFrom, format); err != nil {
			return err
		}
	} else {
		inputPath := ""
		if len(args) == 1 {
			inputPath = args[0]
		}
		format, err := outputFormat(reconstructFormat, inputPath, svc.DefaultFormat())
		if err != nil {
			return err
		}
		data, err := readInput(inputPath)
		if err != nil {
			return err
		}
		if a, err = codec.Unmarshal(data, format); err != nil {
			return err
		}
	}

	doc, err := compactor.ReconstructDocument(a)
	if err != nil {
		return err
	}
	out, err := compactor.EncodeValue(doc)
	if err != nil {
		return err
	}
	if err := writeOutput(reconstructOutput, append(out, '\n')); err != nil {
		return err
	}
	rt.log.Info("Reconstruction summary",
		zap.Int("records", a.Records()),
		zap.Int("groups", len(a.Groups)),
		zap.String("fidelity", string(a.Fidelity)))
	return nil
}
