package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/DealLens/internal/application/extraction"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

type extractOptions struct {
	outputFile string
	limit      int
	noForward  bool
}

// NewExtractCmd extracts deal records from a notes file, writes them as JSON
// and forwards them to the enabled sinks.
func NewExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <notes-file>",
		Short: "Extract deal records from free-text notes",
		Long: "Split the notes into page sections, pull company, revenue, funding and\n" +
			"EBITDA facts out of each one, classify sector and geography, and save\n" +
			"the records as a JSON array. Postgres, Kafka and MinIO sinks run when\n" +
			"enabled in config.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runExtract(cmd, cliCtx, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.outputFile, "out", "", "JSON output file (default: extract.output_file)")
	f.IntVar(&opts.limit, "limit", -1, "deals to preview, 0 for all (default: extract.preview_limit)")
	f.BoolVar(&opts.noForward, "no-forward", false, "skip the Postgres, Kafka and MinIO sinks")
	return cmd
}

func runExtract(cmd *cobra.Command, cliCtx *CLIContext, source string, opts *extractOptions) error {
	cfg := cliCtx.Config
	output := opts.outputFile
	if output == "" {
		output = cfg.Extract.OutputFile
	}
	limit := opts.limit
	if limit < 0 {
		limit = cfg.Extract.PreviewLimit
	}

	var pipelineOpts []extraction.PipelineOption
	if !opts.noForward {
		sinks := openSinks(cfg, cliCtx.Logger)
		defer func() {
			if err := sinks.Close(); err != nil {
				cliCtx.Logger.Warn("Closing sinks failed", logging.Err(err))
			}
		}()
		pipelineOpts = append(pipelineOpts, extraction.WithForwarders(sinks.forwarders...))
	}

	pipeline := extraction.NewPipeline(nil, cliCtx.Logger, pipelineOpts...)
	summary, err := pipeline.Run(cmd.Context(), extraction.RunRequest{SourcePath: source, OutputPath: output})
	if err != nil {
		return err
	}

	if cliCtx.JSON() {
		doc, err := extraction.MarshalRecords(summary.Records)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	}
	return extraction.WritePreview(cmd.OutOrStdout(), summary, limit)
}

//Personal.AI order the ending
