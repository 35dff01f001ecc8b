package cli

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	valuationapp "github.com/turtacn/DealLens/internal/application/valuation"
	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/domain/valuation"
	"github.com/turtacn/DealLens/pkg/client"
)

type scoreOptions struct {
	sector    string
	geography string
	revenue   float64
	server    string
}

// NewScoreCmd scores one company locally or against a running API.
func NewScoreCmd() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Estimate a revenue multiple and enterprise value",
		Example: "  deallens score --sector Technology --geography USA --revenue 50\n" +
			"  deallens score --sector Energy --revenue 7.5 --server http://localhost:5000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runScore(cmd, cliCtx, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sector, "sector", "", "sector label (default: Other)")
	f.StringVar(&opts.geography, "geography", "", "geography label (default: Global)")
	f.Float64Var(&opts.revenue, "revenue", 0, "annual revenue in millions")
	f.StringVar(&opts.server, "server", "", "score through the valuation API at this URL")
	return cmd
}

func runScore(cmd *cobra.Command, cliCtx *CLIContext, opts *scoreOptions) error {
	var (
		res *valuationapp.Result
		err error
	)
	if opts.server != "" {
		res, err = scoreRemote(cmd, cliCtx, opts)
	} else {
		res, err = valuationapp.NewService(nil, cliCtx.Logger).Score(cmd.Context(), valuationapp.Request{
			Sector:    orDefault(opts.sector, deal.SectorOther),
			Geography: orDefault(opts.geography, deal.GeographyGlobal),
			RevenueM:  opts.revenue,
		})
	}
	if err != nil {
		return err
	}

	if cliCtx.JSON() {
		return printJSON(cmd, res)
	}
	writeScore(cmd.OutOrStdout(), res)
	return nil
}

func scoreRemote(cmd *cobra.Command, cliCtx *CLIContext, opts *scoreOptions) (*valuationapp.Result, error) {
	c, err := client.NewClient(opts.server,
		client.WithHTTPClient(&http.Client{Timeout: cliCtx.Timeout}),
		client.WithUserAgent("deallens-cli/"+Version),
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.Predict(cmd.Context(), client.PredictRequest{
		Sector:    opts.sector,
		Geography: opts.geography,
		Revenue:   opts.revenue,
	})
	if err != nil {
		return nil, err
	}

	p := resp.Predictions
	return &valuationapp.Result{
		Inputs: valuationapp.Inputs{
			Sector:    resp.Inputs.Sector,
			Geography: resp.Inputs.Geography,
			RevenueM:  resp.Inputs.RevenueM,
		},
		Predictions: valuation.Prediction{
			RevenueMultiple:  p.RevenueMultiple,
			MultipleRange:    valuation.Range{Low: p.MultipleRange.Low, High: p.MultipleRange.High},
			EnterpriseValueM: p.EnterpriseValueM,
			EVRange:          valuation.Range{Low: p.EVRange.Low, High: p.EVRange.High},
			Confidence:       p.Confidence,
		},
		KeyDrivers: resp.KeyDrivers,
	}, nil
}

func writeScore(w io.Writer, res *valuationapp.Result) {
	p := res.Predictions
	num := valuation.FormatNumber

	fmt.Fprintf(w, "Sector:           %s\n", res.Inputs.Sector)
	fmt.Fprintf(w, "Geography:        %s\n", res.Inputs.Geography)
	fmt.Fprintf(w, "Revenue:          €%sM\n", num(res.Inputs.RevenueM))
	fmt.Fprintf(w, "Revenue multiple: %sx (%sx to %sx)\n",
		num(p.RevenueMultiple), num(p.MultipleRange.Low), num(p.MultipleRange.High))
	fmt.Fprintf(w, "Enterprise value: €%sM (€%sM to €%sM)\n",
		num(p.EnterpriseValueM), num(p.EVRange.Low), num(p.EVRange.High))
	fmt.Fprintf(w, "Confidence:       %s\n", num(p.Confidence))
	if len(res.KeyDrivers) > 0 {
		fmt.Fprintln(w, "Key drivers:")
		for _, d := range res.KeyDrivers {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

//Personal.AI order the ending
