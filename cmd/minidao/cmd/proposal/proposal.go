package proposal

import (
	"fmt"
	"io"
	"text/template"

	"github.com/spf13/cobra"

	"boscoin.io/minidao/lib/client"
	"boscoin.io/minidao/lib/common"
)

var (
	flagEndpoint string = common.GetENVValue("MINIDAO_API_ENDPOINT", "https://127.0.0.1:12345")
	flagFormat   string = "default"
)

func addFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node api")
	c.Flags().StringVar(&flagFormat, "format", flagFormat, "format={default, json, prettyjson, yaml}")
}

// Status is the state of proposal shown to the voters.
func Status(p client.Proposal) string {
	switch {
	case p.Finalized && p.Passed:
		return "passed"
	case p.Finalized:
		return "failed"
	case p.CanFinalize:
		return "ready to finalize"
	default:
		return fmt.Sprintf("active, %d blocks remaining", p.RemainingBlocks)
	}
}

var proposalTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"status": Status,
}).Parse(`#{{ .ID }} {{ .Title }}
    {{ .Description }}
    proposer: {{ .Proposer }}
      blocks: {{ .CreatedAtHeight }} ~ {{ .EndHeight }}
         yes: {{ .YesVotes }} ({{ .YesPercentage }}%)
          no: {{ .NoVotes }} ({{ .NoPercentage }}%)
      status: {{ status . }}
`))

func defaultEncode(p client.Proposal, w io.Writer) error {
	return proposalTemplate.Execute(w, p)
}
