package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/network"
)

var (
	flagTLSOutputPath = "."
)

func init() {
	tlsCmd := &cobra.Command{
		Use:   "tls",
		Short: "Generate the self-signed tls certificate and key file",
		Run: func(c *cobra.Command, args []string) {
			g, err := network.NewKeyGenerator(flagTLSOutputPath, flagTLSCertFile, flagTLSKeyFile)
			if err != nil {
				common.PrintFlagsError(c, "--output", err)
			}

			log.Info("tls certificate and key files are ready", "cert", g.GetCertPath(), "key", g.GetKeyPath())
		},
	}

	tlsCmd.Flags().StringVar(&flagTLSCertFile, "cert", flagTLSCertFile, "tls certificate file name")
	tlsCmd.Flags().StringVar(&flagTLSKeyFile, "key", flagTLSKeyFile, "tls key file name")
	tlsCmd.Flags().StringVar(&flagTLSOutputPath, "output", flagTLSOutputPath, "tls output path")

	rootCmd.AddCommand(tlsCmd)
}
