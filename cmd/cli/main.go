package main

import (
	"log"

	"github.com/absmach/warden/cli"
	"github.com/absmach/warden/pkg/sdk"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath = cli.DefaultConfigPath()
		agentURL   string
		token      string
		verifyTLS  bool
	)

	rootCmd := &cobra.Command{
		Use:   "warden-cli",
		Short: "Warden CLI",
		Long:  `Warden CLI is a command line interface for interacting with a warden agent.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			sdkConf := sdk.Config{
				AgentURL:        agentURL,
				Token:           token,
				TLSVerification: verifyTLS,
			}

			if cfg, err := cli.LoadConfig(configPath); err == nil {
				if sdkConf.AgentURL == "" {
					sdkConf.AgentURL = cfg.Agent.URL
				}
				if sdkConf.Token == "" {
					sdkConf.Token = cfg.Agent.Token
				}
				if !cmd.Flags().Changed("tls-verification") {
					sdkConf.TLSVerification = cfg.Agent.TLSVerification
				}
			}

			cli.SetSDK(sdk.NewSDK(sdkConf))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "Config file path")
	rootCmd.PersistentFlags().StringVarP(&agentURL, "agent-url", "a", "", "Agent URL (overrides config file)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "Access token (overrides config file)")
	rootCmd.PersistentFlags().BoolVar(&verifyTLS, "tls-verification", false, "Verify TLS certificates")

	rootCmd.AddCommand(cli.NewProvisionCmd())
	rootCmd.AddCommand(cli.NewHealthCmd())
	rootCmd.AddCommand(cli.NewInfoCmd())
	rootCmd.AddCommand(cli.NewMetricsCmd())
	rootCmd.AddCommand(cli.NewMonitorCmd())
	rootCmd.AddCommand(cli.NewUpdateCmd())
	rootCmd.AddCommand(cli.NewRebootCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
