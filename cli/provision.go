package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// NewProvisionCmd interactively collects the agent address and the one-time
// credential printed at the agent's first boot, and writes the client
// config file used by the other commands.
func NewProvisionCmd() *cobra.Command {
	path := DefaultConfigPath()

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision CLI config",
		Long:  `Store the agent URL and access token in the client config file.`,
		Run: func(cmd *cobra.Command, args []string) {
			var (
				agentURL  string
				token     string
				verifyTLS bool
			)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Agent URL").
						Placeholder("http://192.168.1.10:51820").
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return errors.New("agent URL is required")
							}

							return nil
						}).
						Value(&agentURL),
					huh.NewInput().
						Title("Access token").
						EchoMode(huh.EchoModePassword).
						Value(&token),
					huh.NewConfirm().
						Title("Verify TLS certificates?").
						Value(&verifyTLS),
				),
			)
			if err := form.Run(); err != nil {
				logErrorCmd(*cmd, err)

				return
			}

			cfg := Config{
				Agent: AgentConfig{
					URL:             strings.TrimSpace(agentURL),
					Token:           token,
					TLSVerification: verifyTLS,
				},
			}
			if err := SaveConfig(cfg, path); err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logSuccessCmd(*cmd, "Successfully created config file "+path)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", path, "Config file path")

	return cmd
}
