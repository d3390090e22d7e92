package cli

import (
	"time"

	"github.com/absmach/warden/pkg/sdk"
	"github.com/spf13/cobra"
)

var defMonitorInterval = 30 * time.Second

var wsdk sdk.SDK

// SetSDK sets the agent SDK instance used by all commands.
func SetSDK(s sdk.SDK) {
	wsdk = s
}

func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Agent health",
		Long:  `Check agent health. No authentication required.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			h, err := wsdk.Health()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, h)
		},
	}
}

func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Agent info",
		Long:  `Show service name, version and endpoint list.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			i, err := wsdk.Info()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, i)
		},
	}
}

func NewMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Resource metrics",
		Long:  `Fetch one live resource snapshot from the agent.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			m, err := wsdk.Metrics()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, m)
		},
	}
}

func NewMonitorCmd() *cobra.Command {
	interval := defMonitorInterval

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Continuous monitoring",
		Long:  `Poll the metrics endpoint on a fixed interval until interrupted.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			logSuccessCmd(*cmd, "Starting monitoring loop (interval: "+interval.String()+")")

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				m, err := wsdk.Metrics()
				if err != nil {
					logErrorCmd(*cmd, err)
				} else {
					logJSONCmd(*cmd, m)
				}

				select {
				case <-cmd.Context().Done():
					return
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", defMonitorInterval, "Polling interval")

	return cmd
}

func NewUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "System update",
		Long: `Run a package index refresh and upgrade on the host.

The operation is long-running and not retried automatically; a failed
result includes the captured output of both steps.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			logSuccessCmd(*cmd, "Starting system update, this may take a while...")

			r, err := wsdk.Update()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, r)
		},
	}
}

func NewRebootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reboot",
		Short: "Reboot host",
		Long:  `Initiate a host reboot. The agent reports success once the reboot is initiated.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			r, err := wsdk.Reboot()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, r)
		},
	}
}
