package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/config_manager"
	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wireless_host"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "0.0.0-dev"

var (
	configPath    string
	logLevel      string
	interfaceName string
	strategy      string
	jsonOutput    bool
)

var rootCmd = &cobra.Command{
	Use:   "wifimon",
	Short: "Wifi monitor - watch wireless connectivity",
	Long: `wifimon reports the wireless connectivity of a TollGate router: whether the
station interface is associated, to which network, on which band and how strong.`,
	SilenceUsage: true,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream connectivity changes",
	Long:  "Subscribe to the wifi monitor and print every status change until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		host, err := wireless_host.NewHost(cfg.Monitor)
		if err != nil {
			return err
		}
		monitor, err := wifi_monitor.NewBuilder().HostContext(host).Build()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, monitor, cmd.OutOrStdout(), jsonOutput)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current connectivity",
	Long:  "Query the connection manager once and print the classified status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		host, err := wireless_host.NewHost(cfg.Monitor)
		if err != nil {
			return err
		}
		status, err := currentStatus(host)
		if err != nil {
			return err
		}
		return printStatus(cmd.OutOrStdout(), status, jsonOutput)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display wifimon version, kernel release and the strategy that would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "wifimon %s\n", Version)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		platform, err := wireless_host.NewKernelPlatform(cfg.Monitor.Strategy, cfg.Monitor.CapabilityMinKernel)
		if err != nil {
			return err
		}
		selected := wifi_monitor.StrategyReceiver
		if platform.SupportsCapabilityCallbacks() {
			selected = wifi_monitor.StrategyCapability
		}
		fmt.Fprintf(out, "kernel:   %s\n", platform.KernelRelease())
		fmt.Fprintf(out, "strategy: %s\n", selected)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config_manager.ResolveConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().StringVarP(&interfaceName, "interface", "i", "", "Override the configured wireless interface")
	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "", "Override the source strategy (auto, capability, receiver)")

	watchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print one JSON object per status")
	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the status as JSON")

	rootCmd.AddCommand(watchCmd, statusCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig ensures the configuration file exists and applies flag overrides.
func loadConfig() (*config_manager.Config, error) {
	cm := config_manager.NewConfigManager(configPath)
	cfg, err := cm.EnsureDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	applyOverrides(cfg)

	InitializeGlobalLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config_manager.Config) {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if interfaceName != "" {
		cfg.Monitor.Interface = interfaceName
	}
	if strategy != "" {
		cfg.Monitor.Strategy = strategy
	}
}

// watch prints statuses until ctx is done. The subscription is released
// before returning.
func watch(ctx context.Context, monitor *wifi_monitor.Monitor, out io.Writer, asJSON bool) error {
	statuses := make(chan wifi_monitor.Status, 16)
	sub, err := monitor.Subscribe(wifi_monitor.ObserverFunc(func(status wifi_monitor.Status) {
		select {
		case statuses <- status:
		case <-ctx.Done():
		}
	}))
	if err != nil {
		return err
	}
	defer sub.Release()

	logrus.WithFields(logrus.Fields{
		"strategy":           monitor.Strategy().String(),
		"permission_granted": monitor.PermissionGranted(),
	}).Info("Watching wireless connectivity")

	for {
		select {
		case <-ctx.Done():
			stats := monitor.Stats()
			logrus.WithFields(logrus.Fields{
				"delivered":  stats.Delivered,
				"suppressed": stats.Suppressed,
				"discarded":  stats.Discarded,
			}).Info("Stopped watching")
			return nil
		case status := <-statuses:
			if err := printStatus(out, status, asJSON); err != nil {
				return err
			}
		}
	}
}

// currentStatus classifies the host's current state without starting a source.
func currentStatus(host *wireless_host.Host) (wifi_monitor.Status, error) {
	oracle, err := host.PermissionOracle()
	if err != nil {
		return wifi_monitor.UnknownStatus, err
	}
	manager, err := host.ConnectionManager()
	if err != nil {
		return wifi_monitor.UnknownStatus, err
	}

	raw := wifi_monitor.RawSignal{RawState: manager.CurrentRawState()}
	if raw.RawState == wifi_monitor.RawStateEnabled {
		raw.Connection = manager.CurrentConnectionInfo()
	}
	return wifi_monitor.Classify(raw, oracle.IsGranted(wifi_monitor.PermissionConnectionDetails)), nil
}

type statusLine struct {
	Time time.Time `json:"time"`
	wifi_monitor.Status
}

func printStatus(out io.Writer, status wifi_monitor.Status, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(out, status.String())
		return err
	}
	data, err := json.Marshal(statusLine{Time: time.Now().UTC(), Status: status})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
