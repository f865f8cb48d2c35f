// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/collect"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/config"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/inspect"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/report"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/update"
	x509certs "github.com/H0llyW00dzZ/tls-cert-inspector/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/tls-cert-inspector/src/logger"
	"github.com/spf13/cobra"
)

var (
	fileFlag     string
	serverFlag   string
	locationFlag string
	expiresFlag  int
	renewFlag    bool
	problemsFlag bool
	commandFlag  string
	debugFlag    bool
	upgradeFlag  bool
	localFlag    bool
	portFlag     int
	timeoutFlag  time.Duration
	configFlag   string
)

// Execute runs the root command and returns any error that occurred during
// execution. Domains are gathered from the positional argument and the
// --file, --server, and --location flags; with no source at all the command
// prints its help text and returns nil.
func Execute(ctx context.Context, version string) error {
	rootCmd := &cobra.Command{
		Use:           posix.GetExecutableName() + " [DOMAIN]",
		Short:         "TLS certificate inspector",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		RunE:          execCli,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "read domains from FILE, one per line")
	rootCmd.Flags().StringVarP(&serverFlag, "server", "s", "", "read domains from the server config (cpanel or ISPconfig)")
	rootCmd.Flags().StringVarP(&locationFlag, "location", "l", "", "read domains from the subdirectory names of LOCATION")
	rootCmd.Flags().IntVarP(&expiresFlag, "expires", "e", 30, "flag certificates expiring within DAYS as near renewal")
	rootCmd.Flags().BoolVarP(&renewFlag, "renew", "r", false, "print only the domains that are near renewal")
	rootCmd.Flags().BoolVarP(&problemsFlag, "problems", "p", false, "print only the domains with possible issues")
	rootCmd.Flags().StringVarP(&commandFlag, "command", "c", "", "run COMMAND with each near-renewal domain as its argument")
	rootCmd.Flags().BoolVarP(&debugFlag, "debug", "d", false, "print debug output to stderr")
	rootCmd.Flags().BoolVarP(&upgradeFlag, "upgrade", "u", false, "check whether a newer release is available")
	rootCmd.Flags().BoolVar(&localFlag, "local", false, "read certificates from LOCATION instead of connecting out")
	rootCmd.Flags().IntVar(&portFlag, "port", 443, "TLS port to connect to")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 10*time.Second, "per-domain connection timeout")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "path to a JSON or YAML defaults file")

	return rootCmd.ExecuteContext(ctx)
}

// execCli gathers the domains, inspects each one, and renders the requested
// report. Flags always win over config-file defaults, which win over the
// built-in defaults.
func execCli(cmd *cobra.Command, args []string) error {
	log := logger.NewDiscardLogger()
	if debugFlag {
		log = logger.NewDebugLogger()
	}

	if upgradeFlag {
		return runUpgrade(cmd)
	}

	fileCfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	applyDefaults(cmd, fileCfg)

	var domain string
	if len(args) > 0 {
		domain = args[0]
	}
	collectCfg := collect.Config{
		Domain:   domain,
		File:     fileFlag,
		Server:   serverFlag,
		Location: locationFlag,
	}
	if !collectCfg.HasSource() {
		return cmd.Help()
	}
	if localFlag && locationFlag == "" {
		return fmt.Errorf("--local requires --location")
	}

	domains, err := collect.New(collectCfg).Domains(cmd.Context())
	if err != nil {
		return err
	}
	log.Printf("collected %d domain(s)", len(domains))

	inspector := inspect.New(inspect.Config{
		Port:           portFlag,
		Timeout:        timeoutFlag,
		RenewAlertDays: expiresFlag,
	}, log)

	var records []inspect.Record
	if localFlag {
		records, err = inspectLocal(cmd.Context(), inspector, domains, log)
	} else {
		records, err = inspector.InspectAll(cmd.Context(), domains)
	}
	if err != nil {
		return err
	}

	renderer := report.New(cmd.OutOrStdout())
	switch {
	case commandFlag != "":
		renderer.RunCommand(cmd.Context(), commandFlag, records, log)
		return nil
	case renewFlag:
		return renderer.RenewalList(records)
	case problemsFlag:
		return renderer.ProblemsTable(records)
	default:
		return renderer.Table(records)
	}
}

// applyDefaults copies config-file defaults into any flag the user did not
// set explicitly.
func applyDefaults(cmd *cobra.Command, fileCfg *config.Config) {
	if !cmd.Flags().Changed("expires") {
		expiresFlag = fileCfg.Defaults.ExpireDays
	}
	if !cmd.Flags().Changed("timeout") {
		timeoutFlag = time.Duration(fileCfg.Defaults.Timeout) * time.Second
	}
	if !cmd.Flags().Changed("port") {
		portFlag = fileCfg.Defaults.Port
	}
}

// inspectLocal classifies each domain against the certificate stored under
// the --location directory instead of performing a TLS handshake. A domain
// whose certificate cannot be read or decoded is reported the same way as a
// failed connection.
func inspectLocal(ctx context.Context, inspector *inspect.Inspector, domains []string, log logger.Logger) ([]inspect.Record, error) {
	store := x509certs.NewStore(locationFlag)
	records := make([]inspect.Record, 0, len(domains))
	for _, domain := range domains {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		domain = strings.TrimSpace(domain)
		if domain == "" {
			continue
		}
		cert, err := store.LoadLeaf(domain)
		if err != nil {
			log.Printf("inspect %s: %v", domain, err)
			records = append(records, inspector.Classify(domain, nil))
			continue
		}
		records = append(records, inspector.Classify(domain, cert))
	}
	return records, nil
}

// runUpgrade checks the published release version and reports whether the
// running binary is out of date. It never modifies the installed binary.
func runUpgrade(cmd *cobra.Command) error {
	result, err := update.New(cmd.Root().Version).Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	out := cmd.OutOrStdout()
	if result.Available {
		fmt.Fprintf(out, "A newer version is available: %s (current: %s)\n", result.Latest, result.Current)
		fmt.Fprintln(out, "Download: https://github.com/H0llyW00dzZ/tls-cert-inspector/releases")
	} else {
		fmt.Fprintf(out, "You are running the latest version: %s\n", result.Current)
	}
	return nil
}
