package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jamedeus/qrgen/qrc"
	"github.com/jamedeus/qrgen/qrc/common"
	"github.com/jamedeus/qrgen/qrc/contact"
	"github.com/jamedeus/qrgen/qrc/link"
	"github.com/jamedeus/qrgen/qrc/wifi"
)

func main() {
	// Optional, lets PORT and friends live in a .env file
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "qrgen",
		Short:        "Generate QR codes with a text caption underneath",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml",
		"Path to config file")

	// --- serve ---------------------------------------------------------------
	var debugMode bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web frontend and /generate endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := common.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				gin.DisableConsoleColor()
			}
			router, port := qrc.GetServer(debugMode, config)
			return router.Run(port)
		},
	}
	serveCmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug mode & pprof handlers.")
	root.AddCommand(serveCmd)

	// --- contact -------------------------------------------------------------
	var first, last, phone, email, contactOut string
	contactCmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact card QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, configPath, contact.New(first, last, phone, email), contactOut)
		},
	}
	contactCmd.Flags().StringVar(&first, "first", "", "First name")
	contactCmd.Flags().StringVar(&last, "last", "", "Last name")
	contactCmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	contactCmd.Flags().StringVar(&email, "email", "", "Email address")
	contactCmd.Flags().StringVarP(&contactOut, "output", "o", "", "Output file name")
	root.AddCommand(contactCmd)

	// --- wifi ----------------------------------------------------------------
	var ssid, password, wifiOut string
	wifiCmd := &cobra.Command{
		Use:   "wifi",
		Short: "Wifi network QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, configPath, wifi.New(ssid, password), wifiOut)
		},
	}
	wifiCmd.Flags().StringVar(&ssid, "ssid", "", "Network name")
	wifiCmd.Flags().StringVar(&password, "password", "", "Network password")
	wifiCmd.Flags().StringVarP(&wifiOut, "output", "o", "", "Output file name")
	root.AddCommand(wifiCmd)

	// --- link ----------------------------------------------------------------
	var url, text, linkOut string
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Link QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, configPath, link.New(url, text), linkOut)
		},
	}
	linkCmd.Flags().StringVar(&url, "url", "", "URL to encode")
	linkCmd.Flags().StringVar(&text, "text", "", "Optional title shown above the URL")
	linkCmd.Flags().StringVarP(&linkOut, "output", "o", "", "Output file name")
	root.AddCommand(linkCmd)

	// --- version -------------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := common.LoadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, config.Version)
			return nil
		},
	})

	return root
}

// Renders variant and writes it to output, or the variant's own filename
func generate(cmd *cobra.Command, configPath string, variant common.QrVariant,
	output string) error {
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return err
	}
	rendered, err := common.Render(variant, config, common.NewFontResolver(config))
	if err != nil {
		return err
	}
	if len(output) == 0 {
		output = rendered.Filename
	}
	path, err := common.SaveImage(rendered.Composite, output, config.JpgQuality)
	if err != nil {
		return err
	}
	log.Printf("Wrote %s", path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
