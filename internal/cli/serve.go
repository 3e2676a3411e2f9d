package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/ximi-ai/lofigen/internal/config"
	"github.com/ximi-ai/lofigen/internal/transport/httpapi"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run an HTTP API that renders lofi mixes on request",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	base, err := baseConfig(cmd)
	if err != nil {
		return err
	}
	base.Logf = log.Printf

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		configPath, _ := cmd.Flags().GetString("config")
		fileCfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		addr = fileCfg.ServeAddr
	}

	handler := httpapi.NewHandler(base, nil)
	router := httpapi.NewRouter(handler)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	})

	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, c.Handler(router))
}
