package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskboard/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long:  `Serve tasks, epics and subtasks over HTTP. Every change is written to the data file.`,
	Run:   serve,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func serve(cmd *cobra.Command, args []string) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	m, err := openManager(cfg)
	if err != nil {
		log.Fatalf("Failed to load taskboard: %v", err)
	}

	if cfg.Storage.File == "" {
		log.Printf("Keeping items in memory only")
	} else {
		log.Printf("Data file: %s (%d items)", cfg.Storage.File, len(m.Entities()))
	}

	server := web.NewServer(m, cfg.Server.Mode)

	log.Printf("Starting taskboard API on %s", cfg.Server.Addr)
	if err := server.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
