package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"masterdata-monitor/core/config"
	"masterdata-monitor/core/logger"
	"masterdata-monitor/core/probe"
	"masterdata-monitor/core/state"
	"masterdata-monitor/feature/region"
)

// Resolves the master database asset of one region without touching the state files.
func main() {
	code := flag.String("region", "JP", "region code")
	version := flag.Int("version", -1, "version to locate, defaults to the stored one")
	discover := flag.Bool("discover", false, "run discovery before locating")
	flag.Parse()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	cfg.Log.Level = "debug"
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	adapter, err := region.New(strings.ToUpper(*code), probe.NewClient(cfg.Probe), logg)
	if err != nil {
		log.Fatal(err)
	}
	settings := adapter.Settings()
	ctx := context.Background()

	st := settings.Initial()
	if versions, err := state.NewStore(cfg.State).LoadVersions(); err == nil {
		if stored, ok := versions[settings.Code]; ok {
			st = stored
		}
	}
	if *version >= 0 {
		st.Version = *version
	}

	fmt.Printf("=== %s: starting from %s ===\n", settings.Code, settings.FormatVersion(st.Version))
	if *discover {
		next, err := adapter.Discover(ctx, st)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Discovered version %s (cdn %q)\n", settings.FormatVersion(next.Version), next.CDNAddr)
		st = next
	}

	fmt.Println("\n=== Locating master database ===")
	asset, err := adapter.Locate(ctx, st)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("URL:  %s\nHash: %s\n", asset.URL, asset.Hash)
	if st.Hash == asset.Hash {
		fmt.Println("Hash unchanged since the last download")
	}
}
