package bootstrap

import (
	"flag"
	"fmt"

	"github.com/datapoolml/outreach-crm/internal/config"
	"github.com/datapoolml/outreach-crm/internal/configload"
)

// LoadConfig loads configuration. Uses the -config flag with the
// CONFIG_PATH fallback.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", configload.Path("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
