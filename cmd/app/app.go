package main

import (
	"os"

	"github.com/DRSN-tech/pos-terminal/internal/app"
	config "github.com/DRSN-tech/pos-terminal/internal/cfg"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
)

//	@title						POS terminal API
//	@version					1.0
//	@description				Register, cart and sale submission for the point of sale.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
