package baccarat

import (
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/service"
)

// Feature drives the provider, room and prediction flow
type Feature struct {
	catalog           *config.Catalog
	predictionService service.PredictionService
	accessService     service.AccessService
}

func New(catalog *config.Catalog, predictionService service.PredictionService, accessService service.AccessService) *Feature {
	return &Feature{
		catalog:           catalog,
		predictionService: predictionService,
		accessService:     accessService,
	}
}
