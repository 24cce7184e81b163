package slots

import (
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/service"
)

// Feature drives the slot advisor flow: game, room, total bet, score rate
type Feature struct {
	catalog       *config.Catalog
	slotService   service.SlotService
	accessService service.AccessService
}

func New(catalog *config.Catalog, slotService service.SlotService, accessService service.AccessService) *Feature {
	return &Feature{
		catalog:       catalog,
		slotService:   slotService,
		accessService: accessService,
	}
}
