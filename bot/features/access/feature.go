package access

import (
	"github.com/louisuxu-sys/BC-LINE/config"
	"github.com/louisuxu-sys/BC-LINE/service"
)

// Feature handles user ids, redemption and admin code generation
type Feature struct {
	catalog       *config.Catalog
	accessService service.AccessService
}

func New(catalog *config.Catalog, accessService service.AccessService) *Feature {
	return &Feature{
		catalog:       catalog,
		accessService: accessService,
	}
}
