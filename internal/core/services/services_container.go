package services

import (
	"github.com/SscSPs/moneyfield/internal/core/domain"
	portsrepo "github.com/SscSPs/moneyfield/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/moneyfield/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(catalog *domain.Catalog, repos portsrepo.RepositoryProvider, recordOptions ...RecordServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Record: NewRecordService(repos.RecordRepo, catalog, recordOptions...),
	}
}
