package app

import (
	"context"
	"fmt"
	"sync"

	accessHTTP "github.com/allisson/accessvault/internal/access/http"
	accessRepository "github.com/allisson/accessvault/internal/access/repository"
	accessService "github.com/allisson/accessvault/internal/access/service"
	accessUseCase "github.com/allisson/accessvault/internal/access/usecase"
	"github.com/allisson/accessvault/internal/database"
)

type accessComponents struct {
	secretService           accessService.SecretService
	idService               accessService.IDService
	accessCredentialRepo    accessUseCase.AccessCredentialRepository
	accessCredentialUseCase accessUseCase.AccessCredentialUseCase
	accessCredentialHandler *accessHTTP.AccessCredentialHandler

	secretServiceInit           sync.Once
	idServiceInit               sync.Once
	accessCredentialRepoInit    sync.Once
	accessCredentialUseCaseInit sync.Once
	accessCredentialHandlerInit sync.Once
}

// SecretService returns the credential secret generator.
func (c *Container) SecretService() accessService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = accessService.NewSecretService()
	})
	return c.secretService
}

// IDService returns the public id generator.
func (c *Container) IDService() accessService.IDService {
	c.idServiceInit.Do(func() {
		c.idService = accessService.NewIDService()
	})
	return c.idService
}

// AccessCredentialRepository returns the repository matching the configured driver.
func (c *Container) AccessCredentialRepository() (accessUseCase.AccessCredentialRepository, error) {
	c.accessCredentialRepoInit.Do(func() {
		repo, err := c.initAccessCredentialRepository()
		c.setResult("accessCredentialRepo", err)
		c.accessCredentialRepo = repo
	})
	if err := c.storedError("accessCredentialRepo"); err != nil {
		return nil, err
	}
	return c.accessCredentialRepo, nil
}

// AccessCredentialUseCase returns the access credential issuer, wrapped with metrics.
func (c *Container) AccessCredentialUseCase() (accessUseCase.AccessCredentialUseCase, error) {
	c.accessCredentialUseCaseInit.Do(func() {
		useCase, err := c.initAccessCredentialUseCase()
		c.setResult("accessCredentialUseCase", err)
		c.accessCredentialUseCase = useCase
	})
	if err := c.storedError("accessCredentialUseCase"); err != nil {
		return nil, err
	}
	return c.accessCredentialUseCase, nil
}

// AccessCredentialHandler returns the HTTP handler for access credentials.
func (c *Container) AccessCredentialHandler() (*accessHTTP.AccessCredentialHandler, error) {
	c.accessCredentialHandlerInit.Do(func() {
		useCase, err := c.AccessCredentialUseCase()
		if err != nil {
			c.setResult("accessCredentialHandler", err)
			return
		}
		c.accessCredentialHandler = accessHTTP.NewAccessCredentialHandler(useCase, c.IDService(), c.Logger())
	})
	if err := c.storedError("accessCredentialHandler"); err != nil {
		return nil, err
	}
	return c.accessCredentialHandler, nil
}

func (c *Container) initAccessCredentialRepository() (accessUseCase.AccessCredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for access credential repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return accessRepository.NewMySQLAccessCredentialRepository(db), nil
	case database.DriverPostgres:
		return accessRepository.NewPostgreSQLAccessCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAccessCredentialUseCase() (accessUseCase.AccessCredentialUseCase, error) {
	repo, err := c.AccessCredentialRepository()
	if err != nil {
		return nil, err
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, err
	}

	vault, err := c.VaultUseCase(context.Background())
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	useCase := accessUseCase.NewAccessCredentialUseCase(
		repo,
		txManager,
		vault,
		c.SecretService(),
		c.IDService(),
		accessUseCase.DefaultRetryPolicy(c.config.Secrets.CloudKMSMaxRetries),
		c.Logger(),
	)
	return accessUseCase.NewAccessCredentialUseCaseWithMetrics(useCase, businessMetrics), nil
}
