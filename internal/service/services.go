package service

import (
	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/store"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	BookService    BookService
	ContentService ContentService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()

	userService := NewUserValidationService().Wrap(
		NewUserService(storages.UserRepository, ids, cfg.App, logger),
	)
	bookService := NewBookValidationService().Wrap(
		NewBookService(storages.BookRepository, storages.UserRepository, storages.ContentStorage, ids, logger),
	)

	return &Services{
		AuthService:    NewAuthService(userService, storages.UserRepository, cfg.App, logger),
		UserService:    userService,
		BookService:    bookService,
		ContentService: NewContentService(storages.BookRepository, storages.ContentStorage, ids, logger),
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}
}
