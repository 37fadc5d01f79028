package container

import (
	"context"
	"database/sql"

	"github.com/gabapdb/sourcing-pettycash/internal/approval"
	"github.com/gabapdb/sourcing-pettycash/internal/clients"
	"github.com/gabapdb/sourcing-pettycash/internal/config"
	"github.com/gabapdb/sourcing-pettycash/internal/dropdowns"
	"github.com/gabapdb/sourcing-pettycash/internal/integrations/googlesheets"
	"github.com/gabapdb/sourcing-pettycash/internal/items"
	"github.com/gabapdb/sourcing-pettycash/internal/lists"
	"github.com/gabapdb/sourcing-pettycash/internal/projects"
	"github.com/gabapdb/sourcing-pettycash/internal/reports"
	"github.com/gabapdb/sourcing-pettycash/internal/repository"
	"github.com/gabapdb/sourcing-pettycash/internal/users"
	"github.com/gabapdb/sourcing-pettycash/internal/watch"
	"github.com/gabapdb/sourcing-pettycash/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository      *repository.Repository
	LoginHandler    *security.LoginHandler
	ClientHandler   *clients.Handler
	ProjectHandler  *projects.Handler
	ListHandler     *lists.Handler
	ItemHandler     *items.Handler
	ApprovalHandler *approval.Handler
	DropdownHandler *dropdowns.Handler
	ReportHandler   *reports.Handler
	SheetsHandler   *googlesheets.Handler
	UserHandler     *users.UsersHandler
}

// NewAppContainer wires repositories, services and handlers. The sheets
// handler is nil when Google credentials are not configured; route setup
// skips it then.
func NewAppContainer(db *sql.DB, cfg *config.Config, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	itemRepo := items.NewRepository(repo)
	itemHub := watch.NewHub[[]items.LineItem]()
	itemService := items.NewService(itemRepo, itemHub, log)

	approvalService := approval.NewService(repo, itemRepo, itemService, log)
	itemHandler := items.NewHandler(itemService, approvalService)

	dropdownHub := watch.NewHub[[]string]()
	dropdownService := dropdowns.NewService(dropdowns.NewRepository(repo), cfg, dropdownHub, log)

	c := &Container{
		Repository:      repo,
		LoginHandler:    security.NewLoginHandler(repo),
		ClientHandler:   clients.NewHandler(clients.NewRepository(repo)),
		ProjectHandler:  projects.NewHandler(projects.NewRepository(repo)),
		ListHandler:     lists.NewHandler(lists.NewRepository(repo)),
		ItemHandler:     itemHandler,
		ApprovalHandler: approval.NewHandler(approvalService),
		DropdownHandler: dropdowns.NewHandler(dropdownService),
		ReportHandler:   reports.NewHandler(itemService),
		UserHandler:     users.NewHandler(users.NewRepository(repo)),
	}

	sheetsService, err := googlesheets.NewSheetsService(context.Background())
	if err != nil {
		log.Warn("google sheets export disabled", zap.Error(err))
		return c
	}
	writer := googlesheets.NewSheetWriter(sheetsService)
	c.SheetsHandler = googlesheets.NewHandler(googlesheets.NewExportService(writer, itemService, log))

	return c
}
