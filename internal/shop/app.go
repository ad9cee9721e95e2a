package shop

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/catalog"
	"github.com/shopterm/shopterm/internal/core/config"
	"github.com/shopterm/shopterm/internal/store/flatfile"
)

// App is the central entry point for all storefront operations. Commands
// consume App instead of cherry-picking raw dependencies.
type App struct {
	Router    *Router
	Accounts  *AccountCoordinator
	Catalog   *catalog.Catalog
	Reporting *ReportingCoordinator
	Config    *config.Config
}

// NewApp wires the flat-file stores and the four subsystem coordinators
// from the configuration, then loads the account and product state.
func NewApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	var (
		accountStore = flatfile.NewAccountStore(cfg.AccountsPath(), logger)
		productStore = flatfile.NewProductStore(cfg.ProductsPath(), logger)
		salesLog     = flatfile.NewSalesLog(cfg.SalesPath(), logger)
		messageStore = flatfile.NewMessageStore(cfg.MessagesPath(), logger)
		paymentLog   = flatfile.NewPaymentLog(cfg.PaymentsPath(), logger)
		reportStore  = flatfile.NewReportStore(cfg.DailyReportsPath(), cfg.MonthlyReportsPath(), logger)
	)

	cat := catalog.New(productStore, logger)
	if err := cat.Load(ctx); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	payment := NewPaymentCoordinator(accountStore, paymentLog, logger)
	accounts := NewAccountCoordinator(accountStore, payment, logger)
	if err := accounts.Load(ctx); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	editor := NewEditorCoordinator(cat, logger)
	store := NewStoreCoordinator(cat, salesLog, editor, logger)
	messaging := NewMessagingCoordinator(messageStore, logger)
	reporting := NewReportingCoordinator(reportStore, salesLog, logger)

	return &App{
		Router:    NewRouter(accounts, store, messaging, reporting, logger),
		Accounts:  accounts,
		Catalog:   cat,
		Reporting: reporting,
		Config:    cfg,
	}, nil
}
