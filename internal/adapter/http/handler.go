package http

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/app"
)

// Services bundles the application services exposed over HTTP.
type Services struct {
	Directory *app.DirectoryService
	Catalog   *app.CatalogService
	Sessions  *app.SessionService
	Sales     *app.SaleService
	Sync      *app.SyncService
}

// Register adds all API routes to the Huma API.
func Register(api huma.API, svcs Services) {
	registerDirectoryRoutes(api, svcs.Directory)
	registerCatalogRoutes(api, svcs.Catalog)
	registerSessionRoutes(api, svcs.Sessions)
	registerSaleRoutes(api, svcs.Sales)
	registerSyncRoutes(api, svcs.Sync)
}

const wireTimeFormat = "2006-01-02T15:04:05Z"

func fmtWireTime(t time.Time) string {
	return t.UTC().Format(wireTimeFormat)
}

func fmtWireTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtWireTime(*t)
	return &s
}

// parseMoney parses a decimal wire string, rejecting malformed input before
// it reaches the services.
func parseMoney(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.Error400BadRequest(field + " is not a valid decimal amount")
	}
	return d, nil
}
