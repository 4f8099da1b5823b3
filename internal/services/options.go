package services

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/get_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/list_rows"
	"github.com/light-bringer/procat-batchedit/internal/app/product/repo"
	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/add_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/cancel_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/edit_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/read_products"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/remove_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/save_changes"
	"github.com/light-bringer/procat-batchedit/internal/configuration"
	"github.com/light-bringer/procat-batchedit/internal/pkg/clock"
	"github.com/light-bringer/procat-batchedit/internal/transport/grpc/grid"
	httpapi "github.com/light-bringer/procat-batchedit/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Source        contracts.ProductSource
	Session       *session.Session

	ReadProducts *read_products.Interactor

	GridHandler  *grid.Handler
	HTTPHandlers *httpapi.Handlers
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, c configuration.Configuration, logger *log.Logger) (*ServiceOptions, error) {
	opts := &ServiceOptions{}

	// 1. Initialize the record source
	switch c.Source {
	case configuration.SourceSpanner:
		spannerClient, err := spanner.NewClient(ctx, c.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.SpannerClient = spannerClient
		opts.Source = repo.NewSpannerSource(spannerClient)

	case configuration.SourceMemory:
		memorySource := repo.NewMemorySource()
		if c.SeedDemo {
			memorySource.Seed(repo.DemoProducts()...)
		}
		opts.Source = memorySource

	default:
		return nil, fmt.Errorf("unknown source %q", c.Source)
	}

	// 2. Create the editing session
	clk := clock.NewRealClock()
	t := tracker.New(opts.Source, tracker.UUIDGenerator{}, clk)
	opts.Session = session.New(t, logger)

	// 3. Create command use cases
	opts.ReadProducts = read_products.NewInteractor(opts.Session)
	addProductUseCase := add_product.NewInteractor(opts.Session)
	editProductUseCase := edit_product.NewInteractor(opts.Session)
	removeProductUseCase := remove_product.NewInteractor(opts.Session)
	saveChangesUseCase := save_changes.NewInteractor(opts.Session)
	cancelChangesUseCase := cancel_changes.NewInteractor(opts.Session)

	// 4. Create query use cases
	listRowsQuery := list_rows.NewQuery(opts.Session, c.PageSize)
	getChangesQuery := get_changes.NewQuery(opts.Session)

	// 5. Create transport handlers
	opts.GridHandler = grid.NewHandler(
		opts.ReadProducts,
		addProductUseCase,
		editProductUseCase,
		removeProductUseCase,
		saveChangesUseCase,
		cancelChangesUseCase,
		listRowsQuery,
		getChangesQuery,
	)
	opts.HTTPHandlers = httpapi.NewHandlers(
		opts.ReadProducts,
		addProductUseCase,
		editProductUseCase,
		removeProductUseCase,
		saveChangesUseCase,
		cancelChangesUseCase,
		listRowsQuery,
		getChangesQuery,
	)

	return opts, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
