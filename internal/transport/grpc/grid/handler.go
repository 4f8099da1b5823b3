package grid

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/get_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/list_rows"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/add_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/cancel_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/edit_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/read_products"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/remove_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/save_changes"
)

// Handler implements GridServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	readProducts  *read_products.Interactor
	addProduct    *add_product.Interactor
	editProduct   *edit_product.Interactor
	removeProduct *remove_product.Interactor
	saveChanges   *save_changes.Interactor
	cancelChanges *cancel_changes.Interactor

	// Queries
	listRows   *list_rows.Query
	getChanges *get_changes.Query
}

var _ GridServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC grid handler.
func NewHandler(
	readProducts *read_products.Interactor,
	addProduct *add_product.Interactor,
	editProduct *edit_product.Interactor,
	removeProduct *remove_product.Interactor,
	saveChanges *save_changes.Interactor,
	cancelChanges *cancel_changes.Interactor,
	listRows *list_rows.Query,
	getChanges *get_changes.Query,
) *Handler {
	return &Handler{
		readProducts:  readProducts,
		addProduct:    addProduct,
		editProduct:   editProduct,
		removeProduct: removeProduct,
		saveChanges:   saveChanges,
		cancelChanges: cancelChanges,
		listRows:      listRows,
		getChanges:    getChanges,
	}
}

// ListRows returns one page of the working set.
func (h *Handler) ListRows(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := structToListRequest(in.AsMap())
	if err != nil {
		return nil, err
	}

	view, err := h.listRows.Execute(ctx, req)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return viewToStruct(view)
}

// AddRow adds a new row and returns its key.
func (h *Handler) AddRow(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	// 1. Map document → application request
	form, err := structToForm(in.AsMap())
	if err != nil {
		return nil, err
	}

	// 2. Call usecase
	key, err := h.addProduct.Execute(ctx, &add_product.Request{Form: form})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	// 3. Return response
	return newStruct(map[string]interface{}{keyKey: key})
}

// EditRow applies edited cells to a row.
func (h *Handler) EditRow(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	m := in.AsMap()

	key, err := stringValue(m, keyKey)
	if err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	patch, err := structToPatch(m)
	if err != nil {
		return nil, err
	}

	modified, err := h.editProduct.Execute(ctx, &edit_product.Request{Key: key, Patch: patch})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return newStruct(map[string]interface{}{"modified": modified})
}

// RemoveRow marks a row for deletion.
func (h *Handler) RemoveRow(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	key, err := stringValue(in.AsMap(), keyKey)
	if err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	if err := h.removeProduct.Execute(ctx, &remove_product.Request{Key: key}); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return newStruct(map[string]interface{}{keyKey: key})
}

// GetChanges lists the pending changes.
func (h *Handler) GetChanges(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	changes, err := h.getChanges.Execute(ctx)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return changesToStruct(changes)
}

// SaveChanges commits all pending changes.
func (h *Handler) SaveChanges(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	result, err := h.saveChanges.Execute(ctx)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return commitResultToStruct(result)
}

// CancelChanges discards all pending changes.
func (h *Handler) CancelChanges(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	discarded, err := h.cancelChanges.Execute(ctx)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return newStruct(map[string]interface{}{"discarded": discarded})
}

// Reload reads the products again, discarding pending changes.
func (h *Handler) Reload(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	loaded, err := h.readProducts.Execute(ctx)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return newStruct(map[string]interface{}{"loaded": loaded})
}

// AccessLog logs every unary call with its status code and duration.
func AccessLog(l *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		now := time.Now()
		resp, err := handler(ctx, req)
		l.Println(now.UTC().Format(time.RFC3339Nano), info.FullMethod, status.Code(err), time.Since(now))
		return resp, err
	}
}
