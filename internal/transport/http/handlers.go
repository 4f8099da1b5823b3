package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fulldump/box"

	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/get_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/list_rows"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/add_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/cancel_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/edit_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/read_products"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/remove_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/save_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
)

// Handlers exposes the grid use cases over HTTP.
type Handlers struct {
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

// NewHandlers creates the HTTP handlers.
func NewHandlers(
	readProducts *read_products.Interactor,
	addProduct *add_product.Interactor,
	editProduct *edit_product.Interactor,
	removeProduct *remove_product.Interactor,
	saveChanges *save_changes.Interactor,
	cancelChanges *cancel_changes.Interactor,
	listRows *list_rows.Query,
	getChanges *get_changes.Query,
) *Handlers {
	return &Handlers{
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

// list serves GET /v1/rows?skip=&take=&sort=&desc=&changed=&filter=
func (h *Handlers) list(ctx context.Context, r *http.Request) (*ViewJSON, error) {
	req, err := findFromQuery(r)
	if err != nil {
		return nil, err
	}
	return h.find(ctx, req)
}

func (h *Handlers) find(ctx context.Context, in *FindInput) (*ViewJSON, error) {
	view, err := h.listRows.Execute(ctx, &list_rows.Request{
		ChangedOnly: in.ChangedOnly,
		Filter:      in.Filter,
		SortBy:      in.Sort,
		SortDesc:    in.Desc,
		Skip:        in.Skip,
		Take:        in.Take,
	})
	if err != nil {
		return nil, err
	}

	return &ViewJSON{
		Data:       rowsJSON(view.Rows),
		Total:      view.Total,
		Skip:       view.Skip,
		Take:       view.Take,
		HasChanges: view.HasChanges,
	}, nil
}

func (h *Handlers) add(ctx context.Context, in *RowInput) (map[string]string, error) {
	key, err := h.addProduct.Execute(ctx, &add_product.Request{
		Form: validation.Form{}.Apply(in.patch()),
	})
	if err != nil {
		return nil, err
	}

	box.GetResponse(ctx).WriteHeader(http.StatusCreated)
	return map[string]string{"Key": key}, nil
}

func (h *Handlers) edit(ctx context.Context, in *RowInput) (map[string]bool, error) {
	modified, err := h.editProduct.Execute(ctx, &edit_product.Request{
		Key:   box.GetUrlParameter(ctx, "key"),
		Patch: in.patch(),
	})
	if err != nil {
		return nil, err
	}

	return map[string]bool{"modified": modified}, nil
}

func (h *Handlers) remove(ctx context.Context) error {
	err := h.removeProduct.Execute(ctx, &remove_product.Request{
		Key: box.GetUrlParameter(ctx, "key"),
	})
	if err != nil {
		return err
	}

	box.GetResponse(ctx).WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handlers) reload(ctx context.Context) (map[string]int, error) {
	loaded, err := h.readProducts.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int{"loaded": loaded}, nil
}

func (h *Handlers) changes(ctx context.Context) (*ChangesJSON, error) {
	changes, err := h.getChanges.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return &ChangesJSON{
		Created:    rowsJSON(changes.Created),
		Updated:    rowsJSON(changes.Updated),
		Deleted:    rowsJSON(changes.Deleted),
		HasChanges: changes.HasChanges,
	}, nil
}

func (h *Handlers) save(ctx context.Context) (*SaveJSON, error) {
	result, err := h.saveChanges.Execute(ctx)
	if err != nil {
		return nil, err
	}

	ids := result.CreatedIDs
	if ids == nil {
		ids = []string{}
	}
	return &SaveJSON{
		CreatedIDs: ids,
		Updated:    result.Updated,
		Deleted:    result.Deleted,
	}, nil
}

func (h *Handlers) cancel(ctx context.Context) (map[string]int, error) {
	discarded, err := h.cancelChanges.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int{"discarded": discarded}, nil
}

func findFromQuery(r *http.Request) (*FindInput, error) {
	q := r.URL.Query()
	in := &FindInput{Sort: q.Get("sort")}

	var err error
	if in.Skip, err = intParam(q.Get("skip")); err != nil {
		return nil, fmt.Errorf("skip: %w", err)
	}
	if in.Take, err = intParam(q.Get("take")); err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	if in.Desc, err = boolParam(q.Get("desc")); err != nil {
		return nil, fmt.Errorf("desc: %w", err)
	}
	if in.ChangedOnly, err = boolParam(q.Get("changed")); err != nil {
		return nil, fmt.Errorf("changed: %w", err)
	}
	if filter := q.Get("filter"); filter != "" {
		if err := json.Unmarshal([]byte(filter), &in.Filter); err != nil {
			return nil, fmt.Errorf("filter: %w: %w", ErrBadRequest, err)
		}
	}
	return in, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrBadRequest, s)
	}
	return n, nil
}

func boolParam(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrBadRequest, s)
	}
	return b, nil
}
