package grid

import (
	"fmt"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/list_rows"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
)

// Document keys shared by requests and replies.
const (
	keyKey          = "Key"
	keyProductID    = "ProductID"
	keyProductName  = "ProductName"
	keyUnitPrice    = "UnitPrice"
	keyUnitsInStock = "UnitsInStock"
	keyDiscontinued = "Discontinued"
	keyStyle        = "Style"
)

// formValue reads a raw form value. Numbers are accepted and formatted as typed.
func formValue(m map[string]interface{}, name string) (*string, error) {
	v, ok := m[name]
	if !ok || v == nil {
		return nil, nil
	}
	switch v := v.(type) {
	case string:
		return &v, nil
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a string or a number", name)
	}
}

func boolValue(m map[string]interface{}, name string) (*bool, error) {
	v, ok := m[name]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a boolean", name)
	}
	return &b, nil
}

func intValue(m map[string]interface{}, name string) (int, error) {
	v, ok := m[name]
	if !ok || v == nil {
		return 0, nil
	}
	f, ok := v.(float64)
	if !ok || f < 0 || f != float64(int(f)) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a non-negative integer", name)
	}
	return int(f), nil
}

func stringValue(m map[string]interface{}, name string) (string, error) {
	v, ok := m[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	return s, nil
}

// structToPatch reads the edited cells of a request.
func structToPatch(m map[string]interface{}) (validation.Patch, error) {
	var patch validation.Patch
	var err error

	if patch.ProductName, err = formValue(m, keyProductName); err != nil {
		return patch, err
	}
	if patch.UnitPrice, err = formValue(m, keyUnitPrice); err != nil {
		return patch, err
	}
	if patch.UnitsInStock, err = formValue(m, keyUnitsInStock); err != nil {
		return patch, err
	}
	if patch.Discontinued, err = boolValue(m, keyDiscontinued); err != nil {
		return patch, err
	}
	return patch, nil
}

// structToForm reads a complete new row; missing cells are empty.
func structToForm(m map[string]interface{}) (validation.Form, error) {
	patch, err := structToPatch(m)
	if err != nil {
		return validation.Form{}, err
	}
	return validation.Form{}.Apply(patch), nil
}

func structToListRequest(m map[string]interface{}) (*list_rows.Request, error) {
	req := &list_rows.Request{}
	var err error

	if req.Skip, err = intValue(m, "skip"); err != nil {
		return nil, err
	}
	if req.Take, err = intValue(m, "take"); err != nil {
		return nil, err
	}
	if req.SortBy, err = stringValue(m, "sort"); err != nil {
		return nil, err
	}
	if desc, err := boolValue(m, "desc"); err != nil {
		return nil, err
	} else if desc != nil {
		req.SortDesc = *desc
	}
	if changed, err := boolValue(m, "changedOnly"); err != nil {
		return nil, err
	} else if changed != nil {
		req.ChangedOnly = *changed
	}
	if filter, ok := m["filter"]; ok && filter != nil {
		f, ok := filter.(map[string]interface{})
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "filter must be an object")
		}
		req.Filter = f
	}
	return req, nil
}

func rowToMap(row *contracts.RowDTO) map[string]interface{} {
	return map[string]interface{}{
		keyKey:          row.Key,
		keyProductID:    row.ProductID,
		keyProductName:  row.ProductName,
		keyUnitPrice:    row.UnitPrice,
		keyUnitsInStock: row.UnitsInStock,
		keyDiscontinued: row.Discontinued,
		keyStyle:        string(row.Style),
	}
}

func rowsToList(rows []*contracts.RowDTO) []interface{} {
	out := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToMap(row))
	}
	return out
}

func newStruct(m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode reply: %v", err))
	}
	return s, nil
}

func viewToStruct(view *contracts.ViewResult) (*structpb.Struct, error) {
	return newStruct(map[string]interface{}{
		"data":       rowsToList(view.Rows),
		"total":      view.Total,
		"skip":       view.Skip,
		"take":       view.Take,
		"hasChanges": view.HasChanges,
	})
}

func changesToStruct(changes *contracts.ChangesResult) (*structpb.Struct, error) {
	return newStruct(map[string]interface{}{
		"created":    rowsToList(changes.Created),
		"updated":    rowsToList(changes.Updated),
		"deleted":    rowsToList(changes.Deleted),
		"hasChanges": changes.HasChanges,
	})
}

func commitResultToStruct(result *tracker.CommitResult) (*structpb.Struct, error) {
	ids := make([]interface{}, 0, len(result.CreatedIDs))
	for _, id := range result.CreatedIDs {
		ids = append(ids, id)
	}
	return newStruct(map[string]interface{}{
		"createdIds": ids,
		"updated":    result.Updated,
		"deleted":    result.Deleted,
	})
}
