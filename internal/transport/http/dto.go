package http

import (
	"encoding/json"
	"fmt"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
)

// FormValue is a raw cell value. Clients may send it as a string or a number.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: expected a string or a number, got %s", ErrBadRequest, data)
	}
	*v = FormValue(n.String())
	return nil
}

func (v *FormValue) ptr() *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

// RowInput carries the cells of a new or edited row. Absent cells stay untouched on edit.
type RowInput struct {
	ProductName  *FormValue `json:"ProductName"`
	UnitPrice    *FormValue `json:"UnitPrice"`
	UnitsInStock *FormValue `json:"UnitsInStock"`
	Discontinued *bool      `json:"Discontinued"`
}

func (in *RowInput) patch() validation.Patch {
	return validation.Patch{
		ProductName:  in.ProductName.ptr(),
		UnitPrice:    in.UnitPrice.ptr(),
		UnitsInStock: in.UnitsInStock.ptr(),
		Discontinued: in.Discontinued,
	}
}

// FindInput selects a page of rows.
type FindInput struct {
	Filter      map[string]interface{} `json:"filter"`
	ChangedOnly bool                   `json:"changedOnly"`
	Sort        string                 `json:"sort"`
	Desc        bool                   `json:"desc"`
	Skip        int                    `json:"skip"`
	Take        int                    `json:"take"`
}

// RowJSON is a grid row on the wire.
type RowJSON struct {
	Key          string `json:"Key"`
	ProductID    string `json:"ProductID"`
	ProductName  string `json:"ProductName"`
	UnitPrice    string `json:"UnitPrice"`
	UnitsInStock int64  `json:"UnitsInStock"`
	Discontinued bool   `json:"Discontinued"`
	Style        string `json:"Style"`
}

func rowsJSON(rows []*contracts.RowDTO) []RowJSON {
	out := make([]RowJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowJSON{
			Key:          row.Key,
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			UnitPrice:    row.UnitPrice,
			UnitsInStock: row.UnitsInStock,
			Discontinued: row.Discontinued,
			Style:        string(row.Style),
		})
	}
	return out
}

// ViewJSON is one page of the grid.
type ViewJSON struct {
	Data       []RowJSON `json:"data"`
	Total      int       `json:"total"`
	Skip       int       `json:"skip"`
	Take       int       `json:"take"`
	HasChanges bool      `json:"hasChanges"`
}

// ChangesJSON lists pending changes per bucket.
type ChangesJSON struct {
	Created    []RowJSON `json:"created"`
	Updated    []RowJSON `json:"updated"`
	Deleted    []RowJSON `json:"deleted"`
	HasChanges bool      `json:"hasChanges"`
}

// SaveJSON reports a successful save.
type SaveJSON struct {
	CreatedIDs []string `json:"createdIds"`
	Updated    int      `json:"updated"`
	Deleted    int      `json:"deleted"`
}
