// Package http exposes the batch-edit grid as a JSON API.
//
//	GET    /v1/rows                 page of the working set
//	POST   /v1/rows                 add a row
//	POST   /v1/rows:find            page with a filter document
//	POST   /v1/rows:reload          read the products again
//	PATCH  /v1/rows/{key}           edit cells of a row
//	DELETE /v1/rows/{key}           remove a row
//	GET    /v1/changes              pending changes
//	POST   /v1/changes:save         save pending changes
//	POST   /v1/changes:cancel       discard pending changes
package http

import (
	"github.com/fulldump/box"
)

// Build mounts the API on a new box.
func Build(h *Handlers) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
	)

	v1.Resource("/rows").
		WithActions(
			box.Get(h.list).WithName("listRows"),
			box.Post(h.add).WithName("addRow"),
			box.ActionPost(h.find).WithName("find"),
			box.ActionPost(h.reload).WithName("reload"),
		)

	v1.Resource("/rows/{key}").
		WithActions(
			box.Patch(h.edit).WithName("editRow"),
			box.Delete(h.remove).WithName("removeRow"),
		)

	v1.Resource("/changes").
		WithActions(
			box.Get(h.changes).WithName("getChanges"),
			box.ActionPost(h.save).WithName("save"),
			box.ActionPost(h.cancel).WithName("cancel"),
		)

	return b
}
