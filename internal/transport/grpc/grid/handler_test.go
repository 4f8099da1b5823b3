package grid

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
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
	"github.com/light-bringer/procat-batchedit/internal/pkg/clock"
)

const bufSize = 1024 * 1024

// setupGRPCTest creates an in-memory gRPC server over a seeded memory source.
func setupGRPCTest(t *testing.T) (*Client, *repo.MemorySource, func()) {
	t.Helper()

	src := repo.NewMemorySource()
	chai, _ := domain.NewMoney(18, 1)
	chang, _ := domain.NewMoney(19, 1)
	src.Seed(
		domain.ReconstructProduct("1", "1", domain.ProductFields{ProductName: "Chai", UnitPrice: chai, UnitsInStock: 39}),
		domain.ReconstructProduct("2", "2", domain.ProductFields{ProductName: "Chang", UnitPrice: chang, UnitsInStock: 17}),
	)

	s := session.New(tracker.New(src, tracker.UUIDGenerator{}, clock.NewRealClock()), nil)
	readProducts := read_products.NewInteractor(s)
	_, err := readProducts.Execute(context.Background())
	require.NoError(t, err)

	handler := NewHandler(
		readProducts,
		add_product.NewInteractor(s),
		edit_product.NewInteractor(s),
		remove_product.NewInteractor(s),
		save_changes.NewInteractor(s),
		cancel_changes.NewInteractor(s),
		list_rows.NewQuery(s, 5),
		get_changes.NewQuery(s),
	)

	lis := bufconn.Listen(bufSize)
	server := grpc.NewServer()
	RegisterGridServiceServer(server, handler)

	go func() {
		if err := server.Serve(lis); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	cleanup := func() {
		conn.Close()
		server.Stop()
	}

	return NewClient(conn), src, cleanup
}

func TestGRPC_ListRows(t *testing.T) {
	client, _, cleanup := setupGRPCTest(t)
	defer cleanup()

	ctx := context.Background()

	resp, err := client.Call(ctx, MethodListRows, map[string]interface{}{"sort": "UnitPrice", "desc": true})
	require.NoError(t, err)

	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, float64(5), resp["take"])
	assert.Equal(t, false, resp["hasChanges"])

	rows := resp["data"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "Chang", first["ProductName"])
	assert.Equal(t, "19.00", first["UnitPrice"])
	assert.Equal(t, "clean", first["Style"])

	_, err = client.Call(ctx, MethodListRows, map[string]interface{}{"sort": "Colour"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Call(ctx, MethodListRows, map[string]interface{}{"take": -1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_EditAddRemoveSave(t *testing.T) {
	client, src, cleanup := setupGRPCTest(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("edit with numeric cell", func(t *testing.T) {
		resp, err := client.Call(ctx, MethodEditRow, map[string]interface{}{"Key": "1", "UnitsInStock": 40})
		require.NoError(t, err)
		assert.Equal(t, true, resp["modified"])
	})

	t.Run("invalid edit", func(t *testing.T) {
		_, err := client.Call(ctx, MethodEditRow, map[string]interface{}{"Key": "1", "UnitsInStock": "abc"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("edit requires key", func(t *testing.T) {
		_, err := client.Call(ctx, MethodEditRow, map[string]interface{}{"UnitsInStock": "1"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("edit unknown row", func(t *testing.T) {
		_, err := client.Call(ctx, MethodEditRow, map[string]interface{}{"Key": "nope", "UnitsInStock": "1"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	var key string
	t.Run("add", func(t *testing.T) {
		resp, err := client.Call(ctx, MethodAddRow, map[string]interface{}{
			"ProductName":  "Ikura",
			"UnitPrice":    "31.00",
			"UnitsInStock": "31",
		})
		require.NoError(t, err)
		key = resp["Key"].(string)
		assert.NotEmpty(t, key)
	})

	t.Run("remove", func(t *testing.T) {
		_, err := client.Call(ctx, MethodRemoveRow, map[string]interface{}{"Key": "2"})
		require.NoError(t, err)
	})

	t.Run("changes", func(t *testing.T) {
		resp, err := client.Call(ctx, MethodGetChanges, nil)
		require.NoError(t, err)
		assert.Len(t, resp["created"], 1)
		assert.Len(t, resp["updated"], 1)
		assert.Len(t, resp["deleted"], 1)
		assert.Equal(t, true, resp["hasChanges"])
	})

	t.Run("save", func(t *testing.T) {
		resp, err := client.Call(ctx, MethodSaveChanges, nil)
		require.NoError(t, err)
		assert.Len(t, resp["createdIds"], 1)
		assert.Equal(t, float64(1), resp["updated"])
		assert.Equal(t, float64(1), resp["deleted"])
		assert.Equal(t, 2, src.Len())
		assert.Len(t, src.Events(), 3)
	})
}

func TestGRPC_FailedSaveAndCancel(t *testing.T) {
	client, src, cleanup := setupGRPCTest(t)
	defer cleanup()

	ctx := context.Background()

	_, err := client.Call(ctx, MethodRemoveRow, map[string]interface{}{"Key": "1"})
	require.NoError(t, err)

	src.FailNextApply(errors.New("unavailable"))
	_, err = client.Call(ctx, MethodSaveChanges, nil)
	assert.Equal(t, codes.Unavailable, status.Code(err))

	src.FailNextApply(domain.ErrSourceConflict)
	_, err = client.Call(ctx, MethodSaveChanges, nil)
	assert.Equal(t, codes.Aborted, status.Code(err))

	resp, err := client.Call(ctx, MethodCancelChanges, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1), resp["discarded"])

	resp, err = client.Call(ctx, MethodReload, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(2), resp["loaded"])
}

func TestAccessLogInterceptor(t *testing.T) {
	var lines []string
	l := logRecorder(&lines)

	interceptor := AccessLog(l)
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod(MethodReload)}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		time.Sleep(time.Millisecond)
		return nil, status.Error(codes.NotFound, "x")
	})

	assert.Equal(t, codes.NotFound, status.Code(err))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "/procat.grid.v1.GridService/Reload")
	assert.Contains(t, lines[0], "NotFound")
}
