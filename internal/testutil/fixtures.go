package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-batchedit/internal/models/m_outbox"
	"github.com/light-bringer/procat-batchedit/internal/models/m_product"
)

// CreateTestProduct inserts a product directly and returns its id.
func CreateTestProduct(t *testing.T, client *spanner.Client, name string, unitsInStock int64) string {
	t.Helper()

	productID := uuid.New().String()

	mutation := m_product.NewModel().InsertMut(&m_product.Data{
		ProductID:            productID,
		ProductName:          name,
		UnitPriceNumerator:   1800,
		UnitPriceDenominator: 100,
		UnitsInStock:         unitsInStock,
	})
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create test product")

	return productID
}

// GetProductByID reads a stored product for verification.
func GetProductByID(t *testing.T, client *spanner.Client, productID string) *m_product.Data {
	t.Helper()

	row, err := client.Single().ReadRow(context.Background(), m_product.TableName, spanner.Key{productID}, m_product.Columns)
	require.NoError(t, err, "failed to get product by id")

	var data m_product.Data
	require.NoError(t, row.ToStruct(&data), "failed to parse product data")

	return &data
}

// AssertOutboxEventCount verifies the number of outbox events of a type.
func AssertOutboxEventCount(t *testing.T, client *spanner.Client, eventType string, expectedCount int) {
	t.Helper()

	stmt := spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM outbox_events WHERE event_type = @eventType AND status = @status",
		Params: map[string]interface{}{"eventType": eventType, "status": m_outbox.StatusPending},
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query outbox event count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected %s outbox event count", eventType)
}
