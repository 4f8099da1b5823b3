package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/models/m_product"
	"github.com/light-bringer/procat-batchedit/internal/pkg/committer"
)

// SpannerSource implements ProductSource on Cloud Spanner.
// A batch and its outbox events are written in a single transaction.
type SpannerSource struct {
	products  *ProductRepo
	outbox    contracts.OutboxRepository
	committer *committer.Committer
}

// NewSpannerSource creates a new SpannerSource.
func NewSpannerSource(client *spanner.Client) *SpannerSource {
	return &SpannerSource{
		products:  NewProductRepo(client),
		outbox:    NewOutboxRepo(),
		committer: committer.NewCommitter(client),
	}
}

// Fetch returns every stored product.
func (s *SpannerSource) Fetch(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListAll(ctx)
}

// Apply writes the batch atomically. Updated and deleted products must still exist.
func (s *SpannerSource) Apply(ctx context.Context, batch *contracts.ChangeBatch) error {
	plan, err := s.buildPlan(batch)
	if err != nil {
		return err
	}

	check := committer.ExistenceCheck{
		Table:     m_product.TableName,
		KeyColumn: m_product.ProductID,
		Keys:      existingIDs(batch),
	}

	err = s.committer.ApplyWithExistenceCheck(ctx, check, plan)
	if errors.Is(err, committer.ErrRowsMissing) {
		return fmt.Errorf("%w: %w", domain.ErrSourceConflict, err)
	}
	// an inserted id collided with an existing row
	if spanner.ErrCode(err) == codes.AlreadyExists {
		return fmt.Errorf("%w: %w", domain.ErrSourceConflict, err)
	}
	return err
}

func (s *SpannerSource) buildPlan(batch *contracts.ChangeBatch) (*committer.CommitPlan, error) {
	plan := committer.NewPlan()

	for _, p := range batch.Created {
		mut, err := s.products.InsertMut(p)
		if err != nil {
			return nil, err
		}
		plan.Add(mut)
	}

	for _, p := range batch.Updated {
		mut, err := s.products.UpdateMut(p)
		if err != nil {
			return nil, err
		}
		plan.Add(mut)
	}

	for _, p := range batch.Deleted {
		plan.Add(s.products.DeleteMut(p))
	}

	for _, event := range batch.Events {
		outboxEvent, err := s.outbox.EnrichEvent(event)
		if err != nil {
			return nil, err
		}
		plan.Add(s.outbox.InsertMut(outboxEvent))
	}

	return plan, nil
}

func existingIDs(batch *contracts.ChangeBatch) []string {
	ids := make([]string, 0, len(batch.Updated)+len(batch.Deleted))
	for _, p := range batch.Updated {
		ids = append(ids, p.ID())
	}
	for _, p := range batch.Deleted {
		ids = append(ids, p.ID())
	}
	return ids
}
