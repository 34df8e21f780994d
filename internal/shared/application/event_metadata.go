package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/imsachin001/chronosync/internal/shared/domain"
	"github.com/imsachin001/chronosync/pkg/observability"
)

type metadataSetter interface {
	SetMetadata(meta domain.EventMetadata)
}

// EventMetadataFromContext builds event metadata for the acting user,
// carrying over the request correlation ID when one is present.
func EventMetadataFromContext(ctx context.Context, userID uuid.UUID) domain.EventMetadata {
	return domain.EventMetadata{
		CorrelationID: observability.CorrelationIDFromContext(ctx),
		UserID:        userID,
	}
}

// ApplyEventMetadata stamps metadata on every event that accepts it.
func ApplyEventMetadata(events []domain.DomainEvent, meta domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(meta)
		}
	}
}
