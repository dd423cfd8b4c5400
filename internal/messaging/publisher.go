package messaging

import (
	"context"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

// Subject prefixes of published placements
const (
	SubjectOwned   = "placements.owned"
	SubjectUnowned = "placements.unowned"
	SubjectAll     = "placements.>"
)

// Subject returns the subject a placement record is published on
func Subject(record domain.ValidatedPlacementRecord) string {
	if record.PlacedByOwner {
		return SubjectOwned
	}
	return SubjectUnowned
}

// Publisher defines the interface for publishing placements to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishPlacements publishes one message per record, de-duplicated by the record's event key
	PublishPlacements(ctx context.Context, records []domain.ValidatedPlacementRecord) error
	// Close closes the connection
	Close()
}
