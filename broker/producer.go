package broker

import (
	"encoding/json"
	"log"
	"time"

	"ambernote/config"
	"ambernote/models"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

var conn *nats.Conn

// InitProducer connects to NATS. The broker is optional: when the
// connection fails the server keeps running and publication becomes a
// no-op, so the audit transaction is never coupled to broker health.
func InitProducer(cfg config.Config) error {
	var err error
	conn, err = nats.Connect(cfg.NatsURL,
		nats.Name("ambernote"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}
	log.Printf("NATS producer connected to %s", cfg.NatsURL)
	return nil
}

// noteEvent is the wire payload for published note events.
type noteEvent struct {
	Event       string    `json:"event"`
	ActorID     string    `json:"actor_id"`
	NoteID      string    `json:"note_id"`
	NotespaceID string    `json:"notespace_id"`
	Revision    int       `json:"revision"`
	Timestamp   time.Time `json:"timestamp"`
}

// PublishNoteEvent publishes a committed note mutation. Fire and
// forget: publication happens after the transaction commits and a
// failure only logs.
func PublishNoteEvent(event NoteEventType, actorID uuid.UUID, note models.Note) {
	if conn == nil {
		return
	}

	payload := noteEvent{
		Event:       string(event),
		ActorID:     actorID.String(),
		NoteID:      note.ID.String(),
		NotespaceID: note.NotespaceID.String(),
		Revision:    note.Revision,
		Timestamp:   time.Now().UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal note event: %v", err)
		return
	}

	if err := conn.Publish(string(event), data); err != nil {
		log.Printf("Failed to publish note event %s: %v", event, err)
	}
}

func CloseProducer() {
	if conn != nil {
		if err := conn.Drain(); err != nil {
			log.Printf("Failed to drain NATS connection: %v", err)
		}
		conn = nil
	}
}
