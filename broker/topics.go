package broker

// NoteEventType identifies a published note event and doubles as its
// NATS subject.
type NoteEventType string

const (
	NoteCreated NoteEventType = "ambernote.note.created"
	NoteUpdated NoteEventType = "ambernote.note.updated"
	NoteDeleted NoteEventType = "ambernote.note.deleted"
)
