package models

// ItemKind classifies a stored payload.
type ItemKind string

const (
	KindText     ItemKind = "text"
	KindPhoto    ItemKind = "photo"
	KindVideo    ItemKind = "video"
	KindAudio    ItemKind = "audio"
	KindDocument ItemKind = "document"
	KindVoice    ItemKind = "voice"
)

// Item is one persisted message payload. Exactly one of Text or FileID is
// populated, depending on Kind. Items are immutable once written; they go
// away only when the whole folder is cleared.
type Item struct {
	ID       int64
	FolderID int64
	Kind     ItemKind
	Text     string
	FileID   string
	FileName string
	Caption  string
}

// ItemRef is the listing projection: id and kind only, never content.
type ItemRef struct {
	ID   int64    `json:"id"`
	Kind ItemKind `json:"kind"`
}
