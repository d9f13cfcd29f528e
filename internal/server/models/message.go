package models

// PhotoSize is one resolution variant of an inbound photo. Chat platforms
// usually deliver several; the largest one is the canonical payload.
type PhotoSize struct {
	FileID string `json:"file_id"`
	Size   int64  `json:"size"`
}

// Attachment is a single media payload carried by a message. FileID is an
// opaque reference owned by the chat platform; the vault never sees bytes.
type Attachment struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
}

// Contact is the payload of a contact-share exchange.
type Contact struct {
	Phone string `json:"phone"`
	Pin   string `json:"pin,omitempty"`
}

// IncomingMessage is the normalized unit of work delivered by the transport
// binding. At most one payload group is expected to be set; classification
// resolves conflicts by fixed priority.
type IncomingMessage struct {
	SenderID     string      `json:"sender_id"`
	Text         string      `json:"text,omitempty"`
	Photo        []PhotoSize `json:"photo,omitempty"`
	Video        *Attachment `json:"video,omitempty"`
	Audio        *Attachment `json:"audio,omitempty"`
	Document     *Attachment `json:"document,omitempty"`
	Voice        *Attachment `json:"voice,omitempty"`
	Caption      string      `json:"caption,omitempty"`
	Contact      *Contact    `json:"contact,omitempty"`
	CallbackData string      `json:"callback_data,omitempty"`
}
