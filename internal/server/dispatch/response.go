package dispatch

import "github.com/dmitrijs2005/chatvault/internal/server/models"

// ResponseKind discriminates the outgoing response union.
type ResponseKind string

const (
	// ResponseNone means the message was deliberately ignored; the transport
	// renders nothing.
	ResponseNone    ResponseKind = "none"
	ResponseText    ResponseKind = "text"
	ResponseMedia   ResponseKind = "media"
	ResponseMenu    ResponseKind = "menu"
	ResponseListing ResponseKind = "listing"
)

// MediaReply re-delivers a stored media payload by its opaque file reference.
type MediaReply struct {
	Kind    models.ItemKind `json:"kind"`
	FileID  string          `json:"file_id"`
	Caption string          `json:"caption,omitempty"`
}

// Menu is the keyboard the transport should render, with the save-mode
// state reflected in the toggle label.
type Menu struct {
	Labels   [][]string `json:"labels"`
	SaveMode bool       `json:"save_mode"`
}

// Listing is one page of a folder: ids and kinds only, never content.
type Listing struct {
	Page    int              `json:"page"`
	Entries []models.ItemRef `json:"entries"`
	HasPrev bool             `json:"has_prev"`
	HasNext bool             `json:"has_next"`
}

// Response is what the dispatch core hands back to the transport binding.
// Exactly the fields implied by Kind are set; Text may accompany Menu.
type Response struct {
	Kind    ResponseKind `json:"kind"`
	Text    string       `json:"text,omitempty"`
	Media   *MediaReply  `json:"media,omitempty"`
	Menu    *Menu        `json:"menu,omitempty"`
	Listing *Listing     `json:"listing,omitempty"`
}

func silent() *Response {
	return &Response{Kind: ResponseNone}
}

func textReply(text string) *Response {
	return &Response{Kind: ResponseText, Text: text}
}

func mediaReply(item *models.Item) *Response {
	media := &MediaReply{Kind: item.Kind, FileID: item.FileID}
	// voice notes never carry a caption on re-delivery
	if item.Kind != models.KindVoice {
		media.Caption = item.Caption
	}
	return &Response{Kind: ResponseMedia, Media: media}
}
