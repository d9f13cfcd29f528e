// Package codec classifies a normalized inbound message into exactly one
// storable item. Classification is pure and total: every message maps either
// to one of the six payload kinds or to ErrUnsupportedContent.
package codec

import (
	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
)

// Classify maps msg onto one storable payload. Priority is fixed:
// text > photo > video > audio > document > voice. The caption is captured
// whenever present, independent of kind. Voice notes carry no file name.
func Classify(msg *models.IncomingMessage) (models.Item, error) {
	item := models.Item{Caption: msg.Caption}

	switch {
	case msg.Text != "":
		item.Kind = models.KindText
		item.Text = msg.Text
	case len(msg.Photo) > 0:
		item.Kind = models.KindPhoto
		item.FileID = largestPhoto(msg.Photo).FileID
	case msg.Video != nil:
		item.Kind = models.KindVideo
		item.FileID = msg.Video.FileID
		item.FileName = msg.Video.FileName
	case msg.Audio != nil:
		item.Kind = models.KindAudio
		item.FileID = msg.Audio.FileID
		item.FileName = msg.Audio.FileName
	case msg.Document != nil:
		item.Kind = models.KindDocument
		item.FileID = msg.Document.FileID
		item.FileName = msg.Document.FileName
	case msg.Voice != nil:
		item.Kind = models.KindVoice
		item.FileID = msg.Voice.FileID
	default:
		return models.Item{}, common.ErrUnsupportedContent
	}

	return item, nil
}

func largestPhoto(variants []models.PhotoSize) models.PhotoSize {
	best := variants[0]
	for _, v := range variants[1:] {
		if v.Size > best.Size {
			best = v
		}
	}
	return best
}
