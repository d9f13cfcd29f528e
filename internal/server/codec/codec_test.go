package codec

import (
	"testing"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_TextPreservesString(t *testing.T) {
	item, err := Classify(&models.IncomingMessage{Text: "hello, world"})
	require.NoError(t, err)
	assert.Equal(t, models.KindText, item.Kind)
	assert.Equal(t, "hello, world", item.Text)
	assert.Empty(t, item.FileID)
}

func TestClassify_PhotoPicksLargestVariant(t *testing.T) {
	msg := &models.IncomingMessage{
		Photo: []models.PhotoSize{
			{FileID: "small", Size: 100},
			{FileID: "large", Size: 9000},
			{FileID: "medium", Size: 4000},
		},
		Caption: "vacation",
	}

	item, err := Classify(msg)
	require.NoError(t, err)
	assert.Equal(t, models.KindPhoto, item.Kind)
	assert.Equal(t, "large", item.FileID)
	assert.Equal(t, "vacation", item.Caption)
}

func TestClassify_TextWinsOverPhoto(t *testing.T) {
	msg := &models.IncomingMessage{
		Text:  "caption-like text",
		Photo: []models.PhotoSize{{FileID: "p1", Size: 10}},
	}

	item, err := Classify(msg)
	require.NoError(t, err)
	assert.Equal(t, models.KindText, item.Kind)
}

func TestClassify_Attachments(t *testing.T) {
	tests := []struct {
		name     string
		msg      *models.IncomingMessage
		kind     models.ItemKind
		fileName string
	}{
		{
			name: "video keeps file name",
			msg:  &models.IncomingMessage{Video: &models.Attachment{FileID: "v1", FileName: "clip.mp4"}},
			kind: models.KindVideo, fileName: "clip.mp4",
		},
		{
			name: "audio keeps file name",
			msg:  &models.IncomingMessage{Audio: &models.Attachment{FileID: "a1", FileName: "song.mp3"}},
			kind: models.KindAudio, fileName: "song.mp3",
		},
		{
			name: "document keeps file name",
			msg:  &models.IncomingMessage{Document: &models.Attachment{FileID: "d1", FileName: "report.pdf"}},
			kind: models.KindDocument, fileName: "report.pdf",
		},
		{
			name: "voice has no file name",
			msg:  &models.IncomingMessage{Voice: &models.Attachment{FileID: "vn1"}},
			kind: models.KindVoice, fileName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := Classify(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, item.Kind)
			assert.Equal(t, tt.fileName, item.FileName)
			assert.NotEmpty(t, item.FileID)
		})
	}
}

func TestClassify_VideoWinsOverVoice(t *testing.T) {
	msg := &models.IncomingMessage{
		Video: &models.Attachment{FileID: "v1"},
		Voice: &models.Attachment{FileID: "vn1"},
	}

	item, err := Classify(msg)
	require.NoError(t, err)
	assert.Equal(t, models.KindVideo, item.Kind)
	assert.Equal(t, "v1", item.FileID)
}

func TestClassify_EmptyMessageUnsupported(t *testing.T) {
	_, err := Classify(&models.IncomingMessage{SenderID: "u1"})
	assert.ErrorIs(t, err, common.ErrUnsupportedContent)
}

func TestClassify_CaptionAloneUnsupported(t *testing.T) {
	_, err := Classify(&models.IncomingMessage{Caption: "orphan caption"})
	assert.ErrorIs(t, err, common.ErrUnsupportedContent)
}
