package dispatch

import (
	"fmt"

	"github.com/dmitrijs2005/chatvault/internal/server/models"
)

// Menu labels recognized by the dispatcher. The transport renders them as
// keyboard buttons and echoes the pressed label back as message text.
const (
	LabelSaved       = "📂 Saved"
	LabelSaveModeOn  = "🟢 Save mode ON"
	LabelSaveModeOff = "🔴 Save mode OFF"
	LabelClear       = "🗑 Clear folder"
	LabelInfo        = "ℹ️ Info"
	LabelSearch      = "🔍 Search"
)

func saveModeLabel(on bool) string {
	if on {
		return LabelSaveModeOn
	}
	return LabelSaveModeOff
}

func isSaveModeLabel(text string) bool {
	return text == LabelSaveModeOn || text == LabelSaveModeOff
}

// userMenu builds the keyboard for user, reflecting the save-mode state.
func userMenu(user *models.User, saveMode bool) *Menu {
	return &Menu{
		Labels: [][]string{
			{fmt.Sprintf("📁 Folder #%d (%s)", user.FolderID, user.FolderName)},
			{LabelSaved, LabelSearch},
			{saveModeLabel(saveMode)},
			{LabelClear, LabelInfo},
		},
		SaveMode: saveMode,
	}
}
