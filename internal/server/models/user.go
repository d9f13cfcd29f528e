package models

// User is one registered vault owner. FolderID points at the user's default
// folder; currently every user owns exactly one.
type User struct {
	ID         string
	FolderID   int64
	FolderName string
	Phone      string
	PinHash    string
}
