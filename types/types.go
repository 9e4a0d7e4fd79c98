package types

// User represents an account in the database. AccessKey is the bearer
// credential; it is returned exactly once at registration and must never
// be logged or echoed anywhere else.
type User struct {
	Id        string `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	AccessKey string `db:"access_key" json:"-"`
	IsAdmin   bool   `db:"is_admin" json:"is_admin"`
}

// Media represents an uploaded file in the database. Content is stored
// inline with the row rather than on disk.
type Media struct {
	FileName string `db:"file_name"`
	Content  []byte `db:"content"`
	MimeType string `db:"mime_type"`
	UserId   string `db:"user_id"`
}
