package domain

import "time"

// Tag labels problems by topic.
type Tag struct {
	ID          int64     `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Color       string    `json:"color" bson:"color"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#6C757D"

// Comment is a discussion entry on a problem. ParentID is nil for a thread
// root and points at the root for replies.
type Comment struct {
	ID        int64     `json:"id" bson:"_id"`
	Content   string    `json:"content" bson:"content"`
	UserID    int64     `json:"userId" bson:"user_id"`
	ProblemID int64     `json:"problemId" bson:"problem_id"`
	ParentID  *int64    `json:"parentId" bson:"parent_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Rating is one user's 1..5 score for a problem. (UserID, ProblemID) is unique.
type Rating struct {
	ID        int64     `json:"id" bson:"_id"`
	UserID    int64     `json:"userId" bson:"user_id"`
	ProblemID int64     `json:"problemId" bson:"problem_id"`
	Value     int       `json:"value" bson:"value"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// File is the metadata of an attachment uploaded for a problem. The bytes
// live in a blob store under StorageKey.
type File struct {
	ID           int64     `json:"id" bson:"_id"`
	Filename     string    `json:"filename" bson:"filename"`
	OriginalName string    `json:"originalName" bson:"original_name"`
	Path         string    `json:"path" bson:"path"`
	StorageKey   string    `json:"-" bson:"storage_key"`
	ProblemID    int64     `json:"problemId" bson:"problem_id"`
	UploadedBy   int64     `json:"uploadedBy" bson:"uploaded_by"`
	FileSize     int64     `json:"fileSize" bson:"file_size"`
	MimeType     string    `json:"mimeType" bson:"mime_type"`
	Description  string    `json:"description" bson:"description"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// AllowedFileExtensions lists the attachment types accepted on upload.
var AllowedFileExtensions = []string{".pdf", ".txt", ".md", ".zip", ".java", ".py", ".js", ".cpp", ".c"}

// DefaultMaxUploadBytes caps a single attachment.
const DefaultMaxUploadBytes int64 = 10 << 20
