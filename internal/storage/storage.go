package storage

import "mime/multipart"

// Storage stores uploaded media and returns a public URL. Uploads are
// independent of the posts that later reference the URLs.
type Storage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
