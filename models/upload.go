package models

import "encoding/json"

// PresignRequest asks for a short-lived URL to PUT one image.
type PresignRequest struct {
	ContentType string      `json:"contentType"`
	Size        json.Number `json:"size"`
	Folder      string      `json:"folder"`
}

// PresignedUpload is returned to the browser, which PUTs the file to
// UploadURL and then stores PublicURL.
type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

// DeleteUploadRequest is the body of DELETE /api/upload.
type DeleteUploadRequest struct {
	URL string `json:"url"`
}
