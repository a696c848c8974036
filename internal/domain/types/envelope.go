package types

// Result status values carried in every codec response.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// EncryptRequest is the body accepted by the encrypt endpoint.
type EncryptRequest struct {
	Content    string `json:"content"`
	Passphrase string `json:"passphrase"`
}

// EncryptResponse carries either the sealed blob or an error message.
type EncryptResponse struct {
	Status        string `json:"status"`
	EncryptedData string `json:"encrypted_data,omitempty"`
	Message       string `json:"message,omitempty"`
}

// DecryptRequest is the body accepted by the decrypt endpoint. Content holds
// the base64 envelope.
type DecryptRequest struct {
	Content    string `json:"content"`
	Passphrase string `json:"passphrase"`
}

// DecryptResponse carries either the recovered text or the generic error.
// Content is set only on success, so an empty note still yields "content":"".
type DecryptResponse struct {
	Status  string  `json:"status"`
	Content *string `json:"content,omitempty"`
	Message string  `json:"message,omitempty"`
}
