package domain

// DocumentType selects which printable document to request.
type DocumentType string

// List of printable document types
const (
	DocumentLabel   DocumentType = "LBL"
	DocumentReceipt DocumentType = "RCP"
)

var allowedDocumentTypes = [...]DocumentType{
	DocumentLabel, DocumentReceipt,
}

// Valid checks if the DocumentType is valid
func (t DocumentType) Valid() bool {
	for _, v := range allowedDocumentTypes {
		if t == v {
			return true
		}
	}
	return false
}
