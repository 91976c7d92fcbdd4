package dto

// ExtractDocumentRequestBody carries an encoded document to the extraction
// gateway. Target chooses the output schema and the collection the extracted
// items land in.
type ExtractDocumentRequestBody struct {
	Document string `json:"document" validate:"required,base64"`
	MimeType string `json:"mime_type" validate:"required,max=128"`
	Target   string `json:"target" validate:"required,oneof=inventory medicines"`
}

type ExtractDocumentResponse struct {
	Target    string                   `json:"target"`
	Inventory []InventoryItemResponse  `json:"inventory,omitempty"`
	Medicines []StoredMedicineResponse `json:"medicines,omitempty"`
	Total     int                      `json:"total"`
}
