package dto

// QRCodeResponse carries the JSON text a client should render as a QR code.
type QRCodeResponse struct {
	Payload string `json:"payload"`
}

type ScanQRRequestBody struct {
	Text string `json:"text" validate:"required,max=1024"`
}

// ScanQRResponse reports which flow the scan triggered and its outcome.
type ScanQRResponse struct {
	Flow    string                     `json:"flow"`
	Family  *FamilyListResponse        `json:"family,omitempty"`
	Request *MedicationRequestResponse `json:"request,omitempty"`
}
