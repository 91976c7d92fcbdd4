// Package qrcode encodes and decodes the JSON payloads carried in the app's
// QR codes. Payloads are plain JSON with no signature or expiry, so anyone
// holding the encoded text can replay the referenced flow. That gap is
// inherited from the product and deliberately not hardened here.
package qrcode

import (
	"encoding/json"
	"errors"
)

var ErrUnknownPayload = errors.New("unrecognized qr payload")

// ProfilePayload identifies a user profile; scanning it starts either a
// family connection (normal accounts) or a medication request (professional
// accounts), depending on AccountType.
type ProfilePayload struct {
	UserID      string `json:"userId"`
	AccountType string `json:"accountType"`
}

// ChemistPayload identifies a specific chemist for a medication request.
type ChemistPayload struct {
	ChemistID   string `json:"chemistId"`
	ChemistName string `json:"chemistName"`
}

// Payload is the decoded form of a scanned QR code; exactly one field is set.
type Payload struct {
	Profile *ProfilePayload
	Chemist *ChemistPayload
}

func EncodeProfile(p ProfilePayload) (string, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

func EncodeChemist(p ChemistPayload) (string, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

// Decode parses a scanned QR text into one of the known payload shapes.
func Decode(text string) (*Payload, error) {
	var raw struct {
		UserID      string `json:"userId"`
		AccountType string `json:"accountType"`
		ChemistID   string `json:"chemistId"`
		ChemistName string `json:"chemistName"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}

	switch {
	case raw.ChemistID != "" && raw.ChemistName != "":
		return &Payload{Chemist: &ChemistPayload{ChemistID: raw.ChemistID, ChemistName: raw.ChemistName}}, nil
	case raw.UserID != "":
		return &Payload{Profile: &ProfilePayload{UserID: raw.UserID, AccountType: raw.AccountType}}, nil
	default:
		return nil, ErrUnknownPayload
	}
}
