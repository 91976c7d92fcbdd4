package qrcode_test

import (
	"testing"

	"medikeep/pkg/qrcode"

	"github.com/stretchr/testify/require"
)

func TestDecode_ProfilePayloadRoundTrip(t *testing.T) {
	text, err := qrcode.EncodeProfile(qrcode.ProfilePayload{
		UserID:      "5f2f3f4a-0000-4000-8000-000000000001",
		AccountType: "normal",
	})
	require.NoError(t, err)

	payload, err := qrcode.Decode(text)
	require.NoError(t, err)
	require.NotNil(t, payload.Profile)
	require.Nil(t, payload.Chemist)
	require.Equal(t, "normal", payload.Profile.AccountType)
}

func TestDecode_ChemistPayloadWinsOverProfileFields(t *testing.T) {
	// A chemist code scanned from the requests screen carries both shapes'
	// fields in older app builds; the chemist interpretation takes priority.
	payload, err := qrcode.Decode(`{"chemistId":"abc","chemistName":"City Pharmacy","userId":"ignored"}`)
	require.NoError(t, err)
	require.Nil(t, payload.Profile)
	require.NotNil(t, payload.Chemist)
	require.Equal(t, "City Pharmacy", payload.Chemist.ChemistName)
}

func TestDecode_RejectsUnknownShapes(t *testing.T) {
	_, err := qrcode.Decode(`{"foo":"bar"}`)
	require.ErrorIs(t, err, qrcode.ErrUnknownPayload)

	_, err = qrcode.Decode("not json at all")
	require.Error(t, err)
}
