package auth

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senti/internal/model"
)

func testIdentity() *model.Identity {
	return &model.Identity{
		ID:           "1",
		Name:         "John Doe",
		Email:        "john@example.com",
		Role:         model.RoleEntrepreneur,
		ProfileImage: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg",
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	codecs := map[string]IdentityCodec{
		"json":   JSONCodec{},
		"signed": NewSignedCodec("test-secret"),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			data, err := codec.Encode(testIdentity())
			require.NoError(t, err)

			got, err := codec.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, testIdentity(), got)

			withoutImage := testIdentity()
			withoutImage.ProfileImage = ""
			data, err = codec.Encode(withoutImage)
			require.NoError(t, err)
			got, err = codec.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, withoutImage, got)
		})
	}
}

func TestJSONCodec_MatchesStoredRecord(t *testing.T) {
	data, err := JSONCodec{}.Encode(&model.Identity{ID: "k3j9x", Name: "Amina", Email: "amina@example.com", Role: model.RoleInvestor})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"k3j9x","name":"Amina","email":"amina@example.com","role":"investor"}`, string(data))
}

func TestJSONCodec_RejectsCorruptRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"id":`},
		{"wrong shape", `["john"]`},
		{"null", `null`},
		{"unknown role", `{"id":"1","name":"x","email":"x@example.com","role":"admin"}`},
		{"missing id", `{"name":"x","email":"x@example.com","role":"mentor"}`},
		{"missing email", `{"id":"1","name":"x","role":"mentor"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JSONCodec{}.Decode([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestSignedCodec_RejectsTampering(t *testing.T) {
	codec := NewSignedCodec("test-secret")
	data, err := codec.Encode(testIdentity())
	require.NoError(t, err)

	other := NewSignedCodec("other-secret")
	_, err = other.Decode(data)
	assert.Error(t, err)

	parts := strings.Split(string(data), ".")
	require.Len(t, parts, 3)
	forged := parts[0] + "." + parts[1] + "x." + parts[2]
	_, err = codec.Decode([]byte(forged))
	assert.Error(t, err)

	_, err = codec.Decode([]byte(`{"id":"1","email":"john@example.com","role":"entrepreneur"}`))
	assert.Error(t, err)
}

func TestSignedCodec_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{Identity: *testIdentity(), RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSignedCodec("test-secret").Decode([]byte(unsigned))
	assert.Error(t, err)
}

func TestCodecs_EncodeNil(t *testing.T) {
	_, err := JSONCodec{}.Encode(nil)
	assert.Error(t, err)
	_, err = NewSignedCodec("s").Encode(nil)
	assert.Error(t, err)
}
