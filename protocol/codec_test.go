package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/domain"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		wantType string
		wantRoom string
		wantUser string
		wantErr  bool
	}{
		{
			name:     "join envelope",
			frame:    `{"type":"join","room":"draft-42","user":"alice"}`,
			wantType: "join",
			wantRoom: "draft-42",
			wantUser: "alice",
		},
		{
			name:     "edit with opaque payload",
			frame:    `{"type":"edit","room":"draft-42","delta":"insert:hello","rev":7}`,
			wantType: "edit",
			wantRoom: "draft-42",
		},
		{
			name:     "cursor with opaque payload",
			frame:    `{"type":"cursor","room":"draft-42","line":3,"col":14}`,
			wantType: "cursor",
			wantRoom: "draft-42",
		},
		{
			name:    "not json",
			frame:   `{not json`,
			wantErr: true,
		},
		{
			name:    "missing type",
			frame:   `{"room":"draft-42","delta":"x"}`,
			wantErr: true,
		},
		{
			name:    "non-string type",
			frame:   `{"type":123}`,
			wantErr: true,
		},
		{
			name:    "non-object frame",
			frame:   `[1,2,3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode([]byte(tt.frame))

			if tt.wantErr {
				require.Error(t, err)
				var de *domain.DecodeError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, []byte(tt.frame), de.Raw)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, msg.Type)
			assert.Equal(t, tt.wantRoom, msg.Room)
			assert.Equal(t, tt.wantUser, msg.User)
			assert.Equal(t, []byte(tt.frame), msg.Raw, "raw frame must be preserved byte-for-byte")
		})
	}
}

func TestEncode(t *testing.T) {
	joined, err := Encode(domain.Message{Type: domain.TypeJoined, Room: "draft-42"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"joined","room":"draft-42"}`, string(joined))

	pong, err := Encode(domain.Message{Type: domain.TypePong})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong"}`, string(pong))
}
