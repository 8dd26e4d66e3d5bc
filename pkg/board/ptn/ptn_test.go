package ptn_test

import (
	"testing"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/board/ptn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	tests := []struct {
		token string
		crush bool
	}{
		{token: "c3"},
		{token: "Sc3"},
		{token: "Cc3"},
		{token: "c3+"},
		{token: "3c3+"},
		{token: "3c3+12"},
		{token: "3c3+111"},
		{token: "2c3>11*", crush: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			m, err := ptn.Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.token, ptn.Format(m, tt.crush))
		})
	}
}

func TestParsePlace(t *testing.T) {
	m, err := ptn.Parse("Cd4")
	require.NoError(t, err)
	assert.True(t, m.IsPlace())
	assert.Equal(t, board.Capstone, m.Kind())

	sq, err := board.ParseSquareStr("d4")
	require.NoError(t, err)
	assert.Equal(t, sq, m.Square())
}

func TestParseSlide(t *testing.T) {
	m, err := ptn.Parse("3c3+12")
	require.NoError(t, err)
	assert.True(t, m.IsSlide())
	assert.Equal(t, board.North, m.Direction())
	assert.Equal(t, 3, m.PickupCount())
	assert.Equal(t, 2, m.StepCount())
	assert.Equal(t, []uint8{1, 2}, board.DecodePattern(m.Pattern()))
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"Sz9",    // invalid square
		"c3^",    // invalid direction
		"3c3+13", // drop counts sum to 4, not 3
		"c",      // too short
	}
	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			_, err := ptn.Parse(tt)
			assert.Error(t, err)
		})
	}
}
