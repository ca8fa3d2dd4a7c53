package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/opentype"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func sampleCard(text string) Card {
	return Card{
		Name:      "anonymous12",
		Text:      text,
		CreatedAt: time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC),
	}
}

func TestCard_Header(t *testing.T) {
	assert.Equal(t, "-Anonymous12 2024-05-01 18:30", sampleCard("x").Header())
}

func TestCard_FixedWidthMinimumHeight(t *testing.T) {
	r := newTestRenderer(t)

	img, err := r.Card(sampleCard("hello"))
	require.NoError(t, err)
	assert.Equal(t, CardWidth*Scale, img.Bounds().Dx())
	assert.Equal(t, CardMinHeight*Scale, img.Bounds().Dy())
}

func TestCard_GrowsWithText(t *testing.T) {
	r := newTestRenderer(t)

	short, err := r.Card(sampleCard("hello"))
	require.NoError(t, err)
	long, err := r.Card(sampleCard(strings.Repeat("a long confession that wraps ", 40)))
	require.NoError(t, err)

	assert.Equal(t, short.Bounds().Dx(), long.Bounds().Dx())
	assert.Greater(t, long.Bounds().Dy(), short.Bounds().Dy())
}

func TestCard_DrawsText(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.Card(sampleCard("hello"))
	require.NoError(t, err)

	nonWhite := 0
	for _, v := range img.Pix {
		if v != 0xff {
			nonWhite++
		}
	}
	assert.Positive(t, nonWhite)
}

func TestSheet_StacksCards(t *testing.T) {
	r := newTestRenderer(t)

	one, err := r.Sheet([]Card{sampleCard("first")})
	require.NoError(t, err)
	three, err := r.Sheet([]Card{sampleCard("first"), sampleCard("second"), sampleCard("third")})
	require.NoError(t, err)

	assert.Equal(t, one.Bounds().Dx(), three.Bounds().Dx())
	assert.Greater(t, three.Bounds().Dy(), one.Bounds().Dy())
}

func TestEncodePNG(t *testing.T) {
	r := newTestRenderer(t)
	img, err := r.Card(sampleCard("hello"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestWrapText(t *testing.T) {
	r := newTestRenderer(t)
	face, err := opentype.NewFace(r.regular, &opentype.FaceOptions{Size: 20, DPI: 72})
	require.NoError(t, err)
	defer face.Close()

	const maxWidth = 200
	lines := wrapText(face, "first paragraph with several words in it\n\nsecond "+strings.Repeat("x", 80), maxWidth)

	require.Greater(t, len(lines), 3)
	for _, l := range lines {
		assert.LessOrEqual(t, width(face, l), maxWidth, "line %q too wide", l)
	}
	assert.Contains(t, lines, "")

	squash := func(s string) string { return strings.Join(strings.Fields(s), "") }
	assert.Equal(t, squash("first paragraph with several words in it second "+strings.Repeat("x", 80)), squash(strings.Join(lines, " ")))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "anonymous12.png", Filename("anonymous12"))
	assert.Equal(t, "confession.png", Filename("../"))
}
