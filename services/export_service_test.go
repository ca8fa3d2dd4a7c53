package services

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/rozeen-shrestha/confession/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeImageStore struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (f *fakeImageStore) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, body)
	return "https://cdn.example.com/" + key, nil
}

func newExport(t *testing.T, store ImageStore) (*ExportService, *fixture) {
	t.Helper()
	f := newFixture(t, 3)
	r, err := render.NewRenderer()
	require.NoError(t, err)
	keyFor := func(id string, _ time.Time) string { return "confessions/" + id + ".png" }
	return NewExportService(f.svc, r, store, keyFor, zap.NewNop()), f
}

func TestCardPNG(t *testing.T) {
	exp, f := newExport(t, nil)
	seed(t, f.repo, 1)
	id := f.repo.All()[0].ID.Hex()

	data, c, err := exp.CardPNG(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "anonymous1", c.Name)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, render.CardWidth*render.Scale, img.Bounds().Dx())

	_, _, err = exp.CardPNG(context.Background(), "65f000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPagePNG(t *testing.T) {
	exp, f := newExport(t, nil)
	seed(t, f.repo, 12)

	small, err := exp.PagePNG(context.Background(), 1, 2)
	require.NoError(t, err)
	large, err := exp.PagePNG(context.Background(), 1, 10)
	require.NoError(t, err)

	smallImg, err := png.Decode(bytes.NewReader(small))
	require.NoError(t, err)
	largeImg, err := png.Decode(bytes.NewReader(large))
	require.NoError(t, err)
	assert.Greater(t, largeImg.Bounds().Dy(), smallImg.Bounds().Dy())
}

func TestPublish(t *testing.T) {
	store := &fakeImageStore{}
	exp, f := newExport(t, store)
	seed(t, f.repo, 1)
	id := f.repo.All()[0].ID.Hex()

	url, err := exp.Publish(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/confessions/"+id+".png", url)
	require.Len(t, store.bodies, 1)
	_, err = png.Decode(bytes.NewReader(store.bodies[0]))
	assert.NoError(t, err)
}

func TestPublish_Disabled(t *testing.T) {
	exp, f := newExport(t, nil)
	seed(t, f.repo, 1)

	_, err := exp.Publish(context.Background(), f.repo.All()[0].ID.Hex())
	assert.ErrorIs(t, err, ErrPublishingDisabled)
}

func TestPublish_StoreError(t *testing.T) {
	exp, f := newExport(t, &fakeImageStore{err: errors.New("403 forbidden")})
	seed(t, f.repo, 1)

	_, err := exp.Publish(context.Background(), f.repo.All()[0].ID.Hex())
	assert.ErrorContains(t, err, "403 forbidden")
}
