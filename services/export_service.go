package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rozeen-shrestha/confession/models"
	"github.com/rozeen-shrestha/confession/render"
	"go.uber.org/zap"
)

type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// ExportService renders confessions as PNG and optionally publishes them.
type ExportService struct {
	confessions *ConfessionService
	renderer    *render.Renderer
	store       ImageStore
	keyFor      func(id string, now time.Time) string
	log         *zap.Logger
}

// NewExportService builds the exporter. store may be nil, in which case
// Publish returns ErrPublishingDisabled.
func NewExportService(confessions *ConfessionService, renderer *render.Renderer, store ImageStore, keyFor func(string, time.Time) string, log *zap.Logger) *ExportService {
	return &ExportService{
		confessions: confessions,
		renderer:    renderer,
		store:       store,
		keyFor:      keyFor,
		log:         log,
	}
}

func (e *ExportService) card(c *models.Confession) render.Card {
	return render.Card{
		Name:      c.Name,
		Text:      c.Text,
		CreatedAt: e.confessions.Local(c.CreatedAt),
	}
}

// CardPNG renders one confession.
func (e *ExportService) CardPNG(ctx context.Context, id string) ([]byte, *models.Confession, error) {
	c, err := e.confessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	img, err := e.renderer.Card(e.card(c))
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), c, nil
}

// PagePNG renders every confession on one listing page into a single image.
func (e *ExportService) PagePNG(ctx context.Context, page, perPage int) ([]byte, error) {
	p, err := e.confessions.Page(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	cards := make([]render.Card, 0, len(p.Confessions))
	for i := range p.Confessions {
		cards = append(cards, e.card(&p.Confessions[i]))
	}
	img, err := e.renderer.Sheet(cards)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *ExportService) Publish(ctx context.Context, id string) (string, error) {
	if e.store == nil {
		return "", ErrPublishingDisabled
	}
	png, c, err := e.CardPNG(ctx, id)
	if err != nil {
		return "", err
	}
	key := e.keyFor(c.ID.Hex(), time.Now())
	url, err := e.store.Put(ctx, key, "image/png", png)
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", c.Name, err)
	}
	e.log.Info("confession image published", zap.String("id", c.ID.Hex()), zap.String("url", url))
	return url, nil
}
