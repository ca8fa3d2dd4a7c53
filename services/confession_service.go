package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rozeen-shrestha/confession/database"
	"github.com/rozeen-shrestha/confession/dto"
	"github.com/rozeen-shrestha/confession/models"
	"github.com/rozeen-shrestha/confession/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type ConfessionRepository interface {
	Insert(ctx context.Context, c *models.Confession) error
	Count(ctx context.Context) (int64, error)
	FindPage(ctx context.Context, skip, limit int64) ([]models.Confession, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Confession, error)
}

type Limiter interface {
	Allow(ip string) bool
}

type Namer interface {
	NextName(ctx context.Context) (string, error)
}

type ConfessionOptions struct {
	MaxTextLength  int
	DefaultPerPage int
	MaxPerPage     int
	Location       *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

type ConfessionService struct {
	repo    ConfessionRepository
	namer   Namer
	limiter Limiter
	opts    ConfessionOptions
	log     *zap.Logger
}

func NewConfessionService(repo ConfessionRepository, namer Namer, limiter Limiter, opts ConfessionOptions, log *zap.Logger) *ConfessionService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultPerPage < 1 {
		opts.DefaultPerPage = 40
	}
	if opts.MaxPerPage < opts.DefaultPerPage {
		opts.MaxPerPage = opts.DefaultPerPage
	}
	return &ConfessionService{repo: repo, namer: namer, limiter: limiter, opts: opts, log: log}
}

// Submission is a confession as it arrives, plus the request metadata kept
// alongside it.
type Submission struct {
	Text         string
	ForwardedFor string
	UserAgent    string
}

func (s *ConfessionService) Submit(ctx context.Context, in Submission) (*dto.ConfessionResponse, error) {
	text := utils.NormalizeText(in.Text, s.opts.MaxTextLength)
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	ip := utils.FirstForwardedIP(in.ForwardedFor)
	key := ""
	if ip != nil {
		key = *ip
	}
	if !s.limiter.Allow(key) {
		s.log.Info("confession rate limited", zap.String("ip", key))
		return nil, ErrRateLimited
	}

	name, err := s.namer.NextName(ctx)
	if err != nil {
		return nil, err
	}

	c := &models.Confession{
		Name:         name,
		Text:         text,
		CreatedAt:    s.opts.Now().UTC(),
		IP:           ip,
		UserAgent:    utils.OptionalString(in.UserAgent),
		ForwardedFor: utils.OptionalString(in.ForwardedFor),
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("save %s: %w", name, err)
	}
	s.log.Debug("confession stored", zap.String("id", c.ID.Hex()), zap.String("name", name))

	resp := s.ToResponse(c)
	return &resp, nil
}

// Page is one page of confessions, newest first, with the pagination
// values that were actually applied.
type Page struct {
	Confessions []models.Confession
	Total       int64
	TotalPages  int64
	Page        int
	PerPage     int
}

// Pagination clamps requested values: page below 1 becomes 1, perPage below
// 1 becomes the default and perPage above the maximum becomes the maximum.
func (s *ConfessionService) Pagination(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.opts.DefaultPerPage
	}
	if perPage > s.opts.MaxPerPage {
		perPage = s.opts.MaxPerPage
	}
	return page, perPage
}

func (s *ConfessionService) Page(ctx context.Context, page, perPage int) (*Page, error) {
	page, perPage = s.Pagination(page, perPage)

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	out := &Page{
		Confessions: []models.Confession{},
		Total:       total,
		TotalPages:  (total + int64(perPage) - 1) / int64(perPage),
		Page:        page,
		PerPage:     perPage,
	}
	// past the last page; also keeps skip from overflowing
	if int64(page) > out.TotalPages {
		return out, nil
	}

	skip := int64(page-1) * int64(perPage)
	items, err := s.repo.FindPage(ctx, skip, int64(perPage))
	if err != nil {
		return nil, err
	}
	out.Confessions = items
	return out, nil
}

func (s *ConfessionService) List(ctx context.Context, page, perPage int) (*dto.ConfessionPageResponse, error) {
	p, err := s.Page(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	out := &dto.ConfessionPageResponse{
		Confessions: make([]dto.ConfessionResponse, 0, len(p.Confessions)),
		Total:       p.Total,
		TotalPages:  p.TotalPages,
		Page:        p.Page,
		PerPage:     p.PerPage,
	}
	for i := range p.Confessions {
		out.Confessions = append(out.Confessions, s.ToResponse(&p.Confessions[i]))
	}
	return out, nil
}

func (s *ConfessionService) Get(ctx context.Context, id string) (*models.Confession, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	c, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("confession %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Local returns t in the display time zone.
func (s *ConfessionService) Local(t time.Time) time.Time {
	return t.In(s.opts.Location)
}

func (s *ConfessionService) ToResponse(c *models.Confession) dto.ConfessionResponse {
	return dto.ConfessionResponse{
		ID:           c.ID.Hex(),
		Name:         c.Name,
		Text:         c.Text,
		CreatedAt:    s.Local(c.CreatedAt).Format(time.RFC3339),
		IP:           c.IP,
		UserAgent:    c.UserAgent,
		ForwardedFor: c.ForwardedFor,
	}
}
