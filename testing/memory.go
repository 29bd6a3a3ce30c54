package testing

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chitrakalakar/backend/models"
	"github.com/chitrakalakar/backend/utils"
	"github.com/lib/pq"
)

// In-memory repository fakes for flow tests. They honor the same filter and
// ordering semantics as the SQL-backed implementations so business flows can
// be exercised without Postgres.

// MemoryProfileRepository is an in-memory ProfileRepository
type MemoryProfileRepository struct {
	mu     sync.Mutex
	rows   map[uint]*models.Profile
	nextID uint
}

// NewMemoryProfileRepository creates an empty in-memory profile repository
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{rows: make(map[uint]*models.Profile), nextID: 1}
}

func copyProfile(p *models.Profile) *models.Profile {
	c := *p
	c.Categories = append(pq.StringArray{}, p.Categories...)
	return &c
}

func (r *MemoryProfileRepository) matches(p *models.Profile, f models.ProfileFilter) bool {
	if f.ID != nil && p.ID != *f.ID {
		return false
	}
	if f.UUID != nil && p.UUID != *f.UUID {
		return false
	}
	if f.Role != nil && p.Role != *f.Role {
		return false
	}
	if f.Email != nil && !strings.EqualFold(p.Email, *f.Email) {
		return false
	}
	if f.IsApproved != nil && utils.IsTrue(p.IsApproved) != *f.IsApproved {
		return false
	}
	if f.IsActive != nil && utils.IsTrue(p.IsActive) != *f.IsActive {
		return false
	}
	if f.TeachingRateSet != nil && (p.TeachingRate != nil) != *f.TeachingRateSet {
		return false
	}
	if f.TeachesOnline != nil && utils.IsTrue(p.TeachesOnline) != *f.TeachesOnline {
		return false
	}
	if f.TeachesOffline != nil && utils.IsTrue(p.TeachesOffline) != *f.TeachesOffline {
		return false
	}
	return true
}

func (r *MemoryProfileRepository) filtered(f models.ProfileFilter) []*models.Profile {
	var out []*models.Profile
	for _, p := range r.rows {
		if r.matches(p, f) {
			out = append(out, copyProfile(p))
		}
	}
	return out
}

func (r *MemoryProfileRepository) ByID(ctx context.Context, id uint) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.rows[id]; ok {
		return copyProfile(p), nil
	}
	return nil, nil
}

func (r *MemoryProfileRepository) ByFilter(ctx context.Context, filter models.ProfileFilter, orderBy string, limit, offset int) ([]*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filtered(filter)
	sortByOrder(out, orderBy,
		func(p *models.Profile) (time.Time, uint) { return p.CreatedAt, p.ID })
	return window(out, limit, offset), nil
}

func (r *MemoryProfileRepository) Save(ctx context.Context, entity *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = utils.UTCNow()
	}
	entity.UpdatedAt = utils.UTCNow()
	r.rows[entity.ID] = copyProfile(entity)
	return nil
}

func (r *MemoryProfileRepository) SaveBatch(ctx context.Context, entities []*models.Profile) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryProfileRepository) Count(ctx context.Context, filter models.ProfileFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *MemoryProfileRepository) Exists(ctx context.Context, filter models.ProfileFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *MemoryProfileRepository) ByUUID(ctx context.Context, uuidStr string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.UUID.String() == uuidStr {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (r *MemoryProfileRepository) ByEmail(ctx context.Context, email string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if strings.EqualFold(p.Email, email) {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (r *MemoryProfileRepository) FindByIDs(ctx context.Context, ids []uint) ([]*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Profile
	for _, id := range ids {
		if p, ok := r.rows[id]; ok {
			out = append(out, copyProfile(p))
		}
	}
	return out, nil
}

func (r *MemoryProfileRepository) ListCandidates(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filtered(filter), nil
}

func (r *MemoryProfileRepository) UpdateFields(ctx context.Context, profileID uint, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[profileID]
	if !ok {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "name":
			p.Name = value.(string)
		case "phone":
			v := value.(string)
			p.Phone = &v
		case "bio":
			v := value.(string)
			p.Bio = &v
		case "avatar":
			v := value.(string)
			p.Avatar = &v
		case "location":
			v := value.(string)
			p.Location = &v
		case "role":
			p.Role = value.(models.Role)
		case "categories":
			p.Categories = value.(pq.StringArray)
		case "teaching_rate":
			v := value.(float64)
			p.TeachingRate = &v
		case "teaches_online":
			v := value.(bool)
			p.TeachesOnline = &v
		case "teaches_offline":
			v := value.(bool)
			p.TeachesOffline = &v
		case "is_approved":
			v := value.(bool)
			p.IsApproved = &v
		case "is_active":
			v := value.(bool)
			p.IsActive = &v
		}
	}
	p.UpdatedAt = utils.UTCNow()
	return nil
}

// MemoryEnquiryRepository is an in-memory EnquiryRepository
type MemoryEnquiryRepository struct {
	mu     sync.Mutex
	rows   map[uint]*models.Enquiry
	nextID uint
}

// NewMemoryEnquiryRepository creates an empty in-memory enquiry repository
func NewMemoryEnquiryRepository() *MemoryEnquiryRepository {
	return &MemoryEnquiryRepository{rows: make(map[uint]*models.Enquiry), nextID: 1}
}

func copyEnquiry(e *models.Enquiry) *models.Enquiry {
	c := *e
	c.MatchedArtistIDs = append(pq.Int64Array{}, e.MatchedArtistIDs...)
	c.RevealedArtistIDs = append(pq.Int64Array{}, e.RevealedArtistIDs...)
	return &c
}

func (r *MemoryEnquiryRepository) matches(e *models.Enquiry, f models.EnquiryFilter) bool {
	if f.ID != nil && e.ID != *f.ID {
		return false
	}
	if f.UUID != nil && e.UUID != *f.UUID {
		return false
	}
	if f.RequesterID != nil && e.RequesterID != *f.RequesterID {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.CreatedAfter != nil && e.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && e.CreatedAt.After(*f.CreatedBefore) {
		return false
	}
	return true
}

func (r *MemoryEnquiryRepository) filtered(f models.EnquiryFilter) []*models.Enquiry {
	var out []*models.Enquiry
	for _, e := range r.rows {
		if r.matches(e, f) {
			out = append(out, copyEnquiry(e))
		}
	}
	return out
}

func (r *MemoryEnquiryRepository) ByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rows[id]; ok {
		return copyEnquiry(e), nil
	}
	return nil, nil
}

func (r *MemoryEnquiryRepository) ByFilter(ctx context.Context, filter models.EnquiryFilter, orderBy string, limit, offset int) ([]*models.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filtered(filter)
	sortByOrder(out, orderBy,
		func(e *models.Enquiry) (time.Time, uint) { return e.CreatedAt, e.ID })
	return window(out, limit, offset), nil
}

func (r *MemoryEnquiryRepository) Save(ctx context.Context, entity *models.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirror the BeforeCreate hook the SQL path relies on
	if err := entity.BeforeCreate(nil); err != nil {
		return err
	}
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	r.rows[entity.ID] = copyEnquiry(entity)
	return nil
}

func (r *MemoryEnquiryRepository) SaveBatch(ctx context.Context, entities []*models.Enquiry) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryEnquiryRepository) Count(ctx context.Context, filter models.EnquiryFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *MemoryEnquiryRepository) Exists(ctx context.Context, filter models.EnquiryFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *MemoryEnquiryRepository) ByUUID(ctx context.Context, uuidStr string) (*models.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.UUID.String() == uuidStr {
			return copyEnquiry(e), nil
		}
	}
	return nil, nil
}

func (r *MemoryEnquiryRepository) ByIDAndRequester(ctx context.Context, id, requesterID uint) (*models.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rows[id]; ok && e.RequesterID == requesterID {
		return copyEnquiry(e), nil
	}
	return nil, nil
}

func (r *MemoryEnquiryRepository) CountCreatedSince(ctx context.Context, requesterID uint, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.rows {
		if e.RequesterID == requesterID && !e.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryEnquiryRepository) MarkExpired(ctx context.Context, enquiryID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rows[enquiryID]; ok {
		e.Status = models.EnquiryStatusExpired
		e.UpdatedAt = utils.UTCNow()
	}
	return nil
}

func (r *MemoryEnquiryRepository) AppendRevealedContact(ctx context.Context, enquiryID, artistID uint, expectedRevealed int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[enquiryID]
	if !ok {
		return false, nil
	}
	if len(e.RevealedArtistIDs) != expectedRevealed {
		return false, nil
	}
	e.RevealedArtistIDs = append(e.RevealedArtistIDs, int64(artistID))
	e.UpdatedAt = utils.UTCNow()
	return true, nil
}

// MemoryArtworkRepository is an in-memory ArtworkRepository
type MemoryArtworkRepository struct {
	mu     sync.Mutex
	rows   map[uint]*models.Artwork
	nextID uint
}

// NewMemoryArtworkRepository creates an empty in-memory artwork repository
func NewMemoryArtworkRepository() *MemoryArtworkRepository {
	return &MemoryArtworkRepository{rows: make(map[uint]*models.Artwork), nextID: 1}
}

func copyArtwork(a *models.Artwork) *models.Artwork {
	c := *a
	return &c
}

func (r *MemoryArtworkRepository) matches(a *models.Artwork, f models.ArtworkFilter) bool {
	if f.ID != nil && a.ID != *f.ID {
		return false
	}
	if f.UUID != nil && a.UUID != *f.UUID {
		return false
	}
	if f.ArtistID != nil && a.ArtistID != *f.ArtistID {
		return false
	}
	if f.Category != nil && a.Category != *f.Category {
		return false
	}
	if f.IsApproved != nil && utils.IsTrue(a.IsApproved) != *f.IsApproved {
		return false
	}
	return true
}

func (r *MemoryArtworkRepository) filtered(f models.ArtworkFilter) []*models.Artwork {
	var out []*models.Artwork
	for _, a := range r.rows {
		if r.matches(a, f) {
			out = append(out, copyArtwork(a))
		}
	}
	return out
}

func (r *MemoryArtworkRepository) ByID(ctx context.Context, id uint) (*models.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.rows[id]; ok {
		return copyArtwork(a), nil
	}
	return nil, nil
}

func (r *MemoryArtworkRepository) ByFilter(ctx context.Context, filter models.ArtworkFilter, orderBy string, limit, offset int) ([]*models.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filtered(filter)
	sortByOrder(out, orderBy,
		func(a *models.Artwork) (time.Time, uint) { return a.CreatedAt, a.ID })
	return window(out, limit, offset), nil
}

func (r *MemoryArtworkRepository) Save(ctx context.Context, entity *models.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := entity.BeforeCreate(nil); err != nil {
		return err
	}
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = utils.UTCNow()
	}
	entity.UpdatedAt = utils.UTCNow()
	r.rows[entity.ID] = copyArtwork(entity)
	return nil
}

func (r *MemoryArtworkRepository) SaveBatch(ctx context.Context, entities []*models.Artwork) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryArtworkRepository) Count(ctx context.Context, filter models.ArtworkFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *MemoryArtworkRepository) Exists(ctx context.Context, filter models.ArtworkFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *MemoryArtworkRepository) ByUUID(ctx context.Context, uuidStr string) (*models.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.UUID.String() == uuidStr {
			return copyArtwork(a), nil
		}
	}
	return nil, nil
}

func (r *MemoryArtworkRepository) TopByViews(ctx context.Context, artistID uint, limit int) ([]*models.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filtered(models.ArtworkFilter{ArtistID: &artistID, IsApproved: utils.ToPtr(true)})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryArtworkRepository) IncrementViews(ctx context.Context, artworkID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.rows[artworkID]; ok {
		a.Views++
	}
	return nil
}

func (r *MemoryArtworkRepository) SetApproval(ctx context.Context, artworkID uint, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.rows[artworkID]; ok {
		a.IsApproved = utils.ToPtr(approved)
		a.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// MemoryExhibitionRepository is an in-memory ExhibitionRepository
type MemoryExhibitionRepository struct {
	mu     sync.Mutex
	rows   map[uint]*models.Exhibition
	nextID uint
}

// NewMemoryExhibitionRepository creates an empty in-memory exhibition repository
func NewMemoryExhibitionRepository() *MemoryExhibitionRepository {
	return &MemoryExhibitionRepository{rows: make(map[uint]*models.Exhibition), nextID: 1}
}

func copyExhibition(e *models.Exhibition) *models.Exhibition {
	c := *e
	return &c
}

func (r *MemoryExhibitionRepository) matches(e *models.Exhibition, f models.ExhibitionFilter) bool {
	if f.ID != nil && e.ID != *f.ID {
		return false
	}
	if f.UUID != nil && e.UUID != *f.UUID {
		return false
	}
	if f.CuratorID != nil && e.CuratorID != *f.CuratorID {
		return false
	}
	if f.IsApproved != nil && utils.IsTrue(e.IsApproved) != *f.IsApproved {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	return true
}

func (r *MemoryExhibitionRepository) filtered(f models.ExhibitionFilter) []*models.Exhibition {
	var out []*models.Exhibition
	for _, e := range r.rows {
		if r.matches(e, f) {
			out = append(out, copyExhibition(e))
		}
	}
	return out
}

func (r *MemoryExhibitionRepository) ByID(ctx context.Context, id uint) (*models.Exhibition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rows[id]; ok {
		return copyExhibition(e), nil
	}
	return nil, nil
}

func (r *MemoryExhibitionRepository) ByFilter(ctx context.Context, filter models.ExhibitionFilter, orderBy string, limit, offset int) ([]*models.Exhibition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filtered(filter)
	if orderBy == "start_date ASC, id ASC" {
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].StartDate.Equal(out[j].StartDate) {
				return out[i].StartDate.Before(out[j].StartDate)
			}
			return out[i].ID < out[j].ID
		})
	} else {
		sortByOrder(out, orderBy,
			func(e *models.Exhibition) (time.Time, uint) { return e.CreatedAt, e.ID })
	}
	return window(out, limit, offset), nil
}

func (r *MemoryExhibitionRepository) Save(ctx context.Context, entity *models.Exhibition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := entity.BeforeCreate(nil); err != nil {
		return err
	}
	if entity.ID == 0 {
		entity.ID = r.nextID
		r.nextID++
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = utils.UTCNow()
	}
	entity.UpdatedAt = utils.UTCNow()
	r.rows[entity.ID] = copyExhibition(entity)
	return nil
}

func (r *MemoryExhibitionRepository) SaveBatch(ctx context.Context, entities []*models.Exhibition) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryExhibitionRepository) Count(ctx context.Context, filter models.ExhibitionFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *MemoryExhibitionRepository) Exists(ctx context.Context, filter models.ExhibitionFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *MemoryExhibitionRepository) ByUUID(ctx context.Context, uuidStr string) (*models.Exhibition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.UUID.String() == uuidStr {
			return copyExhibition(e), nil
		}
	}
	return nil, nil
}

func (r *MemoryExhibitionRepository) SetApproval(ctx context.Context, exhibitionID uint, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rows[exhibitionID]; ok {
		e.IsApproved = utils.ToPtr(approved)
		e.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// sortByOrder sorts rows by the created_at/id ordering clauses the flows use.
// Unrecognized clauses fall back to id DESC, matching the SQL default.
func sortByOrder[T any](rows []T, orderBy string, key func(T) (time.Time, uint)) {
	asc := orderBy == "created_at ASC, id ASC"
	desc := orderBy == "created_at DESC, id DESC"
	sort.SliceStable(rows, func(i, j int) bool {
		ci, idi := key(rows[i])
		cj, idj := key(rows[j])
		switch {
		case asc:
			if !ci.Equal(cj) {
				return ci.Before(cj)
			}
			return idi < idj
		case desc:
			if !ci.Equal(cj) {
				return ci.After(cj)
			}
			return idi > idj
		default:
			return idi > idj
		}
	})
}

// window applies SQL-style limit/offset to a slice
func window[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
