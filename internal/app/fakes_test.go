package app

import (
	"context"
	"sync"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/application"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/auth"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/offer"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/profile"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/integration/mailer"
)

type fakeUserRepo struct {
	mu         sync.Mutex
	byID       map[common.UUID]*user.User
	byUsername map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[common.UUID]*user.User),
		byUsername: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUsername[account.Username]; exists {
		return nil, common.NewError(common.CodeConflict, "username already taken", nil)
	}
	if account.ID == "" {
		account.ID = common.NewUUID()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	stored := account
	r.byID[stored.ID] = &stored
	r.byUsername[stored.Username] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *account
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byUsername[username]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *account
	return &copied, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	accounts := make([]user.User, 0, len(r.byID))
	for _, account := range r.byID {
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.byUsername, account.Username)
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[user.Role]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[user.Role]int)
	for _, account := range r.byID {
		counts[account.Role]++
	}
	return counts, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[common.UUID]*profile.StudentProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[common.UUID]*profile.StudentProfile)}
}

func (r *fakeProfileRepo) GetByStudent(ctx context.Context, studentID common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.profiles[studentID]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "profile not found", nil)
	}
	copied := *stored
	copied.Projects = append([]profile.Project(nil), stored.Projects...)
	return &copied, nil
}

func (r *fakeProfileRepo) UpsertCareerGoal(ctx context.Context, studentID common.UUID, goal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.ensureLocked(studentID)
	stored.CareerGoal = goal
	return nil
}

func (r *fakeProfileRepo) AddProject(ctx context.Context, studentID common.UUID, project profile.Project) (*profile.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.ensureLocked(studentID)
	project.ID = common.NewUUID()
	project.CreatedAt = time.Now().UTC()
	stored.Projects = append(stored.Projects, project)
	copied := project
	return &copied, nil
}

func (r *fakeProfileRepo) UpdateProject(ctx context.Context, studentID, projectID common.UUID, patch profile.ProjectPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.profiles[studentID]
	if stored == nil {
		return common.NewError(common.CodeNotFound, "project not found", nil)
	}
	for i := range stored.Projects {
		if stored.Projects[i].ID != projectID {
			continue
		}
		if patch.Title != nil {
			stored.Projects[i].Title = *patch.Title
		}
		if patch.Description != nil {
			stored.Projects[i].Description = *patch.Description
		}
		if patch.ImageURL != nil {
			stored.Projects[i].ImageURL = *patch.ImageURL
		}
		if patch.Link != nil {
			stored.Projects[i].Link = *patch.Link
		}
		return nil
	}
	return common.NewError(common.CodeNotFound, "project not found", nil)
}

func (r *fakeProfileRepo) RemoveProject(ctx context.Context, studentID, projectID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.profiles[studentID]
	if stored == nil {
		return nil
	}
	kept := stored.Projects[:0]
	for _, project := range stored.Projects {
		if project.ID != projectID {
			kept = append(kept, project)
		}
	}
	stored.Projects = kept
	return nil
}

func (r *fakeProfileRepo) ensureLocked(studentID common.UUID) *profile.StudentProfile {
	stored := r.profiles[studentID]
	if stored == nil {
		stored = &profile.StudentProfile{StudentID: studentID}
		r.profiles[studentID] = stored
	}
	return stored
}

type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[common.UUID]*offer.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[common.UUID]*offer.Offer)}
}

func (r *fakeOfferRepo) Create(ctx context.Context, posting offer.Offer) (*offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting.ID = common.NewUUID()
	posting.CreatedAt = time.Now().UTC()
	stored := posting
	r.offers[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id common.UUID) (*offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.offers[id]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeOfferRepo) UpdateStatus(ctx context.Context, id common.UUID, status offer.Status, rejectionReason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.offers[id]
	if stored == nil {
		return common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	stored.Status = status
	stored.RejectionReason = rejectionReason
	return nil
}

func (r *fakeOfferRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listed := []offer.Offer{}
	for _, stored := range r.offers {
		if stored.CompanyID == companyID {
			listed = append(listed, *stored)
		}
	}
	return listed, nil
}

func (r *fakeOfferRepo) ListByStatus(ctx context.Context, status offer.Status) ([]offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listed := []offer.Offer{}
	for _, stored := range r.offers {
		if stored.Status == status {
			listed = append(listed, *stored)
		}
	}
	return listed, nil
}

func (r *fakeOfferRepo) CountByStatus(ctx context.Context) (map[offer.Status]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[offer.Status]int)
	for _, stored := range r.offers {
		counts[stored.Status]++
	}
	return counts, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[common.UUID]*application.Application
	// offers lets ListByCompany resolve offer ownership the way the SQL
	// join does.
	offers *fakeOfferRepo
}

func newFakeApplicationRepo(offers *fakeOfferRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[common.UUID]*application.Application),
		offers:       offers,
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.applications {
		if stored.OfferID == app.OfferID && stored.StudentID == app.StudentID {
			return nil, common.NewError(common.CodeDuplicateApplication, "already applied to this offer", nil)
		}
	}
	app.ID = common.NewUUID()
	app.AppliedAt = time.Now().UTC()
	stored := app
	stored.Projects = append([]profile.Project{}, app.Projects...)
	r.applications[stored.ID] = &stored
	return cloneApplication(&stored), nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.applications[id]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return cloneApplication(stored), nil
}

func (r *fakeApplicationRepo) FindByOfferAndStudent(ctx context.Context, offerID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.applications {
		if stored.OfferID == offerID && stored.StudentID == studentID {
			return cloneApplication(stored), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.applications[id]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	stored.Status = status
	return cloneApplication(stored), nil
}

func (r *fakeApplicationRepo) ListByOffer(ctx context.Context, offerID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listed := []application.Application{}
	for _, stored := range r.applications {
		if stored.OfferID == offerID {
			listed = append(listed, *cloneApplication(stored))
		}
	}
	return listed, nil
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listed := []application.Application{}
	for _, stored := range r.applications {
		if stored.StudentID == studentID {
			listed = append(listed, *cloneApplication(stored))
		}
	}
	return listed, nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listed := []application.Application{}
	for _, stored := range r.applications {
		posting, err := r.offers.GetByID(ctx, stored.OfferID)
		if err != nil {
			continue
		}
		if posting.CompanyID == companyID {
			listed = append(listed, *cloneApplication(stored))
		}
	}
	return listed, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listed := []application.Application{}
	for _, stored := range r.applications {
		listed = append(listed, *cloneApplication(stored))
	}
	return listed, nil
}

func (r *fakeApplicationRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.applications), nil
}

func cloneApplication(stored *application.Application) *application.Application {
	copied := *stored
	copied.Projects = append([]profile.Project{}, stored.Projects...)
	return &copied
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]auth.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]auth.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Store(ctx context.Context, token auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	copied := value
	return &copied, nil
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.tokens[token]
	if !ok {
		return common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	value.RevokedAt = &revokedAt
	r.tokens[token] = value
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	revokedAt := time.Unix(revokedAtUnix, 0).UTC()
	for key, value := range r.tokens {
		if value.UserID == userID {
			value.RevokedAt = &revokedAt
			r.tokens[key] = value
		}
	}
	return nil
}

type fakeMailer struct {
	mu      sync.Mutex
	sendErr error
	sent    []string
}

func (m *fakeMailer) SendCredentials(ctx context.Context, recipient string, data mailer.CredentialsData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, recipient)
	return nil
}
