package services

import (
	"sort"
	"sync"
	"time"

	"aiforge_backend/internal/email"
	"aiforge_backend/internal/models"
	"aiforge_backend/internal/repositories"
)

// In-memory фейки репозиториев для юнит-тестов сервисного слоя.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(emailAddr string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == emailAddr {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateProfile(userID uint, name, phone, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Name, u.Phone, u.Address = name, phone, address
	return nil
}

func (r *fakeUserRepo) UpdateStatus(userID uint, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) Delete(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *r.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakePendingRepo struct {
	mu      sync.Mutex
	pending map[string]*models.PendingRegistration
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{pending: make(map[string]*models.PendingRegistration)}
}

func (r *fakePendingRepo) FindByEmail(emailAddr string) (*models.PendingRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pending[emailAddr]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrPendingNotFound
}

func (r *fakePendingRepo) Replace(pending *models.PendingRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *pending
	r.pending[pending.Email] = &copied
	return nil
}

func (r *fakePendingRepo) UpdateCode(emailAddr, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[emailAddr]
	if !ok {
		return repositories.ErrPendingNotFound
	}
	p.Code = code
	p.ExpiresAt = expiresAt
	return nil
}

func (r *fakePendingRepo) DeleteByEmail(emailAddr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[emailAddr]; !ok {
		return repositories.ErrPendingNotFound
	}
	delete(r.pending, emailAddr)
	return nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	nextID uint
	codes  []*models.PasswordResetCode
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{nextID: 1}
}

func (r *fakeResetRepo) Create(code *models.PasswordResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	code.ID = r.nextID
	r.nextID++
	copied := *code
	r.codes = append(r.codes, &copied)
	return nil
}

func (r *fakeResetRepo) FindLatestByEmail(emailAddr string) (*models.PasswordResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].Email == emailAddr && !r.codes[i].Used {
			copied := *r.codes[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrResetCodeNotFound
}

func (r *fakeResetRepo) MarkUsed(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.ID == id && !c.Used {
			c.Used = true
			return nil
		}
	}
	return repositories.ErrResetCodeNotFound
}

func (r *fakeResetRepo) DeleteExpired() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var kept []*models.PasswordResetCode
	var deleted int64
	for _, c := range r.codes {
		if c.Used || now.After(c.ExpiresAt) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.codes = kept
	return deleted, nil
}

type fakePlanRepo struct {
	mu         sync.Mutex
	nextID     uint
	plans      map[uint]*models.Plan
	referenced map[uint]bool
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		nextID:     1,
		plans:      make(map[uint]*models.Plan),
		referenced: make(map[uint]bool),
	}
}

func (r *fakePlanRepo) FindByID(id uint) (*models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.plans[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrPlanNotFound
}

func (r *fakePlanRepo) FindByName(name string) (*models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPlanNotFound
}

func (r *fakePlanRepo) FindAll() ([]models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *fakePlanRepo) Create(plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.Popular && r.hasOtherPopular(0) {
		return repositories.ErrPopularPlanExists
	}
	plan.ID = r.nextID
	r.nextID++
	copied := *plan
	r.plans[plan.ID] = &copied
	return nil
}

func (r *fakePlanRepo) Update(plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[plan.ID]; !ok {
		return repositories.ErrPlanNotFound
	}
	if plan.Popular && r.hasOtherPopular(plan.ID) {
		return repositories.ErrPopularPlanExists
	}
	copied := *plan
	r.plans[plan.ID] = &copied
	return nil
}

func (r *fakePlanRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return repositories.ErrPlanNotFound
	}
	if r.referenced[id] {
		return repositories.ErrPlanReferenced
	}
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) hasOtherPopular(excludeID uint) bool {
	for _, p := range r.plans {
		if p.Popular && p.ID != excludeID {
			return true
		}
	}
	return false
}

type fakeSubscriptionRepo struct {
	mu       sync.Mutex
	nextID   uint
	subs     []*models.Subscription
	planRepo *fakePlanRepo
}

func newFakeSubscriptionRepo(planRepo *fakePlanRepo) *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{nextID: 1, planRepo: planRepo}
}

func (r *fakeSubscriptionRepo) Create(sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.ID = r.nextID
	r.nextID++
	copied := *sub
	r.subs = append(r.subs, &copied)
	if r.planRepo != nil {
		r.planRepo.mu.Lock()
		r.planRepo.referenced[sub.PlanID] = true
		r.planRepo.mu.Unlock()
	}
	return nil
}

func (r *fakeSubscriptionRepo) withPlan(sub models.Subscription) models.Subscription {
	if r.planRepo != nil {
		if p, err := r.planRepo.FindByID(sub.PlanID); err == nil {
			sub.Plan = *p
		}
	}
	return sub
}

func (r *fakeSubscriptionRepo) FindActiveByUserID(userID uint) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var best *models.Subscription
	for _, s := range r.subs {
		if s.UserID == userID && s.IsActive(now) {
			if best == nil || s.EndDate.After(best.EndDate) {
				best = s
			}
		}
	}
	if best == nil {
		return nil, repositories.ErrSubscriptionNotFound
	}
	copied := r.withPlan(*best)
	return &copied, nil
}

func (r *fakeSubscriptionRepo) FindByUserID(userID uint) ([]models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Subscription
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, r.withPlan(*s))
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FindAll(limit, offset int) ([]models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Subscription
	for i, s := range r.subs {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, r.withPlan(*s))
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) IncrementUsage(subID uint, category models.CreditCategory, amount int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.ID != subID {
			continue
		}
		if s.UsedFor(category)+amount > s.LimitFor(category) {
			return false, nil
		}
		switch category {
		case models.CreditScript:
			s.ScriptUsed += amount
		case models.CreditVoice:
			s.VoiceUsed += amount
		case models.CreditImage:
			s.ImageUsed += amount
		case models.CreditVideo:
			s.VideoUsed += amount
		}
		return true, nil
	}
	return false, nil
}

func (r *fakeSubscriptionRepo) MarkExpired() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var count int64
	for _, s := range r.subs {
		if s.Status == models.SubscriptionStatusActive && now.After(s.EndDate) {
			s.Status = models.SubscriptionStatusExpired
			count++
		}
	}
	return count, nil
}

// recordingEmailProvider фиксирует отправленные коды.
// Отправка в сервисе асинхронная, поэтому все под мьютексом.
type recordingEmailProvider struct {
	mu    sync.Mutex
	codes map[string]string
}

func newRecordingEmailProvider() *recordingEmailProvider {
	return &recordingEmailProvider{codes: make(map[string]string)}
}

func (p *recordingEmailProvider) Send(msg *email.Email) error { return nil }
func (p *recordingEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	return nil
}
func (p *recordingEmailProvider) SendVerification(to string, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codes[to] = code
	return nil
}
func (p *recordingEmailProvider) SendPasswordReset(to string, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codes[to] = code
	return nil
}
func (p *recordingEmailProvider) Validate() error { return nil }
func (p *recordingEmailProvider) Close() error    { return nil }
