package registration

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// Fakes en memoria para los puertos del flujo de registro. Guardan copias por
// valor y están protegidos con mutex para los tests de concurrencia.

type fakeAccountRepo struct {
	mu         sync.Mutex
	byEmail    map[string]entity.Account
	failUpdate error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]entity.Account)}
}

func (r *fakeAccountRepo) Create(a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.byEmail[a.Email] = *a
	return nil
}

func (r *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byEmail {
		if a.ID == id {
			copia := a
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByEmail(email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copia := a
	return &copia, nil
}

func (r *fakeAccountRepo) Update(a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.byEmail[a.Email] = *a
	return nil
}

func (r *fakeAccountRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Account, error) {
	return nil, nil
}

func (r *fakeAccountRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

func (r *fakeAccountRepo) snapshot() map[string]entity.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := make(map[string]entity.Account, len(r.byEmail))
	for k, v := range r.byEmail {
		s[k] = v
	}
	return s
}

func (r *fakeAccountRepo) restore(s map[string]entity.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail = s
}

type fakeVerificationRepo struct {
	mu               sync.Mutex
	byEmail          map[string]entity.EmailVerification
	failMarkVerified error
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{byEmail: make(map[string]entity.EmailVerification)}
}

func (r *fakeVerificationRepo) GetByEmail(email string) (*entity.EmailVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copia := v
	return &copia, nil
}

func (r *fakeVerificationRepo) Upsert(v *entity.EmailVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[v.Email] = *v
	return nil
}

func (r *fakeVerificationRepo) GetActive(email, code string, now time.Time) (*entity.EmailVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byEmail[email]
	if !ok || v.Code != code || v.IsVerified || !v.ExpiresAt.After(now) {
		return nil, nil
	}
	copia := v
	return &copia, nil
}

func (r *fakeVerificationRepo) MarkVerified(email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failMarkVerified != nil {
		return r.failMarkVerified
	}
	v, ok := r.byEmail[email]
	if !ok {
		return domain.ErrNotFound
	}
	v.IsVerified = true
	v.VerifiedAt = &at
	r.byEmail[email] = v
	return nil
}

func (r *fakeVerificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

func (r *fakeVerificationRepo) snapshot() map[string]entity.EmailVerification {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := make(map[string]entity.EmailVerification, len(r.byEmail))
	for k, v := range r.byEmail {
		s[k] = v
	}
	return s
}

func (r *fakeVerificationRepo) restore(s map[string]entity.EmailVerification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail = s
}

type fakeBusinessRepo struct {
	mu         sync.Mutex
	byID       map[string]entity.Business
	failCreate error
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{byID: make(map[string]entity.Business)}
}

func (r *fakeBusinessRepo) Create(b *entity.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.byID[b.ID] = *b
	return nil
}

func (r *fakeBusinessRepo) GetByID(id string) (*entity.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copia := b
	return &copia, nil
}

func (r *fakeBusinessRepo) Update(b *entity.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[b.ID] = *b
	return nil
}

func (r *fakeBusinessRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *fakeBusinessRepo) snapshot() map[string]entity.Business {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := make(map[string]entity.Business, len(r.byID))
	for k, v := range r.byID {
		s[k] = v
	}
	return s
}

func (r *fakeBusinessRepo) restore(s map[string]entity.Business) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = s
}

// fakeTxRunner emula la atomicidad: toma un snapshot de los tres stores antes
// de ejecutar fn y los restaura completos si fn devuelve error.
type fakeTxRunner struct {
	acc *fakeAccountRepo
	ver *fakeVerificationRepo
	biz *fakeBusinessRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	verificationRepo repository.VerificationRepository,
	businessRepo repository.BusinessRepository,
) error) error {
	accSnap := t.acc.snapshot()
	verSnap := t.ver.snapshot()
	bizSnap := t.biz.snapshot()
	if err := fn(t.acc, t.ver, t.biz); err != nil {
		t.acc.restore(accSnap)
		t.ver.restore(verSnap)
		t.biz.restore(bizSnap)
		return err
	}
	return nil
}

type sentCode struct {
	email string
	code  string
}

type fakeCodeMailer struct {
	mu    sync.Mutex
	sends []sentCode
	fail  error
}

func (m *fakeCodeMailer) SendVerificationCode(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sends = append(m.sends, sentCode{email: email, code: code})
	return nil
}

func (m *fakeCodeMailer) sent() []sentCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentCode(nil), m.sends...)
}

type fakeWelcomeMailer struct {
	mu       sync.Mutex
	sends    int
	fail     error
	notified chan struct{}
}

func newFakeWelcomeMailer() *fakeWelcomeMailer {
	return &fakeWelcomeMailer{notified: make(chan struct{}, 4)}
}

func (m *fakeWelcomeMailer) SendWelcome(email, name, businessName string) error {
	m.mu.Lock()
	m.sends++
	fail := m.fail
	m.mu.Unlock()
	m.notified <- struct{}{}
	return fail
}
