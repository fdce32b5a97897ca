package accessgrants

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"clinical-sharing/internal/domain/access"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Grant{}}
}

func (r *testRepo) ReplaceActive(ctx context.Context, g Grant) (*Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var prev *Grant
	for id, cur := range r.byID {
		if cur.PatientID == g.PatientID && cur.GranteeUserID == g.GranteeUserID && cur.Live() {
			at := g.CreatedAt
			cur.Status = StatusSuperseded
			cur.RevokedAt = &at
			r.byID[id] = cur
			c := cur
			prev = &c
		}
	}
	r.byID[g.ID] = g
	return prev, nil
}

func (r *testRepo) UpdateLevel(ctx context.Context, id string, level access.Level, at time.Time) (Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok || !g.Live() {
		return Grant{}, access.ErrNotFound
	}
	g.Level = level
	g.UpdatedAt = at
	r.byID[id] = g
	return g, nil
}

func (r *testRepo) MarkRevoked(ctx context.Context, id string, at time.Time) (Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok {
		return Grant{}, access.ErrNotFound
	}
	if !g.Live() {
		return g, nil
	}
	g.Status = StatusRevoked
	g.RevokedAt = &at
	g.UpdatedAt = at
	r.byID[id] = g
	return g, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok {
		return Grant{}, access.ErrNotFound
	}
	return g, nil
}

func (r *testRepo) GetActiveGrant(ctx context.Context, patientID, granteeUserID string) (Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.byID {
		if g.PatientID == patientID && g.GranteeUserID == granteeUserID && g.Live() {
			return g, nil
		}
	}
	return Grant{}, access.ErrNotFound
}

func (r *testRepo) ListByPatient(ctx context.Context, patientID string) ([]Grant, error) {
	return r.filter(func(g Grant) bool { return g.PatientID == patientID }), nil
}

func (r *testRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]Grant, error) {
	return r.filter(func(g Grant) bool { return g.GranteeUserID == granteeUserID }), nil
}

func (r *testRepo) filter(keep func(Grant) bool) []Grant {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Grant
	for _, g := range r.byID {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type testOwners map[string]string

func (o testOwners) OwnerOf(ctx context.Context, patientID string) (string, error) {
	owner, ok := o[patientID]
	if !ok {
		return "", fmt.Errorf("patient %s: %w", patientID, access.ErrNotFound)
	}
	return owner, nil
}

type testDirectory map[string]string // email -> userID

func (d testDirectory) ResolveUserIDByEmail(ctx context.Context, email string) (string, error) {
	id, ok := d[email]
	if !ok {
		return "", access.ErrNotFound
	}
	return id, nil
}

func (d testDirectory) Exists(ctx context.Context, userID string) (bool, error) {
	for _, id := range d {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

type testCaps map[string]bool // userID -> records:share

func (c testCaps) Has(ctx context.Context, userID, capability string) (bool, error) {
	return c[userID], nil
}

func newTestService(t *testing.T, now *time.Time, opts ...Option) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo, testOwners{"patient-p": "user-a", "patient-q": "user-c"}, opts...)
	svc.now = func() time.Time { return *now }
	return svc, repo
}

func ptrTime(t time.Time) *time.Time { return &t }

// -------------------------
// Tests
// -------------------------

func TestService_ExpiredGrantThenRegrant_OnlyOneActive(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	g1, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID:     "patient-p",
		GrantorUserID: "user-a",
		GranteeUserID: "user-b",
		Level:         access.LevelRead,
		ExpiresAt:     ptrTime(now.Add(24 * time.Hour)),
	})
	if err != nil {
		t.Fatalf("CreateOrReplace #1 error: %v", err)
	}

	d, err := svc.Evaluator().Check(ctx, "user-b", "patient-p", access.ActionViewNote, now)
	if err != nil || !d.Granted {
		t.Fatalf("expected read granted before expiry, got %+v err=%v", d, err)
	}

	// Un día y un segundo después, sin revocar
	now = now.Add(24*time.Hour + time.Second)
	d, err = svc.Evaluator().Check(ctx, "user-b", "patient-p", access.ActionViewNote, now)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if d.Granted {
		t.Fatalf("expected expired grant to be denied")
	}
	if d.Reason != access.ReasonExpired {
		t.Fatalf("expected reason %s, got %s", access.ReasonExpired, d.Reason)
	}

	g2, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID:     "patient-p",
		GrantorUserID: "user-a",
		GranteeUserID: "user-b",
		Level:         access.LevelWrite,
	})
	if err != nil {
		t.Fatalf("CreateOrReplace #2 error: %v", err)
	}
	if g2.ID == g1.ID {
		t.Fatalf("expected a new grant identity")
	}

	d, err = svc.Evaluator().Check(ctx, "user-b", "patient-p", access.ActionWriteNote, now)
	if err != nil || !d.Granted || d.Level != access.LevelWrite {
		t.Fatalf("expected write granted, got %+v err=%v", d, err)
	}

	items, err := svc.ListForPatient(ctx, "patient-p")
	if err != nil {
		t.Fatalf("ListForPatient error: %v", err)
	}
	count := 0
	for _, g := range items {
		if g.GranteeUserID == "user-b" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 active grant for user-b, got %d", count)
	}
}

func TestService_Create_RejectsSelfGrantAndUnknownPatient(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)

	_, err := svc.CreateOrReplace(context.Background(), CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-a", Level: access.LevelRead,
	})
	if !errors.Is(err, access.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for self grant, got %v", err)
	}

	_, err = svc.CreateOrReplace(context.Background(), CreateInput{
		PatientID: "missing", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
	})
	if !errors.Is(err, access.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown patient, got %v", err)
	}

	_, err = svc.CreateOrReplace(context.Background(), CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.Level("owner"),
	})
	if !errors.Is(err, access.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown level, got %v", err)
	}

	_, err = svc.CreateOrReplace(context.Background(), CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
		ExpiresAt: ptrTime(now.Add(-time.Minute)),
	})
	if !errors.Is(err, access.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for past expiry, got %v", err)
	}
}

func TestService_Create_RequiresAdmin(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	// Extraño sin grant
	_, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-x", GranteeUserID: "user-b", Level: access.LevelRead,
	})
	if !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// Con write no alcanza
	if _, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelWrite,
	}); err != nil {
		t.Fatalf("owner grant error: %v", err)
	}
	_, err = svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-b", GranteeUserID: "user-c", Level: access.LevelRead,
	})
	if !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for write holder, got %v", err)
	}

	// Con admin sí
	if _, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelAdmin,
	}); err != nil {
		t.Fatalf("owner grant error: %v", err)
	}
	g, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-b", GranteeUserID: "user-c", Level: access.LevelRead,
	})
	if err != nil {
		t.Fatalf("admin grant error: %v", err)
	}
	if g.GrantorUserID != "user-b" {
		t.Fatalf("expected grantor user-b, got %s", g.GrantorUserID)
	}
}

func TestService_ReviseLevel_Authorization(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	g, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
	})
	if err != nil {
		t.Fatalf("CreateOrReplace error: %v", err)
	}

	// El receptor no puede subirse el nivel
	if _, err := svc.ReviseLevel(ctx, g.ID, access.LevelAdmin, "user-b"); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	now = now.Add(time.Minute)
	updated, err := svc.ReviseLevel(ctx, g.ID, access.LevelWrite, "user-a")
	if err != nil {
		t.Fatalf("ReviseLevel error: %v", err)
	}
	if updated.Level != access.LevelWrite || !updated.UpdatedAt.Equal(now) {
		t.Fatalf("expected level write updated at now, got %+v", updated)
	}

	if _, err := svc.ReviseLevel(ctx, "missing", access.LevelWrite, "user-a"); !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Revoke(ctx, g.ID, "user-a"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if _, err := svc.ReviseLevel(ctx, g.ID, access.LevelRead, "user-a"); !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after revoke, got %v", err)
	}
}

func TestService_ReviseLevel_RevokedGrantorCannotRaise(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	gB, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelAdmin,
	})
	if err != nil {
		t.Fatalf("CreateOrReplace (a->b) error: %v", err)
	}
	gC, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-b", GranteeUserID: "user-c", Level: access.LevelWrite,
	})
	if err != nil {
		t.Fatalf("CreateOrReplace (b->c) error: %v", err)
	}

	now = now.Add(time.Minute)
	if err := svc.Revoke(ctx, gB.ID, "user-a"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}

	// Sin admin vigente, el grantor ya no puede escalar su grant
	if _, err := svc.ReviseLevel(ctx, gC.ID, access.LevelAdmin, "user-b"); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied on raise, got %v", err)
	}
	d, err := svc.Evaluator().Check(ctx, "user-c", "patient-p", access.ActionManageSharing, now)
	if err != nil || d.Granted {
		t.Fatalf("expected user-c without admin, got %+v err=%v", d, err)
	}

	// Bajar el nivel sigue abierto al grantor
	updated, err := svc.ReviseLevel(ctx, gC.ID, access.LevelRead, "user-b")
	if err != nil {
		t.Fatalf("ReviseLevel downgrade error: %v", err)
	}
	if updated.Level != access.LevelRead {
		t.Fatalf("expected read, got %s", updated.Level)
	}

	// El owner sí puede subirlo
	if _, err := svc.ReviseLevel(ctx, gC.ID, access.LevelWrite, "user-a"); err != nil {
		t.Fatalf("owner raise error: %v", err)
	}
}

func TestService_ReviseLevel_ExpiredIsNotFound(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	g, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
		ExpiresAt: ptrTime(now.Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("CreateOrReplace error: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := svc.ReviseLevel(ctx, g.ID, access.LevelWrite, "user-a"); !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired grant, got %v", err)
	}
}

func TestService_Revoke_IdempotentAndAuthorized(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, &now)
	ctx := context.Background()

	g, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
	})
	if err != nil {
		t.Fatalf("CreateOrReplace error: %v", err)
	}

	if err := svc.Revoke(ctx, g.ID, "user-x"); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	if err := svc.Revoke(ctx, g.ID, "user-a"); err != nil {
		t.Fatalf("Revoke #1 error: %v", err)
	}
	revokedAt := *repo.byID[g.ID].RevokedAt

	now = now.Add(time.Hour)
	if err := svc.Revoke(ctx, g.ID, "user-a"); err != nil {
		t.Fatalf("Revoke #2 should be a no-op, got %v", err)
	}
	stored := repo.byID[g.ID]
	if stored.Status != StatusRevoked || !stored.RevokedAt.Equal(revokedAt) {
		t.Fatalf("expected revoke to be kept as is, got %+v", stored)
	}

	d, err := svc.Evaluator().Check(ctx, "user-b", "patient-p", access.ActionViewAppointment, now)
	if err != nil || d.Granted {
		t.Fatalf("expected denied after revoke, got %+v err=%v", d, err)
	}

	items, _ := svc.ListForPatient(ctx, "patient-p")
	if len(items) != 0 {
		t.Fatalf("expected no active grants, got %d", len(items))
	}
}

func TestService_List_ExpiringSoonAndReceived(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	if _, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
		ExpiresAt: ptrTime(now.Add(3 * 24 * time.Hour)),
	}); err != nil {
		t.Fatalf("grant #1 error: %v", err)
	}
	now = now.Add(time.Second)
	if _, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-q", GrantorUserID: "user-c", GranteeUserID: "user-b", Level: access.LevelWrite,
		ExpiresAt: ptrTime(now.Add(30 * 24 * time.Hour)),
	}); err != nil {
		t.Fatalf("grant #2 error: %v", err)
	}

	items, err := svc.ListReceivedBy(ctx, "user-b")
	if err != nil {
		t.Fatalf("ListReceivedBy error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(items))
	}
	if items[0].PatientID != "patient-p" || !items[0].ExpiringSoon {
		t.Fatalf("expected patient-p first and expiring soon, got %+v", items[0])
	}
	if items[1].PatientID != "patient-q" || items[1].ExpiringSoon {
		t.Fatalf("expected patient-q not expiring soon, got %+v", items[1])
	}

	// Ya vencido: fuera de la lista
	now = now.Add(4 * 24 * time.Hour)
	items, _ = svc.ListReceivedBy(ctx, "user-b")
	if len(items) != 1 || items[0].PatientID != "patient-q" {
		t.Fatalf("expected only patient-q after expiry, got %+v", items)
	}
}

func TestService_ListForPatientAs_SingleInstant(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	if _, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
		ExpiresAt: ptrTime(now.Add(30 * time.Minute)),
	}); err != nil {
		t.Fatalf("CreateOrReplace error: %v", err)
	}

	// Cada lectura del reloj avanza una hora: una segunda lectura vería el grant vencido.
	reads := 0
	svc.now = func() time.Time {
		reads++
		return now.Add(time.Duration(reads-1) * time.Hour)
	}

	items, err := svc.ListForPatientAs(ctx, "user-a", "patient-p")
	if err != nil {
		t.Fatalf("ListForPatientAs error: %v", err)
	}
	if reads != 1 {
		t.Fatalf("expected one clock read, got %d", reads)
	}
	if len(items) != 1 || !items[0].ExpiringSoon {
		t.Fatalf("expected the grant listed as expiring soon, got %+v", items)
	}

	if _, err := svc.ListForPatientAs(ctx, "user-b", "patient-p"); !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for read grantee, got %v", err)
	}
}

func TestService_ShareByEmail(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now, WithUserDirectory(testDirectory{"b@example.com": "user-b"}))
	ctx := context.Background()

	g, err := svc.ShareByEmail(ctx, ShareByEmailInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeEmail: " B@Example.com ", Level: access.LevelRead,
	})
	if err != nil {
		t.Fatalf("ShareByEmail error: %v", err)
	}
	if g.GranteeUserID != "user-b" {
		t.Fatalf("expected grantee user-b, got %s", g.GranteeUserID)
	}

	_, err = svc.ShareByEmail(ctx, ShareByEmailInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeEmail: "nobody@example.com", Level: access.LevelRead,
	})
	if !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Con directorio, un user id desconocido es inválido
	_, err = svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "ghost", Level: access.LevelRead,
	})
	if !errors.Is(err, access.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown grantee, got %v", err)
	}
}

type opRecorder struct {
	mu  sync.Mutex
	ops []string
}

func (r *opRecorder) GrantOp(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op+"/"+outcome)
}

type downDirectory struct{}

func (downDirectory) ResolveUserIDByEmail(ctx context.Context, email string) (string, error) {
	return "", errors.New("directory down")
}

func (downDirectory) Exists(ctx context.Context, userID string) (bool, error) {
	return false, errors.New("directory down")
}

func TestService_ShareByEmail_ObservesResolveFailures(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	rec := &opRecorder{}
	svc, _ := newTestService(t, &now, WithObserver(rec), WithUserDirectory(testDirectory{"b@example.com": "user-b"}))

	if _, err := svc.ShareByEmail(ctx, ShareByEmailInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeEmail: "nobody@example.com", Level: access.LevelRead,
	}); !errors.Is(err, access.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ShareByEmail(ctx, ShareByEmailInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeEmail: "b@example.com", Level: access.LevelRead,
	}); err != nil {
		t.Fatalf("ShareByEmail error: %v", err)
	}

	down := &opRecorder{}
	svcDown, _ := newTestService(t, &now, WithObserver(down), WithUserDirectory(downDirectory{}))
	if _, err := svcDown.ShareByEmail(ctx, ShareByEmailInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeEmail: "b@example.com", Level: access.LevelRead,
	}); !errors.Is(err, access.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}

	if got := strings.Join(rec.ops, ","); got != "create/not_found,create/ok" {
		t.Fatalf("unexpected ops: %s", got)
	}
	if got := strings.Join(down.ops, ","); got != "create/unavailable" {
		t.Fatalf("unexpected ops: %s", got)
	}
}

func TestService_Create_RequiresShareCapability(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now, WithCapabilities(testCaps{"user-c": true}))
	ctx := context.Background()

	_, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-p", GrantorUserID: "user-a", GranteeUserID: "user-b", Level: access.LevelRead,
	})
	if !errors.Is(err, access.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied without capability, got %v", err)
	}

	if _, err := svc.CreateOrReplace(ctx, CreateInput{
		PatientID: "patient-q", GrantorUserID: "user-c", GranteeUserID: "user-b", Level: access.LevelRead,
	}); err != nil {
		t.Fatalf("expected grant with capability, got %v", err)
	}
}
