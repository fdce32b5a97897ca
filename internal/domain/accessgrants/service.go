package accessgrants

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/users"
	"clinical-sharing/internal/platform/logger"
	"clinical-sharing/internal/ports/capabilities"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	owners OwnerLookup
	eval   *Evaluator
	users  UserDirectory          // opcional
	caps   capabilities.Resolver // opcional
	log    logger.Logger
	obs    OpObserver // opcional

	now          func() time.Time
	expiringSoon time.Duration
}

type Option func(*Service)

// OpObserver recibe cada mutación con su resultado (access.Kind).
type OpObserver interface {
	GrantOp(op, outcome string)
}

func WithObserver(o OpObserver) Option {
	return func(s *Service) { s.obs = o }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithUserDirectory habilita validación de grantee y ShareByEmail.
func WithUserDirectory(d UserDirectory) Option {
	return func(s *Service) { s.users = d }
}

// WithCapabilities exige la capability records:share al crear grants.
func WithCapabilities(r capabilities.Resolver) Option {
	return func(s *Service) { s.caps = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithExpiringSoonWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.expiringSoon = d
		}
	}
}

func NewService(repo Repository, owners OwnerLookup, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		owners:       owners,
		eval:         NewEvaluator(repo, owners),
		log:          logger.Nop(),
		now:          time.Now,
		expiringSoon: DefaultExpiringSoonWindow,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Evaluator expone el evaluador para los lectores (adapters de timeline, handlers).
func (s *Service) Evaluator() *Evaluator { return s.eval }

// Now es el reloj del servicio; los handlers lo usan para tomar un único snapshot por request.
func (s *Service) Now() time.Time { return s.now() }

type CreateInput struct {
	PatientID     string
	GrantorUserID string
	GranteeUserID string
	Level         access.Level
	ExpiresAt     *time.Time
}

// CreateOrReplace crea el grant del par (patient, grantee), reemplazando atómicamente
// cualquier grant vivo anterior. El grantor necesita admin (u ownership) sobre el paciente.
func (s *Service) CreateOrReplace(ctx context.Context, in CreateInput) (_ Grant, err error) {
	defer func() { s.observe("create", err) }()

	patientID := strings.TrimSpace(in.PatientID)
	grantorID := strings.TrimSpace(in.GrantorUserID)
	granteeID := strings.TrimSpace(in.GranteeUserID)

	if patientID == "" || grantorID == "" || granteeID == "" {
		return Grant{}, fmt.Errorf("%w: patient, grantor and grantee are required", access.ErrInvalidArgument)
	}
	if grantorID == granteeID {
		return Grant{}, fmt.Errorf("%w: cannot grant access to yourself", access.ErrInvalidArgument)
	}
	if !in.Level.Valid() {
		return Grant{}, fmt.Errorf("%w: unknown access level %q", access.ErrInvalidArgument, in.Level)
	}

	now := s.now()

	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return Grant{}, fmt.Errorf("%w: expires_at must be in the future", access.ErrInvalidArgument)
	}

	snap, err := s.eval.Snapshot(ctx, grantorID, patientID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return Grant{}, fmt.Errorf("%w: unknown patient %s", access.ErrInvalidArgument, patientID)
		}
		return Grant{}, err
	}
	if granteeID == snap.OwnerUserID {
		return Grant{}, fmt.Errorf("%w: grantee already owns the patient", access.ErrInvalidArgument)
	}

	if d := access.Evaluate(snap, access.ActionManageSharing, now); !d.Granted {
		s.log.Warn("grant.denied", map[string]any{
			"patient_id": patientID,
			"grantor_id": grantorID,
			"reason":     d.Reason,
		})
		return Grant{}, fmt.Errorf("%w: grantor lacks admin access", access.ErrPermissionDenied)
	}

	if err := s.requireShareCapability(ctx, grantorID); err != nil {
		return Grant{}, err
	}

	if err := s.ensureUserExists(ctx, granteeID); err != nil {
		return Grant{}, err
	}

	g := Grant{
		ID:            uuid.NewString(),
		PatientID:     patientID,
		GrantorUserID: grantorID,
		GranteeUserID: granteeID,
		Level:         in.Level,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     in.ExpiresAt,
	}

	prev, err := s.repo.ReplaceActive(ctx, g)
	if err != nil {
		return Grant{}, err
	}

	fields := map[string]any{
		"grant_id":   g.ID,
		"patient_id": patientID,
		"grantor_id": grantorID,
		"grantee_id": granteeID,
		"level":      string(g.Level),
	}
	if prev != nil {
		fields["superseded_id"] = prev.ID
	}
	s.log.Info("grant.created", fields)

	return g, nil
}

type ShareByEmailInput struct {
	PatientID     string
	GrantorUserID string
	GranteeEmail  string
	Level         access.Level
	ExpiresAt     *time.Time
}

// ShareByEmail resuelve el grantee en el directorio y delega en CreateOrReplace.
// Los fallos de resolución se cuentan como op "create".
func (s *Service) ShareByEmail(ctx context.Context, in ShareByEmailInput) (Grant, error) {
	granteeID, err := s.resolveGrantee(ctx, in.GranteeEmail)
	if err != nil {
		s.observe("create", err)
		return Grant{}, err
	}

	return s.CreateOrReplace(ctx, CreateInput{
		PatientID:     in.PatientID,
		GrantorUserID: in.GrantorUserID,
		GranteeUserID: granteeID,
		Level:         in.Level,
		ExpiresAt:     in.ExpiresAt,
	})
}

func (s *Service) resolveGrantee(ctx context.Context, rawEmail string) (string, error) {
	email := users.NormalizeEmail(rawEmail)
	if email == "" {
		return "", fmt.Errorf("%w: grantee email required", access.ErrInvalidArgument)
	}
	if s.users == nil {
		return "", fmt.Errorf("%w: user directory not configured", access.ErrSourceUnavailable)
	}

	granteeID, err := s.users.ResolveUserIDByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return "", users.NotFoundEmail(email)
		}
		return "", fmt.Errorf("%w: resolve email: %v", access.ErrSourceUnavailable, err)
	}
	return granteeID, nil
}

// ReviseLevel cambia el nivel de un grant activo.
// Autorizados: el grantor original o quien tenga admin sobre el paciente.
func (s *Service) ReviseLevel(ctx context.Context, grantID string, level access.Level, callerID string) (_ Grant, err error) {
	defer func() { s.observe("revise", err) }()

	grantID = strings.TrimSpace(grantID)
	callerID = strings.TrimSpace(callerID)
	if grantID == "" || callerID == "" {
		return Grant{}, fmt.Errorf("%w: grant id and caller required", access.ErrInvalidArgument)
	}
	if !level.Valid() {
		return Grant{}, fmt.Errorf("%w: unknown access level %q", access.ErrInvalidArgument, level)
	}

	now := s.now()

	g, err := s.getGrant(ctx, grantID)
	if err != nil {
		return Grant{}, err
	}
	raise := level != g.Level && level.AtLeast(g.Level)
	if err := s.authorizeMutation(ctx, g, callerID, now, raise); err != nil {
		return Grant{}, err
	}
	if !g.ActiveAt(now) {
		return Grant{}, fmt.Errorf("grant %s is no longer active: %w", grantID, access.ErrNotFound)
	}

	updated, err := s.repo.UpdateLevel(ctx, grantID, level, now)
	if err != nil {
		return Grant{}, err
	}

	s.log.Info("grant.revised", map[string]any{
		"grant_id":   grantID,
		"patient_id": g.PatientID,
		"caller_id":  callerID,
		"from":       string(g.Level),
		"to":         string(level),
	})
	return updated, nil
}

// Revoke hace soft-delete. Revocar algo ya revocado es un no-op exitoso.
func (s *Service) Revoke(ctx context.Context, grantID, callerID string) (err error) {
	defer func() { s.observe("revoke", err) }()

	grantID = strings.TrimSpace(grantID)
	callerID = strings.TrimSpace(callerID)
	if grantID == "" || callerID == "" {
		return fmt.Errorf("%w: grant id and caller required", access.ErrInvalidArgument)
	}

	now := s.now()

	g, err := s.getGrant(ctx, grantID)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(ctx, g, callerID, now, false); err != nil {
		return err
	}

	// Idempotente
	if !g.Live() {
		return nil
	}

	if _, err := s.repo.MarkRevoked(ctx, grantID, now); err != nil {
		return err
	}

	s.log.Info("grant.revoked", map[string]any{
		"grant_id":   grantID,
		"patient_id": g.PatientID,
		"caller_id":  callerID,
	})
	return nil
}

// ListForPatient devuelve solo grants activos (no revocados, no vencidos).
func (s *Service) ListForPatient(ctx context.Context, patientID string) ([]ListedGrant, error) {
	return s.listForPatient(ctx, strings.TrimSpace(patientID), s.now())
}

// ListForPatientAs exige admin al caller y lista con el mismo instante
// que usó para autorizar.
func (s *Service) ListForPatientAs(ctx context.Context, callerID, patientID string) ([]ListedGrant, error) {
	patientID = strings.TrimSpace(patientID)
	now := s.now()
	if _, err := s.eval.Require(ctx, strings.TrimSpace(callerID), patientID, access.ActionManageSharing, now); err != nil {
		return nil, err
	}
	return s.listForPatient(ctx, patientID, now)
}

func (s *Service) listForPatient(ctx context.Context, patientID string, now time.Time) ([]ListedGrant, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient id required", access.ErrInvalidArgument)
	}
	items, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.activeOnly(items, now), nil
}

// ListReceivedBy devuelve los grants activos recibidos por userID.
func (s *Service) ListReceivedBy(ctx context.Context, userID string) ([]ListedGrant, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", access.ErrInvalidArgument)
	}
	items, err := s.repo.ListByGrantee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.activeOnly(items, s.now()), nil
}

func (s *Service) GetByID(ctx context.Context, grantID string) (Grant, error) {
	return s.getGrant(ctx, strings.TrimSpace(grantID))
}

func (s *Service) getGrant(ctx context.Context, grantID string) (Grant, error) {
	if grantID == "" {
		return Grant{}, fmt.Errorf("%w: grant id required", access.ErrInvalidArgument)
	}
	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		if errors.Is(err, access.ErrNotFound) {
			return Grant{}, fmt.Errorf("grant %s: %w", grantID, access.ErrNotFound)
		}
		return Grant{}, err
	}
	return g, nil
}

// authorizeMutation: el grantor original puede bajar el nivel o revocar sin más;
// subir el nivel (raise) exige admin vigente a cualquiera, grantor incluido.
func (s *Service) authorizeMutation(ctx context.Context, g Grant, callerID string, now time.Time, raise bool) error {
	if callerID == g.GrantorUserID && !raise {
		return nil
	}
	d, err := s.eval.Check(ctx, callerID, g.PatientID, access.ActionManageSharing, now)
	if err != nil {
		return err
	}
	if !d.Granted {
		s.log.Warn("grant.mutation_denied", map[string]any{
			"grant_id":  g.ID,
			"caller_id": callerID,
			"reason":    d.Reason,
		})
		return fmt.Errorf("%w: only the grantor or an admin can modify grant %s", access.ErrPermissionDenied, g.ID)
	}
	return nil
}

func (s *Service) requireShareCapability(ctx context.Context, userID string) error {
	if s.caps == nil {
		return nil
	}
	ok, err := s.caps.Has(ctx, userID, capabilities.ShareRecords)
	if err != nil {
		return fmt.Errorf("%w: capability lookup: %v", access.ErrSourceUnavailable, err)
	}
	if !ok {
		s.log.Warn("grant.capability_missing", map[string]any{
			"user_id":    userID,
			"capability": capabilities.ShareRecords,
		})
		return fmt.Errorf("%w: plan does not include %s", access.ErrPermissionDenied, capabilities.ShareRecords)
	}
	return nil
}

func (s *Service) observe(op string, err error) {
	if s.obs != nil {
		s.obs.GrantOp(op, access.Kind(err))
	}
}

func (s *Service) ensureUserExists(ctx context.Context, userID string) error {
	if s.users == nil {
		return nil
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: user lookup: %v", access.ErrSourceUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: unknown grantee %s", access.ErrInvalidArgument, userID)
	}
	return nil
}

func (s *Service) activeOnly(items []Grant, now time.Time) []ListedGrant {
	out := make([]ListedGrant, 0, len(items))
	for _, g := range items {
		if !g.ActiveAt(now) {
			continue
		}
		out = append(out, annotate(g, now, s.expiringSoon))
	}
	// Orden estable para que la lista sea re-consultable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
