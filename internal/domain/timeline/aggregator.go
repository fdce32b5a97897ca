package timeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

type GroupMode string

const (
	GroupAll       GroupMode = "all"
	GroupByPatient GroupMode = "by-patient"
)

func ParseGroupMode(s string) (GroupMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return GroupAll, nil
	case "by-patient", "by_patient", "patient":
		return GroupByPatient, nil
	default:
		return "", fmt.Errorf("%w: unknown group mode %q", access.ErrInvalidArgument, s)
	}
}

// DefaultLastDays aplica cuando no se pide rango ni quick range.
const DefaultLastDays = 30

const defaultMaxParallel = 8

// QuickRanges son los valores aceptados para LastDays desde la API.
var QuickRanges = []int{7, 30, 90}

type Options struct {
	// Types vacío = todos.
	Types []EventType
	Query string

	From     *time.Time
	To       *time.Time
	LastDays int

	Group GroupMode

	// Now: si es cero se usa el reloj del servicio. El mismo instante se usa para
	// el rango y para evaluar los grants.
	Now time.Time

	// Location para agrupar por día; nil = UTC.
	Location *time.Location
}

type Group struct {
	PatientID string
	Day       string // YYYY-MM-DD, solo en GroupAll
	Events    []Event
}

type Timeline struct {
	Events []Event
	Groups []Group
	Range  DateRange
	Group  GroupMode
	Now    time.Time
}

// SourceObserver recibe el resultado de cada fetch (platform/metrics).
// outcome es access.Kind del error.
type SourceObserver interface {
	TimelineSource(recordType, outcome string)
}

type Service struct {
	adapters    map[EventType]Adapter
	log         logger.Logger
	obs         SourceObserver
	now         func() time.Time
	maxParallel int
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithObserver(o SourceObserver) Option {
	return func(s *Service) { s.obs = o }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxParallel limita los fetch simultáneos de una misma llamada.
func WithMaxParallel(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxParallel = n
		}
	}
}

func NewService(adapters []Adapter, opts ...Option) *Service {
	s := &Service{
		adapters:    make(map[EventType]Adapter, len(adapters)),
		log:         logger.Nop(),
		now:         time.Now,
		maxParallel: defaultMaxParallel,
	}
	for _, a := range adapters {
		s.adapters[a.Type()] = a
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now expone el reloj del servicio (handlers y tests).
func (s *Service) Now() time.Time { return s.now() }

// GetTimeline junta los eventos de todos los pacientes y tipos pedidos.
//
// Con un solo paciente, la falta de acceso es ErrPermissionDenied. Con varios,
// los pacientes inaccesibles se omiten sin error. Cualquier otra falla de una
// fuente aborta la llamada completa. Una llamada cancelada no devuelve resultado.
func (s *Service) GetTimeline(ctx context.Context, subjectUserID string, patientIDs []string, opts Options) (Timeline, error) {
	subjectUserID = strings.TrimSpace(subjectUserID)
	if subjectUserID == "" {
		return Timeline{}, fmt.Errorf("%w: subject is required", access.ErrInvalidArgument)
	}

	ids := normalizeIDs(patientIDs)
	if len(ids) == 0 {
		return Timeline{}, fmt.Errorf("%w: at least one patient id is required", access.ErrInvalidArgument)
	}

	types, err := s.selectTypes(opts.Types)
	if err != nil {
		return Timeline{}, err
	}

	group := opts.Group
	if group == "" {
		group = GroupAll
	}
	if group != GroupAll && group != GroupByPatient {
		return Timeline{}, fmt.Errorf("%w: unknown group mode %q", access.ErrInvalidArgument, group)
	}

	now := opts.Now
	if now.IsZero() {
		now = s.now()
	}
	rng, err := resolveRange(opts, now)
	if err != nil {
		return Timeline{}, err
	}

	multi := len(ids) > 1

	type task struct {
		adapter Adapter
		req     FetchRequest
	}
	tasks := make([]task, 0, len(ids)*len(types))
	for _, pid := range ids {
		for _, t := range types {
			tasks = append(tasks, task{
				adapter: s.adapters[t],
				req: FetchRequest{
					PatientID:     pid,
					SubjectUserID: subjectUserID,
					Range:         rng,
					Now:           now,
					MultiPatient:  multi,
				},
			})
		}
	}

	// Cada tarea escribe solo su slot: el merge no depende del orden de llegada.
	results := make([][]Event, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for i, tk := range tasks {
		g.Go(func() error {
			evs, err := tk.adapter.Fetch(gctx, tk.req)
			s.observe(tk.adapter.Type(), err)
			if err != nil {
				return err
			}
			results[i] = evs
			return nil
		})
	}
	werr := g.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Timeline{}, ctxErr
	}
	if werr != nil {
		s.logFailure(subjectUserID, ids, werr)
		return Timeline{}, werr
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]Event, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}

	merged = filterByQuery(merged, opts.Query)
	SortEvents(merged)

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	out := Timeline{
		Events: merged,
		Range:  rng,
		Group:  group,
		Now:    now,
	}
	if group == GroupByPatient {
		out.Groups = groupByPatient(merged)
	} else {
		out.Groups = groupByDay(merged, loc)
	}

	s.log.Debug("timeline.built", map[string]any{
		"subject_user_id": subjectUserID,
		"patients":        len(ids),
		"types":           len(types),
		"events":          len(merged),
	})
	return out, nil
}

func (s *Service) observe(t EventType, err error) {
	if s.obs == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	s.obs.TimelineSource(string(t), access.Kind(err))
}

func (s *Service) selectTypes(requested []EventType) ([]EventType, error) {
	if len(requested) == 0 {
		// Sin filtro: todos los tipos con fuente registrada, en orden canónico.
		out := make([]EventType, 0, len(AllTypes))
		for _, t := range AllTypes {
			if _, ok := s.adapters[t]; ok {
				out = append(out, t)
			}
		}
		return out, nil
	}
	seen := make(map[EventType]struct{}, len(requested))
	out := make([]EventType, 0, len(requested))
	for _, t := range requested {
		if _, dup := seen[t]; dup {
			continue
		}
		if _, ok := s.adapters[t]; !ok {
			return nil, fmt.Errorf("%w: no source for event type %q", access.ErrInvalidArgument, t)
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) logFailure(subjectUserID string, ids []string, err error) {
	fields := map[string]any{
		"subject_user_id": subjectUserID,
		"patient_ids":     strings.Join(ids, ","),
		"err":             err,
	}
	switch {
	case errors.Is(err, access.ErrPermissionDenied), errors.Is(err, access.ErrNotFound):
		s.log.Warn("timeline.denied", fields)
	default:
		s.log.Error("timeline.source_failed", fields)
	}
}

// resolveRange: LastDays gana sobre el default; From/To explícitos no se
// combinan con LastDays.
func resolveRange(opts Options, now time.Time) (DateRange, error) {
	if opts.LastDays < 0 {
		return DateRange{}, fmt.Errorf("%w: last days must be positive", access.ErrInvalidArgument)
	}
	if opts.LastDays > 0 {
		if opts.From != nil || opts.To != nil {
			return DateRange{}, fmt.Errorf("%w: last days cannot be combined with from/to", access.ErrInvalidArgument)
		}
		return lastDays(now, opts.LastDays), nil
	}

	if opts.From == nil && opts.To == nil {
		return lastDays(now, DefaultLastDays), nil
	}

	to := now
	if opts.To != nil {
		to = *opts.To
	}
	from := to.AddDate(0, 0, -DefaultLastDays)
	if opts.From != nil {
		from = *opts.From
	}
	if from.After(to) {
		return DateRange{}, fmt.Errorf("%w: from is after to", access.ErrInvalidArgument)
	}
	return DateRange{From: from, To: to}, nil
}

func lastDays(now time.Time, n int) DateRange {
	return DateRange{From: now.Add(-time.Duration(n) * 24 * time.Hour), To: now}
}

func normalizeIDs(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func filterByQuery(events []Event, q string) []Event {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return events
	}
	out := events[:0]
	for _, e := range events {
		if Matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

// Matches: substring case-insensitive sobre título, descripción y valores de metadata.
// q ya viene en minúsculas.
func Matches(e Event, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	for _, v := range Metadata(e.Details) {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// SortEvents: fecha desc, luego id asc. Tipo y paciente solo desempatan ids repetidos
// entre fuentes distintas.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.PatientID < b.PatientID
	})
}

func groupByPatient(events []Event) []Group {
	idx := map[string]int{}
	var groups []Group
	for _, e := range events {
		i, ok := idx[e.PatientID]
		if !ok {
			i = len(groups)
			idx[e.PatientID] = i
			groups = append(groups, Group{PatientID: e.PatientID})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].PatientID < groups[j].PatientID })
	return groups
}

// groupByDay no reordena: como la lista ya está ordenada por instante,
// los eventos de un mismo día quedan contiguos.
func groupByDay(events []Event, loc *time.Location) []Group {
	var groups []Group
	for _, e := range events {
		day := e.Date.In(loc).Format("2006-01-02")
		if n := len(groups); n > 0 && groups[n-1].Day == day {
			groups[n-1].Events = append(groups[n-1].Events, e)
			continue
		}
		groups = append(groups, Group{Day: day, Events: []Event{e}})
	}
	return groups
}
